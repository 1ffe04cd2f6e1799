//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/gamification"
	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/sessions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWorkoutID = "full-body-starter"

func (s *IntegrationTestSuite) TestWorkoutFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := s.login(ctx, "athlete@fittrack.test")
	token := session.Token

	// catalog is public
	var workout catalog.Workout
	s.expectJSON(s.do(ctx, http.MethodGet, "/catalog/workouts/"+testWorkoutID, "", nil), http.StatusOK, &workout)
	require.NotEmpty(t, workout.Exercises)
	s.expectStatus(s.do(ctx, http.MethodGet, "/catalog/workouts/nope", "", nil), http.StatusNotFound)

	// nothing to complete yet
	s.expectStatus(s.do(ctx, http.MethodPost, "/sessions/"+testWorkoutID+"/complete", token, nil), http.StatusConflict)

	var inst sessions.Instance
	s.expectJSON(s.do(ctx, http.MethodPost, "/sessions/"+testWorkoutID+"/start", token, nil), http.StatusOK, &inst)
	assert.Equal(t, sessions.StatusInProgress, inst.Status)
	assert.Empty(t, inst.CompletedExercises)

	// starting again resumes the same instance
	var resumed sessions.Instance
	s.expectJSON(s.do(ctx, http.MethodPost, "/sessions/"+testWorkoutID+"/start", token, nil), http.StatusOK, &resumed)
	assert.Equal(t, inst.ID, resumed.ID)

	toggle := func(exerciseID string, completed bool) sessions.Instance {
		var out sessions.Instance
		path := fmt.Sprintf("/sessions/%s/exercises/%s", testWorkoutID, exerciseID)
		s.expectJSON(s.do(ctx, http.MethodPost, path, token, sessions.ToggleExerciseRequest{Completed: completed}), http.StatusOK, &out)
		return out
	}

	first := workout.Exercises[0].ID
	toggle(first, true)
	inst = toggle(first, true)
	assert.Equal(t, []string{first}, inst.CompletedExercises)

	if len(workout.Exercises) > 1 {
		s.expectStatus(s.do(ctx, http.MethodPost, "/sessions/"+testWorkoutID+"/complete", token, nil), http.StatusConflict)
	}
	for _, ex := range workout.Exercises[1:] {
		inst = toggle(ex.ID, true)
	}
	assert.Len(t, inst.CompletedExercises, len(workout.Exercises))

	s.expectJSON(s.do(ctx, http.MethodPost, "/sessions/"+testWorkoutID+"/complete", token, nil), http.StatusOK, &inst)
	assert.Equal(t, sessions.StatusCompleted, inst.Status)
	require.NotNil(t, inst.CompletedAt)

	var today []sessions.Instance
	s.expectJSON(s.do(ctx, http.MethodGet, "/sessions/today", token, nil), http.StatusOK, &today)
	require.Len(t, today, 1)
	assert.Equal(t, sessions.StatusCompleted, today[0].Status)

	// log it twice on the same day
	logReq := gamification.LogWorkoutRequest{
		Duration:       30,
		CaloriesBurned: 250,
		EnergyBefore:   4,
		EnergyAfter:    7,
		Notes:          "felt good",
	}
	var result gamification.LogResult
	s.expectJSON(s.do(ctx, http.MethodPost, "/workouts/"+testWorkoutID+"/log", token, logReq), http.StatusCreated, &result)
	assert.Equal(t, 1, result.Outcome.WorkoutStreak)
	assert.Equal(t, 1, result.Outcome.TotalWorkouts)
	assert.Equal(t, gamification.PointsPerWorkout, result.Outcome.PointsEarned)
	require.Len(t, result.Outcome.UnlockedAchievements, 1)
	assert.Equal(t, gamification.AchievementFirstWorkout, result.Outcome.UnlockedAchievements[0].ID)

	s.expectJSON(s.do(ctx, http.MethodPost, "/workouts/"+testWorkoutID+"/log", token, logReq), http.StatusCreated, &result)
	assert.Equal(t, 1, result.Outcome.WorkoutStreak)
	assert.Equal(t, 2, result.Outcome.TotalWorkouts)
	assert.Empty(t, result.Outcome.UnlockedAchievements)

	logReq.Duration = 0
	s.expectStatus(s.do(ctx, http.MethodPost, "/workouts/"+testWorkoutID+"/log", token, logReq), http.StatusBadRequest)

	var logs []gamification.WorkoutLog
	s.expectJSON(s.do(ctx, http.MethodGet, "/workouts/logs?limit=5", token, nil), http.StatusOK, &logs)
	assert.Len(t, logs, 2)

	var overview profile.Overview
	s.expectJSON(s.do(ctx, http.MethodGet, "/profile", token, nil), http.StatusOK, &overview)
	assert.Equal(t, 2, overview.Profile.TotalWorkouts)
	assert.Equal(t, 1, overview.Profile.WorkoutStreak)
	assert.Equal(t, 2*gamification.PointsPerWorkout, overview.Profile.Points)
	require.Len(t, overview.Achievements, 1)
	assert.Equal(t, gamification.AchievementFirstWorkout, overview.Achievements[0].ID)
	assert.NotEmpty(t, overview.Suggestion.Message)
}
