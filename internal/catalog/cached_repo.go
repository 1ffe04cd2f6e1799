package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

type catalogRepo interface {
	Workouts(ctx context.Context) ([]Workout, error)
	Workout(ctx context.Context, id string) (*Workout, error)
	ExerciseCount(ctx context.Context, workoutID string) (int, error)
	NutritionTips(ctx context.Context, category string) ([]NutritionTip, error)
}

// CachedRepo keeps JSON encoded catalog reads in a freecache instance.
// The catalog only changes on seeding, so entries simply expire.
type CachedRepo struct {
	repo          catalogRepo
	cache         *freecache.Cache
	expireSeconds int
}

func NewCachedRepo(repo catalogRepo, sizeMB int, ttl time.Duration) *CachedRepo {
	return &CachedRepo{
		repo:          repo,
		cache:         freecache.NewCache(sizeMB * megabyte),
		expireSeconds: int(ttl.Seconds()),
	}
}

func (c *CachedRepo) Workouts(ctx context.Context) ([]Workout, error) {
	return cached(c, "workouts", func() ([]Workout, error) {
		return c.repo.Workouts(ctx)
	})
}

func (c *CachedRepo) Workout(ctx context.Context, id string) (*Workout, error) {
	return cached(c, "workout::"+id, func() (*Workout, error) {
		return c.repo.Workout(ctx, id)
	})
}

func (c *CachedRepo) ExerciseCount(ctx context.Context, workoutID string) (int, error) {
	return cached(c, "exercise-count::"+workoutID, func() (int, error) {
		return c.repo.ExerciseCount(ctx, workoutID)
	})
}

func (c *CachedRepo) NutritionTips(ctx context.Context, category string) ([]NutritionTip, error) {
	return cached(c, "nutrition::"+category, func() ([]NutritionTip, error) {
		return c.repo.NutritionTips(ctx, category)
	})
}

// Clear drops every cached entry.
func (c *CachedRepo) Clear() {
	c.cache.Clear()
}

func cached[T any](c *CachedRepo, key string, load func() (T, error)) (T, error) {
	cacheKey := []byte(key)
	if valBytes, err := c.cache.Get(cacheKey); err == nil {
		var val T
		if err := json.Unmarshal(valBytes, &val); err == nil {
			return val, nil
		} else {
			log.Errorf("catalog cache, unmarshal [%s]: %s", key, err)
		}
	}

	val, err := load()
	if err != nil {
		return val, err
	}

	valBytes, err := json.Marshal(val)
	if err != nil {
		log.Errorf("catalog cache, marshal [%s]: %s", key, err)
		return val, nil
	}
	if err := c.cache.Set(cacheKey, valBytes, c.expireSeconds); err != nil {
		log.Errorf("catalog cache, set [%s]: %s", key, err)
	} else {
		log.Tracef("catalog cache set: %s", key)
	}

	return val, nil
}
