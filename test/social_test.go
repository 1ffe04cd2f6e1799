//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/2beens/fittrack/internal/challenges"
	"github.com/2beens/fittrack/internal/social"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSocialFeed() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice := s.login(ctx, "alice@fittrack.test")
	bob := s.login(ctx, "bob@fittrack.test")

	s.expectStatus(s.do(ctx, http.MethodPost, "/social/posts", alice.Token, social.CreatePostRequest{Content: "   "}), http.StatusBadRequest)

	var post social.Post
	content := gofakeit.Sentence(12)
	s.expectJSON(s.do(ctx, http.MethodPost, "/social/posts", alice.Token, social.CreatePostRequest{Content: content}), http.StatusCreated, &post)
	assert.Equal(t, alice.UserID, post.UserID)
	assert.Equal(t, content, post.Content)

	var like social.LikeState
	s.expectJSON(s.do(ctx, http.MethodPost, "/social/posts/"+post.ID+"/like", bob.Token, nil), http.StatusOK, &like)
	assert.Equal(t, social.LikeState{Liked: true, Likes: 1}, like)
	s.expectJSON(s.do(ctx, http.MethodPost, "/social/posts/"+post.ID+"/like", bob.Token, nil), http.StatusOK, &like)
	assert.Equal(t, social.LikeState{Liked: false, Likes: 0}, like)

	var comment social.Comment
	s.expectJSON(s.do(ctx, http.MethodPost, "/social/posts/"+post.ID+"/comments", bob.Token, social.CreateCommentRequest{Content: "nice one"}), http.StatusCreated, &comment)
	assert.Equal(t, post.ID, comment.PostID)

	// only the author removes a comment
	s.expectStatus(s.do(ctx, http.MethodDelete, "/social/comments/"+comment.ID, alice.Token, nil), http.StatusForbidden)

	var page social.Page
	s.expectJSON(s.do(ctx, http.MethodGet, "/social/feed?limit=1", alice.Token, nil), http.StatusOK, &page)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, post.ID, page.Posts[0].ID)
	assert.Equal(t, 1, page.Posts[0].Comments)

	s.expectStatus(s.do(ctx, http.MethodDelete, "/social/comments/"+comment.ID, bob.Token, nil), http.StatusOK)

	var comments []social.Comment
	s.expectJSON(s.do(ctx, http.MethodGet, "/social/posts/"+post.ID+"/comments", alice.Token, nil), http.StatusOK, &comments)
	assert.Empty(t, comments)

	s.expectStatus(s.do(ctx, http.MethodPost, "/social/posts/missing/like", bob.Token, nil), http.StatusNotFound)
}

func (s *IntegrationTestSuite) TestChallenges() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.login(ctx, "challenger@fittrack.test")

	var active []challenges.Challenge
	s.expectJSON(s.do(ctx, http.MethodGet, "/challenges", user.Token, nil), http.StatusOK, &active)
	require.NotEmpty(t, active)
	target := active[0]

	var progress challenges.Progress
	s.expectJSON(s.do(ctx, http.MethodPost, "/challenges/"+target.ID+"/join", user.Token, nil), http.StatusOK, &progress)
	assert.Zero(t, progress.Progress)
	assert.False(t, progress.Completed)

	s.expectJSON(s.do(ctx, http.MethodPut, "/challenges/"+target.ID+"/progress", user.Token, challenges.UpdateProgressRequest{Progress: target.Goal}), http.StatusOK, &progress)
	assert.True(t, progress.Completed)

	var mine []challenges.Joined
	s.expectJSON(s.do(ctx, http.MethodGet, "/challenges/mine", user.Token, nil), http.StatusOK, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, target.ID, mine[0].Challenge.ID)
	assert.Equal(t, target.Goal, mine[0].Progress.Progress)

	s.expectStatus(s.do(ctx, http.MethodPost, "/challenges/missing/join", user.Token, nil), http.StatusNotFound)
}
