//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	email := "login@fittrack.test"

	// no code requested yet
	s.expectStatus(s.do(ctx, http.MethodPost, "/auth/verify", "", auth.VerifyCodeRequest{
		Email: email,
		Code:  "123456",
	}), http.StatusUnauthorized)

	s.expectStatus(s.do(ctx, http.MethodPost, "/auth/code", "", auth.SendCodeRequest{Email: "not an email"}), http.StatusBadRequest)

	session := s.login(ctx, email)

	// the code is single use
	s.expectStatus(s.do(ctx, http.MethodPost, "/auth/verify", "", auth.VerifyCodeRequest{
		Email: email,
		Code:  s.lastCode(email),
	}), http.StatusUnauthorized)

	var overview profile.Overview
	s.expectJSON(s.do(ctx, http.MethodGet, "/profile", session.Token, nil), http.StatusOK, &overview)
	require.NotNil(t, overview.Profile)
	assert.Equal(t, session.UserID, overview.Profile.ID)
	assert.Equal(t, email, overview.Profile.Email)
	assert.Zero(t, overview.Profile.TotalWorkouts)

	// logging in again resolves the same user
	again := s.login(ctx, email)
	assert.Equal(t, session.UserID, again.UserID)
	assert.NotEqual(t, session.Token, again.Token)

	s.expectStatus(s.do(ctx, http.MethodPost, "/auth/logout", session.Token, nil), http.StatusOK)
	s.expectStatus(s.do(ctx, http.MethodGet, "/profile", session.Token, nil), http.StatusUnauthorized)
	s.expectStatus(s.do(ctx, http.MethodGet, "/profile", again.Token, nil), http.StatusOK)
}
