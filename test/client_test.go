//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/2beens/fittrack/internal/auth"

	"github.com/stretchr/testify/require"
)

// do sends a JSON request to the service, authenticated when token is set.
func (s *IntegrationTestSuite) do(ctx context.Context, method, path, token string, body any) *http.Response {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	return resp
}

// expectJSON checks the status code and decodes the body into out.
func (s *IntegrationTestSuite) expectJSON(resp *http.Response, statusCode int, out any) {
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.Equal(s.T(), statusCode, resp.StatusCode, string(respBytes))
	if out != nil {
		require.NoError(s.T(), json.Unmarshal(respBytes, out))
	}
}

func (s *IntegrationTestSuite) expectStatus(resp *http.Response, statusCode int) {
	s.expectJSON(resp, statusCode, nil)
}

// login runs the email code flow and returns the session.
func (s *IntegrationTestSuite) login(ctx context.Context, email string) auth.Session {
	s.expectStatus(s.do(ctx, http.MethodPost, "/auth/code", "", auth.SendCodeRequest{Email: email}), http.StatusOK)

	code := s.lastCode(email)
	require.Len(s.T(), code, auth.CodeLength)

	var session auth.Session
	s.expectJSON(s.do(ctx, http.MethodPost, "/auth/verify", "", auth.VerifyCodeRequest{
		Email: email,
		Code:  code,
	}), http.StatusOK, &session)
	require.NotEmpty(s.T(), session.Token)
	require.NotEmpty(s.T(), session.UserID)
	return session
}
