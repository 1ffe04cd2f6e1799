package auth

import "context"

// LoginTestChecker is an in-memory Checker for tests and local runs.
type LoginTestChecker struct {
	Sessions map[string]string
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		Sessions: map[string]string{},
	}
}

func (c *LoginTestChecker) UserID(_ context.Context, token string) (string, error) {
	if userID, ok := c.Sessions[token]; ok {
		return userID, nil
	}
	return "", ErrNotLoggedIn
}
