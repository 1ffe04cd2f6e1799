package auth

import (
	"context"
	"net/http"
	"strings"
)

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

type Checker interface {
	UserID(ctx context.Context, token string) (string, error)
}

// TokenFromRequest reads the session token from the Authorization header,
// with or without the Bearer scheme.
func TokenFromRequest(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > len("bearer ") && strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	return header
}
