package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// UserID resolves the user behind a session token. Unknown, malformed and
// expired sessions all yield ErrNotLoggedIn.
func (lc *LoginChecker) UserID(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNotLoggedIn
	}

	value, err := lc.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotLoggedIn
		}
		return "", err
	}

	userID, createdAt, err := decodeSession(value)
	if err != nil {
		return "", ErrNotLoggedIn
	}
	if lc.now().Sub(createdAt) > lc.ttl {
		return "", ErrNotLoggedIn
	}

	return userID, nil
}
