package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultSessionTTL = 24 * 7 * time.Hour
	DefaultCodeTTL    = 10 * time.Minute
	CodeLength        = 6

	tokenLength      = 35
	codeKeyPrefix    = "auth-code||"
	sessionKeyPrefix = "session||"
	tokensSetKey     = "sessions"
)

var (
	ErrInvalidCode      = errors.New("invalid or expired code")
	ErrNotLoggedIn      = errors.New("not logged in")
	errMalformedSession = errors.New("malformed session value")
)

// ErrInvalidEmail matches pkg.ErrValidation.
var ErrInvalidEmail error = pkg.NewValidationError("email", "not a valid address")

// CodeSender delivers a one-time login code to an email address.
type CodeSender interface {
	SendCode(ctx context.Context, email, code string) error
}

// UserResolver maps a verified email to a user ID, creating the user on first login.
type UserResolver interface {
	UserIDForEmail(ctx context.Context, email string) (string, error)
}

type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ServiceParams struct {
	RedisClient    *redis.Client
	Users          UserResolver
	Sender         CodeSender
	CodeTTL        time.Duration
	SessionTTL     time.Duration
	MetricsManager *metrics.Manager
}

type Service struct {
	redisClient    *redis.Client
	users          UserResolver
	sender         CodeSender
	codeTTL        time.Duration
	sessionTTL     time.Duration
	metricsManager *metrics.Manager

	// ability to inject random generators and clock (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
	RandCodeFunc   func(n int) (string, error)
	HashCodeFunc   func(code string) (string, error)
	Now            func() time.Time
}

func NewAuthService(params ServiceParams) *Service {
	codeTTL := params.CodeTTL
	if codeTTL <= 0 {
		codeTTL = DefaultCodeTTL
	}
	sessionTTL := params.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &Service{
		redisClient:    params.RedisClient,
		users:          params.Users,
		sender:         params.Sender,
		codeTTL:        codeTTL,
		sessionTTL:     sessionTTL,
		metricsManager: params.MetricsManager,
		RandStringFunc: pkg.GenerateRandomString,
		RandCodeFunc:   pkg.GenerateNumericCode,
		HashCodeFunc:   pkg.HashCode,
		Now:            time.Now,
	}
}

// NormalizeEmail lower-cases and validates a bare email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// SendCode stores a hashed one-time code for the email and delivers the plain code.
// A new code replaces any previous one.
func (as *Service) SendCode(ctx context.Context, email string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.sendCode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email, err = NormalizeEmail(email)
	if err != nil {
		return err
	}

	code, err := as.RandCodeFunc(CodeLength)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	hash, err := as.HashCodeFunc(code)
	if err != nil {
		return fmt.Errorf("hash code: %w", err)
	}

	if err := as.redisClient.Set(ctx, codeKeyPrefix+email, hash, as.codeTTL).Err(); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	if err := as.sender.SendCode(ctx, email, code); err != nil {
		return fmt.Errorf("send code: %w", err)
	}

	as.metricsManager.CounterAuthCodesSent.Inc()
	return nil
}

// VerifyCode consumes the code of the email and opens a session for its user.
func (as *Service) VerifyCode(ctx context.Context, email, code string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.verifyCode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email, err = NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	codeKey := codeKeyPrefix + email
	hash, err := as.redisClient.Get(ctx, codeKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("get code: %w", err)
	}
	if !pkg.CheckCodeHash(code, hash) {
		return nil, ErrInvalidCode
	}

	// only the caller that deletes the code may use it
	deleted, err := as.redisClient.Del(ctx, codeKey).Result()
	if err != nil {
		return nil, fmt.Errorf("delete code: %w", err)
	}
	if deleted == 0 {
		return nil, ErrInvalidCode
	}

	userID, err := as.users.UserIDForEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	return as.login(ctx, userID)
}

func (as *Service) login(ctx context.Context, userID string) (*Session, error) {
	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return nil, err
	}

	createdAt := as.Now()
	sessionKey := sessionKeyPrefix + token
	cmdSet := as.redisClient.Set(ctx, sessionKey, encodeSession(userID, createdAt), as.sessionTTL)
	if err := cmdSet.Err(); err != nil {
		return nil, err
	}

	// add token to list of sessions
	cmdSAdd := as.redisClient.SAdd(ctx, tokensSetKey, token)
	if err := cmdSAdd.Err(); err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: createdAt,
	}, nil
}

// Logout drops the session. It reports whether the session existed.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	deleted, err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}

	// remove token from the list of sessions
	cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, token)
	if err := cmdSRem.Err(); err != nil {
		return false, err
	}

	return deleted > 0, nil
}

// ScanAndClean will run through all sessions, and drop the ones that expired or are older than the TTL
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugln("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		value, err := as.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
		if errors.Is(err, redis.Nil) {
			// expired by redis already, only the set entry is left
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}

		_, createdAt, err := decodeSession(value)
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			toRemove = append(toRemove, token)
			continue
		}
		if as.Now().Sub(createdAt) > as.sessionTTL {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
			continue
		}
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
			continue
		}
	}
	log.Debugf("auth service, scan and clean done, removed %d sessions", len(toRemove))
}

// RunCleanup calls ScanAndClean every interval until ctx is done.
func (as *Service) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			as.ScanAndClean(ctx)
		}
	}
}

func encodeSession(userID string, createdAt time.Time) string {
	return userID + "|" + strconv.FormatInt(createdAt.Unix(), 10)
}

func decodeSession(value string) (string, time.Time, error) {
	userID, createdAtStr, ok := strings.Cut(value, "|")
	if !ok || userID == "" {
		return "", time.Time{}, errMalformedSession
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", errMalformedSession, err)
	}
	return userID, time.Unix(createdAtUnix, 0), nil
}
