package challenges

import (
	"errors"
	"time"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrNotJoined         = errors.New("challenge not joined")
	ErrChallengeInactive = errors.New("challenge is not active")
)

type Challenge struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Goal         int       `json:"goal"`
	Unit         string    `json:"unit"`
	RewardPoints int       `json:"rewardPoints"`
	StartsAt     time.Time `json:"startsAt"`
	EndsAt       time.Time `json:"endsAt"`
}

// Active reports whether t falls in [StartsAt, EndsAt).
func (c *Challenge) Active(t time.Time) bool {
	return !t.Before(c.StartsAt) && t.Before(c.EndsAt)
}

// Progress is a user's standing in a joined challenge.
type Progress struct {
	ChallengeID string    `json:"challengeId"`
	UserID      string    `json:"userId"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
	JoinedAt    time.Time `json:"joinedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Joined struct {
	Challenge Challenge `json:"challenge"`
	Progress  Progress  `json:"progress"`
}
