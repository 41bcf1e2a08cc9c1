package users

import (
	"context"
	"time"

	"codeberg.org/geminichat/server/geminichat/users"
)

// loads the profile of the authenticated user
type UserFinder interface {
	FindByID(ctx context.Context, userID string) (*users.User, error)
}

// reads today's admitted message count without charging it
type UsageReader interface {
	Read(ctx context.Context, userID string, day time.Time) (int64, error)
}

type UsageConfig struct {
	DailyLimit int64
	// defaults to time.Now
	Now func() time.Time
}

type UsageResponse struct {
	Tier      string `json:"tier"`      // "basic" or "pro"
	Day       string `json:"day"`       // UTC, format: "2006-01-02"
	Used      int64  `json:"used"`      // messages admitted today
	Limit     int64  `json:"limit"`     // daily limit (-1 for unlimited)
	Remaining int64  `json:"remaining"` // remaining messages today (-1 for unlimited)
}
