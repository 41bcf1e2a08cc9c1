package ratelimit

import (
	"context"
	"time"

	"codeberg.org/geminichat/server/internal/auth"
	"github.com/redis/go-redis/v9"
)

// subscription tier as seen by the gate
type Tier string

const (
	TierBasic Tier = "basic"
	TierPro   Tier = "pro"
)

// reports whether the tier is subject to the daily cap
func (t Tier) Capped() bool {
	return t != TierPro
}

// what the gate decided for one request
type Outcome string

const (
	OutcomeAdmit       Outcome = "admit"
	OutcomeReject      Outcome = "reject"
	OutcomeUnavailable Outcome = "unavailable"
)

// how the gate behaves when a backing store fails
type FailurePolicy string

const (
	// lookup failure: treat as basic; counter failure: 503
	FailClosed FailurePolicy = "closed"
	// lookup or counter failure: admit without accounting
	FailOpen FailurePolicy = "open"
)

// whether the daily cap tolerates concurrent overshoot
type CapMode string

const (
	// read then increment, concurrent requests may overshoot
	CapSoft CapMode = "soft"
	// check and increment in one atomic script
	CapHard CapMode = "hard"
)

const (
	DefaultDailyLimit = 5
	DefaultCounterTTL = 24 * time.Hour

	// gin context key holding the Decision of a gated request
	ContextDecision = "ratelimit_decision"

	QuotaExceededMessage = "Daily message limit reached for Basic tier."
	UnavailableMessage   = "usage tracking unavailable"

	usageKeyPattern = "user:%s:daily_usage:%s"
	dayLayout       = "2006-01-02"
)

// result of one gate evaluation
type Decision struct {
	Outcome Outcome
	Tier    Tier
	// usage after the decision, zero for uncapped tiers
	Count int64
	Limit int64
	// store failure observed while deciding, nil on the happy path
	Err error
	// admitted without consulting the counter, Count and Remaining mean nothing
	Unaccounted bool
}

// requests left today, -1 when the tier is uncapped
func (d Decision) Remaining() int64 {
	if !d.Tier.Capped() {
		return -1
	}

	if d.Count >= d.Limit {
		return 0
	}

	return d.Limit - d.Count
}

// redis surface the counter needs
type Store interface {
	redis.Scripter
	Get(ctx context.Context, key string) *redis.StringCmd
}

// per-user per-day usage counter
type UsageCounter interface {
	Read(ctx context.Context, userID string, day time.Time) (int64, error)
	Increment(ctx context.Context, userID string, day time.Time) (int64, error)
	IncrementWithin(ctx context.Context, userID string, day time.Time, limit int64) (int64, bool, error)
}

// subscription record lookup, found is false when the user has none
type TierStore interface {
	GetTier(ctx context.Context, userID string) (tier string, found bool, err error)
}

// resolves the tier of a user
type TierSource interface {
	Resolve(ctx context.Context, userID string) (Tier, error)
}

// receives every gate decision, implemented by the metrics package
type DecisionRecorder interface {
	ObserveDecision(outcome, tier string)
}

// backs the usage counter with redis
type Counter struct {
	store Store
	ttl   time.Duration
}

// resolves tiers from the subscription store
type TierResolver struct {
	store TierStore
}

type Options struct {
	DailyLimit    int64
	FailurePolicy FailurePolicy
	CapMode       CapMode
	Recorder      DecisionRecorder
	// clock used to pick the UTC day, defaults to time.Now
	Now func() time.Time
}

// admits or rejects chatroom message creation per user tier and daily usage
type Gate struct {
	counter  UsageCounter
	tiers    TierSource
	verifier auth.Verifier
	opts     Options
}
