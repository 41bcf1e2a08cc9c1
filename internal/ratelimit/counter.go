package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// INCR, and set the expiry only on the call that created the key
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// admits only while the stored count is below ARGV[1]
// returns {count, admitted}
var incrementWithinScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current >= tonumber(ARGV[1]) then
	return {current, 0}
end
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[2])
end
return {count, 1}
`)

// creates a redis-backed usage counter
func NewCounter(store Store, ttl time.Duration) *Counter {
	if ttl <= 0 {
		ttl = DefaultCounterTTL
	}

	return &Counter{store: store, ttl: ttl}
}

// formats the counter key for a user on the UTC date of day
func UsageKey(userID string, day time.Time) string {
	return fmt.Sprintf(usageKeyPattern, userID, day.UTC().Format(dayLayout))
}

// atomically adds one admission and returns the new count
func (c *Counter) Increment(ctx context.Context, userID string, day time.Time) (int64, error) {
	count, err := incrementScript.Run(ctx, c.store, []string{UsageKey(userID, day)}, c.ttlSeconds()).Int64()
	if err != nil {
		return 0, &UnavailableError{Op: "increment", Err: err}
	}

	return count, nil
}

// returns the current count, zero when the key is absent or expired
func (c *Counter) Read(ctx context.Context, userID string, day time.Time) (int64, error) {
	count, err := c.store.Get(ctx, UsageKey(userID, day)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, &UnavailableError{Op: "read", Err: err}
	}

	return count, nil
}

// increments only if the count is below limit, in one atomic step
func (c *Counter) IncrementWithin(ctx context.Context, userID string, day time.Time, limit int64) (int64, bool, error) {
	res, err := incrementWithinScript.Run(ctx, c.store, []string{UsageKey(userID, day)}, limit, c.ttlSeconds()).Int64Slice()
	if err != nil {
		return 0, false, &UnavailableError{Op: "increment within limit", Err: err}
	}

	if len(res) != 2 {
		return 0, false, &UnavailableError{Op: "increment within limit", Err: fmt.Errorf("unexpected script reply %v", res)}
	}

	return res[0], res[1] == 1, nil
}

func (c *Counter) ttlSeconds() int64 {
	secs := int64(c.ttl / time.Second)
	if secs < 1 {
		return 1
	}

	return secs
}
