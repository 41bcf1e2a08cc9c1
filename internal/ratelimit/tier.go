package ratelimit

import (
	"context"
	"strings"
)

// creates a resolver over the subscription store
func NewTierResolver(store TierStore) *TierResolver {
	return &TierResolver{store: store}
}

// maps a stored tier name to a Tier, anything but pro is capped
func ParseTier(name string) Tier {
	if strings.EqualFold(strings.TrimSpace(name), string(TierPro)) {
		return TierPro
	}

	return TierBasic
}

// returns the user's tier, basic when no subscription record exists
func (r *TierResolver) Resolve(ctx context.Context, userID string) (Tier, error) {
	name, found, err := r.store.GetTier(ctx, userID)
	if err != nil {
		return TierBasic, &LookupError{UserID: userID, Err: err}
	}

	if !found {
		return TierBasic, nil
	}

	return ParseTier(name), nil
}
