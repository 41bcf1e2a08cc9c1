package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"codeberg.org/geminichat/server/internal/auth"
	"codeberg.org/geminichat/server/internal/logger"
)

// creates a gate, zero-valued options fall back to defaults
func NewGate(counter UsageCounter, tiers TierSource, verifier auth.Verifier, opts Options) *Gate {
	if opts.DailyLimit <= 0 {
		opts.DailyLimit = DefaultDailyLimit
	}

	if opts.FailurePolicy == "" {
		opts.FailurePolicy = FailClosed
	}

	if opts.CapMode == "" {
		opts.CapMode = CapSoft
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Gate{
		counter:  counter,
		tiers:    tiers,
		verifier: verifier,
		opts:     opts,
	}
}

// evaluates an authenticated user against their tier and today's usage
// admission charges the counter before the handler runs and is never refunded
func (g *Gate) Decide(ctx context.Context, userID string) Decision {
	d := g.decide(ctx, userID)

	if g.opts.Recorder != nil {
		g.opts.Recorder.ObserveDecision(string(d.Outcome), string(d.Tier))
	}

	return d
}

func (g *Gate) decide(ctx context.Context, userID string) Decision {
	log := logger.FromContext(ctx).With("user_id", userID)

	tier, err := g.tiers.Resolve(ctx, userID)
	if err != nil {
		if g.opts.FailurePolicy == FailOpen {
			log.Warn("tier lookup failed, admitting without accounting",
				"component", "tier_store",
				"policy", string(FailOpen),
				"error", err,
			)

			return Decision{Outcome: OutcomeAdmit, Tier: TierBasic, Limit: g.opts.DailyLimit, Err: err, Unaccounted: true}
		}

		log.Warn("tier lookup failed, treating user as basic",
			"component", "tier_store",
			"policy", string(FailClosed),
			"error", err,
		)
		tier = TierBasic
	}

	if !tier.Capped() {
		return Decision{Outcome: OutcomeAdmit, Tier: tier, Err: err}
	}

	lookupErr := err
	limit := g.opts.DailyLimit
	day := g.opts.Now().UTC()

	if g.opts.CapMode == CapHard {
		count, admitted, err := g.counter.IncrementWithin(ctx, userID, day, limit)
		if err != nil {
			return g.counterFailure(log, tier, limit, err)
		}

		if !admitted {
			return Decision{Outcome: OutcomeReject, Tier: tier, Count: count, Limit: limit, Err: lookupErr}
		}

		return Decision{Outcome: OutcomeAdmit, Tier: tier, Count: count, Limit: limit, Err: lookupErr}
	}

	count, err := g.counter.Read(ctx, userID, day)
	if err != nil {
		return g.counterFailure(log, tier, limit, err)
	}

	if count >= limit {
		return Decision{Outcome: OutcomeReject, Tier: tier, Count: count, Limit: limit, Err: lookupErr}
	}

	count, err = g.counter.Increment(ctx, userID, day)
	if err != nil {
		return g.counterFailure(log, tier, limit, err)
	}

	return Decision{Outcome: OutcomeAdmit, Tier: tier, Count: count, Limit: limit, Err: lookupErr}
}

func (g *Gate) counterFailure(log *slog.Logger, tier Tier, limit int64, err error) Decision {
	if g.opts.FailurePolicy == FailOpen {
		log.Warn("usage counter unavailable, admitting without accounting",
			"component", "usage_counter",
			"policy", string(FailOpen),
			"error", err,
		)

		return Decision{Outcome: OutcomeAdmit, Tier: tier, Limit: limit, Err: err, Unaccounted: true}
	}

	log.Error("usage counter unavailable, rejecting request",
		"component", "usage_counter",
		"policy", string(FailClosed),
		"error", err,
	)

	return Decision{Outcome: OutcomeUnavailable, Tier: tier, Limit: limit, Err: err}
}
