package subscriptions

const (
	queryGetTier = `
		SELECT tier
		FROM subscriptions
		WHERE user_id = $1
	`

	queryGet = `
		SELECT user_id, tier, status, stripe_customer_id, stripe_subscription_id, started_at, ends_at
		FROM subscriptions
		WHERE user_id = $1
	`

	queryActivatePro = `
		INSERT INTO subscriptions (user_id, tier, status, stripe_customer_id, stripe_subscription_id, started_at)
		VALUES ($1, 'pro', 'active', NULLIF($2, ''), NULLIF($3, ''), $4)
		ON CONFLICT (user_id)
		DO UPDATE SET
			tier = 'pro',
			status = 'active',
			stripe_customer_id = COALESCE(EXCLUDED.stripe_customer_id, subscriptions.stripe_customer_id),
			stripe_subscription_id = COALESCE(EXCLUDED.stripe_subscription_id, subscriptions.stripe_subscription_id),
			started_at = COALESCE(subscriptions.started_at, EXCLUDED.started_at),
			ends_at = NULL,
			updated_at = NOW()
	`

	queryDeactivateBySubscription = `
		UPDATE subscriptions
		SET tier = 'basic', status = 'canceled', ends_at = $2, updated_at = NOW()
		WHERE stripe_subscription_id = $1
	`
)
