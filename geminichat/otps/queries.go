package otps

const (
	queryCreate = `
		INSERT INTO otps (id, mobile, otp_code, purpose, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	// deletes and returns one matching unexpired code
	queryConsume = `
		DELETE FROM otps
		WHERE id = (
			SELECT id FROM otps
			WHERE mobile = $1 AND otp_code = $2 AND purpose = $3 AND expires_at > $4
			ORDER BY created_at DESC
			LIMIT 1
		)
		RETURNING id
	`

	queryDeleteExpired = `
		DELETE FROM otps
		WHERE expires_at <= $1
	`
)
