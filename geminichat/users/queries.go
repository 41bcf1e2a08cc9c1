package users

const (
	queryCreate = `
		INSERT INTO users (id, mobile)
		VALUES ($1, $2)
		RETURNING id, mobile, is_active, created_at, updated_at
	`

	queryFindOrCreateByMobile = `
		INSERT INTO users (id, mobile)
		VALUES ($1, $2)
		ON CONFLICT (mobile)
		DO UPDATE SET updated_at = NOW()
		RETURNING id, mobile, is_active, created_at, updated_at
	`

	queryFindByID = `
		SELECT id, mobile, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	queryFindByMobile = `
		SELECT id, mobile, is_active, created_at, updated_at
		FROM users
		WHERE mobile = $1
	`
)
