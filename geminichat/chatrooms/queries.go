package chatrooms

const (
	queryCreate = `
		INSERT INTO chatrooms (id, owner_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, created_at
	`

	queryListByOwner = `
		SELECT id, owner_id, name, created_at
		FROM chatrooms
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	queryGetForOwner = `
		SELECT id, owner_id, name, created_at
		FROM chatrooms
		WHERE id = $1 AND owner_id = $2
	`

	queryAddMessage = `
		INSERT INTO messages (id, chatroom_id, sender, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, chatroom_id, sender, content, created_at
	`

	// newest page first, reversed by the caller
	queryListMessages = `
		SELECT id, chatroom_id, sender, content, created_at
		FROM messages
		WHERE chatroom_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
)
