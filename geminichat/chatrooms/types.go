package chatrooms

import (
	"time"

	"codeberg.org/geminichat/server/internal/storage"
)

// who wrote a message
type Sender string

const (
	SenderUser   Sender = "user"
	SenderGemini Sender = "gemini"
)

// handles chatroom and message database operations
type Repository struct {
	db storage.DB
}

type Chatroom struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID         string    `json:"id"`
	ChatroomID string    `json:"chatroom_id"`
	Sender     Sender    `json:"sender"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
