package chatrooms

import (
	"context"

	"codeberg.org/geminichat/server/geminichat/chatrooms"
)

const (
	// prior messages sent to the model with each prompt
	historyTurns = 20

	defaultMessagePage = 50
	maxMessagePage     = 200
)

// chatroom persistence needed by the handlers
type ChatroomStore interface {
	Create(ctx context.Context, ownerID, name string) (*chatrooms.Chatroom, error)
	ListByOwner(ctx context.Context, ownerID string) ([]chatrooms.Chatroom, error)
	GetForOwner(ctx context.Context, chatroomID, ownerID string) (*chatrooms.Chatroom, error)
	AddMessage(ctx context.Context, chatroomID string, sender chatrooms.Sender, content string) (*chatrooms.Message, error)
	ListMessages(ctx context.Context, chatroomID string, limit int) ([]chatrooms.Message, error)
}

// per-user chatroom list cache
type ListCache interface {
	Get(ctx context.Context, userID string) ([]chatrooms.Chatroom, bool, error)
	Set(ctx context.Context, userID string, rooms []chatrooms.Chatroom) error
	Invalidate(ctx context.Context, userID string) error
}

type CreateChatroomRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=4000"`
}

type ChatroomsListResponse struct {
	Chatrooms []chatrooms.Chatroom `json:"chatrooms"`
}

type MessagesListResponse struct {
	Messages []chatrooms.Message `json:"messages"`
}
