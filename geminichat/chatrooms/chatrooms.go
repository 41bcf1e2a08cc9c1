package chatrooms

import (
	"context"
	"fmt"
	"slices"

	"codeberg.org/geminichat/server/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// creates a new chatroom repository
func NewRepository(db storage.DB) *Repository {
	return &Repository{db: db}
}

// creates a chatroom owned by ownerID
func (r *Repository) Create(ctx context.Context, ownerID, name string) (*Chatroom, error) {
	return scanChatroom(r.db.QueryRow(ctx, queryCreate, uuid.NewString(), ownerID, name))
}

// lists the chatrooms of a user, oldest first
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]Chatroom, error) {
	rows, err := r.db.Query(ctx, queryListByOwner, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chatrooms: %w", err)
	}

	defer rows.Close()

	rooms := []Chatroom{}

	for rows.Next() {
		room, err := scanChatroom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chatroom: %w", err)
		}

		rooms = append(rooms, *room)
	}

	return rooms, rows.Err()
}

// returns a chatroom only if ownerID owns it, pgx.ErrNoRows otherwise
func (r *Repository) GetForOwner(ctx context.Context, chatroomID, ownerID string) (*Chatroom, error) {
	return scanChatroom(r.db.QueryRow(ctx, queryGetForOwner, chatroomID, ownerID))
}

// appends a message to a chatroom
func (r *Repository) AddMessage(ctx context.Context, chatroomID string, sender Sender, content string) (*Message, error) {
	msg, err := scanMessage(r.db.QueryRow(ctx, queryAddMessage, uuid.NewString(), chatroomID, string(sender), content))
	if err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	return msg, nil
}

// returns the latest limit messages in chronological order
func (r *Repository) ListMessages(ctx context.Context, chatroomID string, limit int) ([]Message, error) {
	rows, err := r.db.Query(ctx, queryListMessages, chatroomID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	defer rows.Close()

	messages := []Message{}

	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		messages = append(messages, *msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.Reverse(messages)

	return messages, nil
}

func scanChatroom(row pgx.Row) (*Chatroom, error) {
	var room Chatroom

	if err := row.Scan(&room.ID, &room.OwnerID, &room.Name, &room.CreatedAt); err != nil {
		return nil, err
	}

	return &room, nil
}

func scanMessage(row pgx.Row) (*Message, error) {
	var (
		msg    Message
		sender string
	)

	if err := row.Scan(&msg.ID, &msg.ChatroomID, &sender, &msg.Content, &msg.CreatedAt); err != nil {
		return nil, err
	}

	msg.Sender = Sender(sender)

	return &msg, nil
}
