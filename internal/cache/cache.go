package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"codeberg.org/geminichat/server/geminichat/chatrooms"
	"codeberg.org/geminichat/server/internal/logger"
	"github.com/redis/go-redis/v9"
)

const (
	keyUserChatrooms = "user:%s:chatrooms"

	DefaultChatroomTTL = 600 * time.Second
)

// read-through cache of a user's chatroom list
type ChatroomCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// creates a chatroom list cache
func NewChatroomCache(client redis.Cmdable, ttl time.Duration) *ChatroomCache {
	if ttl <= 0 {
		ttl = DefaultChatroomTTL
	}

	return &ChatroomCache{client: client, ttl: ttl}
}

// returns the cached list, ok is false on a miss
// corrupt entries are deleted and reported as a miss
func (c *ChatroomCache) Get(ctx context.Context, userID string) ([]chatrooms.Chatroom, bool, error) {
	key := fmt.Sprintf(keyUserChatrooms, userID)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("failed to read chatroom cache: %w", err)
	}

	var rooms []chatrooms.Chatroom
	if err := json.Unmarshal(data, &rooms); err != nil || rooms == nil {
		logger.FromContext(ctx).Warn("bad chatroom cache entry, clearing", "user_id", userID, "error", err)

		if err := c.Invalidate(ctx, userID); err != nil {
			return nil, false, err
		}

		return nil, false, nil
	}

	return rooms, true, nil
}

// stores the list with the configured TTL
func (c *ChatroomCache) Set(ctx context.Context, userID string, rooms []chatrooms.Chatroom) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("failed to encode chatroom cache: %w", err)
	}

	if err := c.client.Set(ctx, fmt.Sprintf(keyUserChatrooms, userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write chatroom cache: %w", err)
	}

	return nil
}

// drops the cached list
func (c *ChatroomCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, fmt.Sprintf(keyUserChatrooms, userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear chatroom cache: %w", err)
	}

	return nil
}
