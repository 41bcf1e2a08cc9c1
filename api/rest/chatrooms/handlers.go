package chatrooms

import (
	"net/http"

	"codeberg.org/geminichat/server/api/rest/pagination"
	"codeberg.org/geminichat/server/geminichat/chatrooms"
	"codeberg.org/geminichat/server/internal/auth"
	"codeberg.org/geminichat/server/internal/errors"
	"codeberg.org/geminichat/server/internal/llm"
	"codeberg.org/geminichat/server/internal/logger"
	"codeberg.org/geminichat/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// CreateChatroomHandler godoc
// @Summary Create a chatroom
// @Tags chatrooms
// @Accept json
// @Produce json
// @Param request body CreateChatroomRequest true "chatroom name"
// @Success 201 {object} chatrooms.Chatroom
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /chatroom [post]
// @Security BearerAuth
func CreateChatroomHandler(store ChatroomStore, cache ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var req CreateChatroomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		ctx := c.Request.Context()

		room, err := store.Create(ctx, userID, req.Name)
		if err != nil {
			errors.InternalError(c, "failed to create chatroom", err)
			return
		}

		if err := cache.Invalidate(ctx, userID); err != nil {
			logger.FromContext(ctx).Warn("failed to invalidate chatroom cache", "user_id", userID, "error", err)
		}

		c.JSON(http.StatusCreated, room)
	}
}

// ListChatroomsHandler godoc
// @Summary List the user's chatrooms
// @Description Served from a short-lived cache when available
// @Tags chatrooms
// @Produce json
// @Success 200 {object} ChatroomsListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /chatroom [get]
// @Security BearerAuth
func ListChatroomsHandler(store ChatroomStore, cache ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)

		rooms, hit, err := cache.Get(ctx, userID)
		if err != nil {
			log.Warn("chatroom cache read failed", "user_id", userID, "error", err)
		}

		if hit {
			c.JSON(http.StatusOK, ChatroomsListResponse{Chatrooms: rooms})
			return
		}

		rooms, err = store.ListByOwner(ctx, userID)
		if err != nil {
			errors.InternalError(c, "failed to list chatrooms", err)
			return
		}

		if err := cache.Set(ctx, userID, rooms); err != nil {
			log.Warn("chatroom cache write failed", "user_id", userID, "error", err)
		}

		c.JSON(http.StatusOK, ChatroomsListResponse{Chatrooms: rooms})
	}
}

// GetChatroomHandler godoc
// @Summary Get a chatroom
// @Tags chatrooms
// @Produce json
// @Param id path string true "chatroom ID"
// @Success 200 {object} chatrooms.Chatroom
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /chatroom/{id} [get]
// @Security BearerAuth
func GetChatroomHandler(store ChatroomStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		room, ok := ownedChatroom(c, store)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, room)
	}
}

// SendMessageHandler godoc
// @Summary Send a message and get the Gemini reply
// @Description Counts against the daily limit of basic users. When Gemini fails the stored reply is a fixed error marker and the message still counts.
// @Tags chatrooms
// @Accept json
// @Produce json
// @Param id path string true "chatroom ID"
// @Param request body SendMessageRequest true "message content"
// @Success 200 {object} chatrooms.Message
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /chatroom/{id}/message [post]
// @Security BearerAuth
func SendMessageHandler(store ChatroomStore, replier llm.Replier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		room, ok := ownedChatroom(c, store)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		log := logger.FromContext(ctx).With("chatroom_id", room.ID)

		if d, gated := ratelimit.DecisionFrom(c); gated {
			log.Debug("message admitted", "tier", d.Tier, "count", d.Count, "remaining", d.Remaining())
		}

		previous, err := store.ListMessages(ctx, room.ID, historyTurns)
		if err != nil {
			errors.InternalError(c, "failed to load conversation", err)
			return
		}

		if _, err := store.AddMessage(ctx, room.ID, chatrooms.SenderUser, req.Content); err != nil {
			errors.InternalError(c, "failed to store message", err)
			return
		}

		reply, err := replier.Reply(ctx, req.Content, toTurns(previous))
		if err != nil {
			log.Warn("gemini reply failed", "error", err)
			reply = llm.FallbackReply
		}

		msg, err := store.AddMessage(ctx, room.ID, chatrooms.SenderGemini, reply)
		if err != nil {
			errors.InternalError(c, "failed to store reply", err)
			return
		}

		c.JSON(http.StatusOK, msg)
	}
}

// ListMessagesHandler godoc
// @Summary List recent messages of a chatroom
// @Tags chatrooms
// @Produce json
// @Param id path string true "chatroom ID"
// @Param limit query int false "max messages (default 50, clamped to 200)"
// @Success 200 {object} MessagesListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /chatroom/{id}/messages [get]
// @Security BearerAuth
func ListMessagesHandler(store ChatroomStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		room, ok := ownedChatroom(c, store)
		if !ok {
			return
		}

		limit := pagination.LimitFromQuery(c, defaultMessagePage, maxMessagePage)

		messages, err := store.ListMessages(c.Request.Context(), room.ID, limit)
		if err != nil {
			errors.InternalError(c, "failed to list messages", err)
			return
		}

		c.JSON(http.StatusOK, MessagesListResponse{Messages: messages})
	}
}

// loads the chatroom named by the path, 404 unless the caller owns it
func ownedChatroom(c *gin.Context, store ChatroomStore) (*chatrooms.Chatroom, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "user not authenticated")
		return nil, false
	}

	chatroomID, ok := errors.ValidatePathUUID(c, "id", "chatroom")
	if !ok {
		return nil, false
	}

	room, err := store.GetForOwner(c.Request.Context(), chatroomID, userID)
	if errors.IsNotFound(err) {
		errors.NotFound(c, "chatroom")
		return nil, false
	}

	if err != nil {
		errors.InternalError(c, "failed to fetch chatroom", err)
		return nil, false
	}

	return room, true
}

func toTurns(messages []chatrooms.Message) []llm.Turn {
	turns := make([]llm.Turn, 0, len(messages))

	for _, m := range messages {
		role := "user"
		if m.Sender == chatrooms.SenderGemini {
			role = "model"
		}

		turns = append(turns, llm.Turn{Role: role, Text: m.Content})
	}

	return turns
}
