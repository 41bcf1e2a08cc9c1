package chatrooms

import (
	"codeberg.org/geminichat/server/internal/auth"
	"codeberg.org/geminichat/server/internal/llm"
	"github.com/gin-gonic/gin"
)

// registers the chatroom routes
// limited guards message sends and also authenticates them, nil falls back to plain auth
func RegisterRoutes(router gin.IRouter, verifier auth.Verifier, store ChatroomStore, cache ListCache, replier llm.Replier, limited gin.HandlerFunc) {
	if limited == nil {
		limited = auth.Middleware(verifier)
	}

	router.POST("/chatroom/:id/message", limited, SendMessageHandler(store, replier))

	chatroomsGroup := router.Group("/chatroom")
	chatroomsGroup.Use(auth.Middleware(verifier))
	{
		chatroomsGroup.POST("", CreateChatroomHandler(store, cache))
		chatroomsGroup.GET("", ListChatroomsHandler(store, cache))
		chatroomsGroup.GET("/:id", GetChatroomHandler(store))
		chatroomsGroup.GET("/:id/messages", ListMessagesHandler(store))
	}
}
