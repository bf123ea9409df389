package v1

import (
	"github.com/gin-gonic/gin"

	"hr-server/chatbot-api/internal/interfaces/httpserver/handlers"
)

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/chat/sessions", handler.CreateSession)
	router.GET("/chat/sessions/:session_id", handler.Get)
	router.POST("/chat/sessions/:session_id/messages", handler.PostMessage)
	router.POST("/chat/sessions/:session_id/prompts/:prompt_id/ack", handler.AckPrompt)
	router.POST("/chat/sessions/:session_id/prompts/:prompt_id/dismiss", handler.DismissPrompt)
	router.GET("/chat/sessions/:session_id/events", handler.Events)
}
