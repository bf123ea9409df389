package handlers

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hr-server/chatbot-api/internal/config"
	"hr-server/chatbot-api/internal/domain/dialogue"
	"hr-server/chatbot-api/internal/infrastructure/metrics"
	"hr-server/chatbot-api/internal/infrastructure/observability"
	"hr-server/chatbot-api/internal/infrastructure/pushchannel"
	"hr-server/chatbot-api/internal/interfaces/httpserver/requests"
	"hr-server/chatbot-api/internal/interfaces/httpserver/responses"
)

// ChatHandler exposes HTTP entrypoints for chat sessions.
type ChatHandler struct {
	cfg     *config.Config
	service *dialogue.Service
	hub     *pushchannel.Hub
	log     zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(cfg *config.Config, service *dialogue.Service, hub *pushchannel.Hub, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		cfg:     cfg,
		service: service,
		hub:     hub,
		log:     log.With().Str("handler", "chat").Logger(),
	}
}

// CreateSession handles POST /v1/chat/sessions
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req requests.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error(), Message: "invalid request body"})
		return
	}

	language := req.Language
	if language == "" {
		language = h.cfg.DefaultLanguage
	}

	session, err := h.service.CreateSession(c.Request.Context(), req.EmployeeID, language)
	if err != nil {
		responses.HandleError(c, err, "failed to create session")
		return
	}

	c.JSON(http.StatusCreated, responses.MapSessionToResponse(session))
}

// Get handles GET /v1/chat/sessions/:session_id
func (h *ChatHandler) Get(c *gin.Context) {
	session, err := h.service.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get session")
		return
	}

	c.JSON(http.StatusOK, responses.MapSessionToResponse(session))
}

// PostMessage handles POST /v1/chat/sessions/:session_id/messages
func (h *ChatHandler) PostMessage(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req requests.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error(), Message: "invalid request body"})
		return
	}

	ctx, span := observability.StartTurnSpan(c.Request.Context(), sessionID, req.Intent)
	defer span.End()

	replies, err := h.service.HandleMessage(ctx, sessionID, dialogue.TurnInput{
		Text:   req.Text,
		Intent: req.Intent,
	})
	if err != nil {
		observability.RecordError(span, err)
		metrics.RecordTurn("error")
		responses.HandleError(c, err, "failed to handle message")
		return
	}

	metrics.RecordTurn("message")
	if req.Intent != "" {
		metrics.RecordIntent(req.Intent, "handled")
	}

	c.JSON(http.StatusOK, responses.TurnResponse{Messages: responses.MapMessagesToResponse(replies)})
}

// AckPrompt handles POST /v1/chat/sessions/:session_id/prompts/:prompt_id/ack
func (h *ChatHandler) AckPrompt(c *gin.Context) {
	replies, err := h.service.AcknowledgePrompt(c.Request.Context(), c.Param("session_id"), c.Param("prompt_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to acknowledge prompt")
		return
	}

	metrics.RecordTurn("prompt_ack")
	c.JSON(http.StatusOK, responses.TurnResponse{Messages: responses.MapMessagesToResponse(replies)})
}

// DismissPrompt handles POST /v1/chat/sessions/:session_id/prompts/:prompt_id/dismiss
func (h *ChatHandler) DismissPrompt(c *gin.Context) {
	if err := h.service.DismissPrompt(c.Request.Context(), c.Param("session_id"), c.Param("prompt_id")); err != nil {
		responses.HandleError(c, err, "failed to dismiss prompt")
		return
	}

	metrics.RecordTurn("prompt_dismiss")
	c.JSON(http.StatusOK, gin.H{"status": "dismissed"})
}

// Events handles GET /v1/chat/sessions/:session_id/events
//
// Upgrades to a WebSocket and streams prompt events for the session
// until the client disconnects. The session must exist.
func (h *ChatHandler) Events(c *gin.Context) {
	sessionID := c.Param("session_id")

	if _, err := h.service.GetSession(c.Request.Context(), sessionID); err != nil {
		responses.HandleError(c, err, "failed to get session")
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("session", sessionID).Msg("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "session closed")

	h.hub.Register(sessionID, conn)
	defer h.hub.Unregister(sessionID, conn)

	// Clients only receive; read until the connection drops so closes
	// and pings are processed.
	ctx := c.Request.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}
