package responses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hr-server/chatbot-api/internal/domain/dialogue"
)

// ErrorResponse is the error envelope returned to clients.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleError maps domain errors to HTTP responses.
func HandleError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dialogue.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, dialogue.ErrPromptNotFound):
		status = http.StatusNotFound
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   err.Error(),
		Message: message,
	})
}

// MessageResponse is one transcript line.
type MessageResponse struct {
	From string    `json:"from"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// PromptActionResponse describes the intent behind a prompt, if any.
type PromptActionResponse struct {
	Intent  string         `json:"intent"`
	Payload map[string]any `json:"payload,omitempty"`
}

// PromptResponse is one proactive prompt shown alongside the transcript.
type PromptResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Message     string                `json:"message"`
	Priority    string                `json:"priority,omitempty"`
	DocumentURL string                `json:"document_url,omitempty"`
	Action      *PromptActionResponse `json:"action,omitempty"`
}

// SessionResponse is the full session view returned to clients.
type SessionResponse struct {
	ID         string            `json:"id"`
	EmployeeID string            `json:"employee_id,omitempty"`
	Language   string            `json:"language"`
	CreatedAt  time.Time         `json:"created_at"`
	Messages   []MessageResponse `json:"messages"`
	Prompts    []PromptResponse  `json:"prompts"`
}

// TurnResponse wraps the bot replies produced by one turn.
type TurnResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// MapSessionToResponse maps the domain session to its DTO.
func MapSessionToResponse(s *dialogue.Session) SessionResponse {
	return SessionResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Language:   s.Language,
		CreatedAt:  s.CreatedAt,
		Messages:   MapMessagesToResponse(s.Messages),
		Prompts:    mapPromptsToResponse(s.Prompts),
	}
}

// MapMessagesToResponse maps transcript lines to DTOs.
func MapMessagesToResponse(messages []dialogue.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, MessageResponse{
			From: string(m.From),
			Text: m.Text,
			At:   m.At,
		})
	}
	return out
}

func mapPromptsToResponse(prompts []dialogue.ProactivePrompt) []PromptResponse {
	out := make([]PromptResponse, 0, len(prompts))
	for _, p := range prompts {
		resp := PromptResponse{
			ID:          p.ID,
			Title:       p.Title,
			Message:     p.Message,
			Priority:    p.Priority,
			DocumentURL: p.DocumentURL,
		}
		if p.Action != nil {
			resp.Action = &PromptActionResponse{
				Intent:  string(p.Action.Intent),
				Payload: p.Action.Payload,
			}
		}
		out = append(out, resp)
	}
	return out
}
