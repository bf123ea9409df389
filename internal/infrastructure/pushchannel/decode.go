// Package pushchannel consumes the HR platform's WebSocket push feed
// (employee context and proactive notifications) and fans events out to
// chat sessions and their connected clients.
package pushchannel

import (
	"encoding/json"
	"fmt"
	"strings"

	"hr-server/chatbot-api/internal/domain/dialogue"
)

// Push frame types sent by the platform.
const (
	FrameContext            = "context"
	FrameNotification       = "notification"
	FrameNotificationUpdate = "notification:update"
)

// Frame is the envelope of one pushed message.
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ContextPayload binds the UI's currently selected employee.
type ContextPayload struct {
	EmployeeID string `json:"employeeId"`
}

// notificationPayload is the wire shape of a pushed notification.
type notificationPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Priority    string `json:"priority,omitempty"`
	DocumentURL string `json:"documentUrl,omitempty"`
	Action      *struct {
		Intent  string         `json:"intent"`
		Payload map[string]any `json:"payload,omitempty"`
	} `json:"action,omitempty"`
}

// Event is one decoded push frame.
type Event struct {
	Type         string
	Context      *ContextPayload
	Notification *dialogue.ProactivePrompt
}

// Decode parses a raw push frame. Frames with an unknown type, missing
// required fields, or an unparseable action are rejected; the consumer
// logs and drops them.
func Decode(raw []byte) (Event, error) {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return Event{}, fmt.Errorf("unmarshal frame: %w", err)
	}

	switch frame.Type {
	case FrameContext:
		var payload ContextPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			return Event{}, fmt.Errorf("unmarshal context payload: %w", err)
		}
		if strings.TrimSpace(payload.EmployeeID) == "" {
			return Event{}, fmt.Errorf("context frame without employeeId")
		}
		return Event{Type: frame.Type, Context: &payload}, nil

	case FrameNotification, FrameNotificationUpdate:
		var payload notificationPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			return Event{}, fmt.Errorf("unmarshal notification payload: %w", err)
		}
		if payload.ID == "" {
			return Event{}, fmt.Errorf("notification frame without id")
		}

		prompt := &dialogue.ProactivePrompt{
			ID:          payload.ID,
			Title:       payload.Title,
			Message:     payload.Message,
			Priority:    payload.Priority,
			DocumentURL: payload.DocumentURL,
		}
		if payload.Action != nil {
			intent, err := dialogue.ParseIntent(payload.Action.Intent)
			if err != nil {
				return Event{}, fmt.Errorf("notification %s: %w", payload.ID, err)
			}
			prompt.Action = &dialogue.PromptAction{Intent: intent, Payload: payload.Action.Payload}
		}
		return Event{Type: frame.Type, Notification: prompt}, nil

	default:
		return Event{}, fmt.Errorf("unknown frame type %q", frame.Type)
	}
}
