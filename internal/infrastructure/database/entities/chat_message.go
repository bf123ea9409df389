package entities

import (
	"time"

	"hr-server/chatbot-api/internal/domain/dialogue"
)

// ChatMessage represents one transcript line. Rows are append-only.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	SessionID uint   `gorm:"index;not null"`
	Role      string `gorm:"type:varchar(8);not null"`
	Text      string `gorm:"type:text;not null"`
	SentAt    time.Time
}

// TableName specifies the table name for ChatMessage.
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// EtoD converts the database entity to the domain message.
func (m ChatMessage) EtoD() dialogue.Message {
	return dialogue.Message{
		From: dialogue.Role(m.Role),
		Text: m.Text,
		At:   m.SentAt,
	}
}

// NewSchemaChatMessage creates a database entity from a domain message.
func NewSchemaChatMessage(sessionID uint, m dialogue.Message) ChatMessage {
	return ChatMessage{
		SessionID: sessionID,
		Role:      string(m.From),
		Text:      m.Text,
		SentAt:    m.At,
	}
}
