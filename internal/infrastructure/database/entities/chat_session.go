package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"hr-server/chatbot-api/internal/domain/dialogue"
)

// ChatSession represents the database schema for chat sessions. Pending
// intents, the outstanding server confirmation, and retained prompts
// are stored as JSON so the slot-filling state survives restarts.
type ChatSession struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID      string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	EmployeeID    string         `gorm:"type:varchar(64);index"`
	Language      string         `gorm:"type:varchar(8);not null;default:'en'"`
	Status        string         `gorm:"type:varchar(16);index;not null;default:'open'"`
	ReferenceTime time.Time      `gorm:"not null"`
	Pending       datatypes.JSON `gorm:"type:jsonb"`
	Confirmation  datatypes.JSON `gorm:"type:jsonb"`
	Prompts       datatypes.JSON `gorm:"type:jsonb"`

	Messages []ChatMessage `gorm:"foreignKey:SessionID"`
}

// TableName specifies the table name for ChatSession.
func (ChatSession) TableName() string {
	return "chat_sessions"
}

// SessionOpen marks a session that still receives pushed prompts.
const SessionOpen = "open"

// EtoD converts the database entity to the domain session.
func (s *ChatSession) EtoD() (*dialogue.Session, error) {
	pending, err := dialogue.DecodePending(s.Pending)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.PublicID, err)
	}

	var confirmation *dialogue.ServerConfirmation
	if len(s.Confirmation) > 0 {
		confirmation = &dialogue.ServerConfirmation{}
		if err := json.Unmarshal(s.Confirmation, confirmation); err != nil {
			return nil, fmt.Errorf("session %s confirmation: %w", s.PublicID, err)
		}
	}

	var prompts []dialogue.ProactivePrompt
	if len(s.Prompts) > 0 {
		if err := json.Unmarshal(s.Prompts, &prompts); err != nil {
			return nil, fmt.Errorf("session %s prompts: %w", s.PublicID, err)
		}
	}

	messages := make([]dialogue.Message, len(s.Messages))
	for i, m := range s.Messages {
		messages[i] = m.EtoD()
	}

	return &dialogue.Session{
		ID:                s.PublicID,
		EmployeeID:        s.EmployeeID,
		Language:          s.Language,
		ReferenceTime:     s.ReferenceTime,
		Messages:          messages,
		Pending:           pending,
		Confirmation:      confirmation,
		Prompts:           prompts,
		PersistedMessages: len(messages),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}, nil
}

// NewSchemaChatSession creates a database entity from the domain
// session, excluding messages. Transcript lines are appended separately
// so existing rows are never rewritten.
func NewSchemaChatSession(session *dialogue.Session) (*ChatSession, error) {
	pending, err := dialogue.EncodePending(session.Pending)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", session.ID, err)
	}

	var confirmation []byte
	if session.Confirmation != nil {
		confirmation, err = json.Marshal(session.Confirmation)
		if err != nil {
			return nil, fmt.Errorf("session %s confirmation: %w", session.ID, err)
		}
	}

	var prompts []byte
	if len(session.Prompts) > 0 {
		prompts, err = json.Marshal(session.Prompts)
		if err != nil {
			return nil, fmt.Errorf("session %s prompts: %w", session.ID, err)
		}
	}

	return &ChatSession{
		PublicID:      session.ID,
		EmployeeID:    session.EmployeeID,
		Language:      session.Language,
		Status:        SessionOpen,
		ReferenceTime: session.ReferenceTime,
		Pending:       pending,
		Confirmation:  confirmation,
		Prompts:       prompts,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}, nil
}
