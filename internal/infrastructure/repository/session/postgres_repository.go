// Package session stores dialogue sessions in PostgreSQL. Transcript
// lines are append-only; session state columns are overwritten on save.
package session

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hr-server/chatbot-api/internal/domain/dialogue"
	"hr-server/chatbot-api/internal/infrastructure/database/entities"
)

// Repository persists chat sessions.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a session repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ dialogue.Repository = (*Repository)(nil)

// Create inserts the session record with its initial transcript.
func (r *Repository) Create(ctx context.Context, session *dialogue.Session) error {
	entity, err := entities.NewSchemaChatSession(session)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entity).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		if err := appendMessages(tx, entity.ID, session.Messages); err != nil {
			return err
		}
		session.PersistedMessages = len(session.Messages)
		return nil
	})
}

// FindByPublicID fetches a session with its full transcript.
func (r *Repository) FindByPublicID(ctx context.Context, id string) (*dialogue.Session, error) {
	var entity entities.ChatSession
	if err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("public_id = ?", id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dialogue.ErrSessionNotFound
		}
		return nil, fmt.Errorf("fetch session %s: %w", id, err)
	}
	return entity.EtoD()
}

// Save overwrites the session state and appends new transcript lines.
func (r *Repository) Save(ctx context.Context, session *dialogue.Session) error {
	updated, err := entities.NewSchemaChatSession(session)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entity entities.ChatSession
		if err := tx.Where("public_id = ?", session.ID).First(&entity).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dialogue.ErrSessionNotFound
			}
			return fmt.Errorf("fetch session %s: %w", session.ID, err)
		}

		updates := map[string]any{
			"employee_id":  updated.EmployeeID,
			"pending":      updated.Pending,
			"confirmation": updated.Confirmation,
			"prompts":      updated.Prompts,
			"updated_at":   session.UpdatedAt,
		}
		if err := tx.Model(&entities.ChatSession{}).
			Where("id = ?", entity.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("update session %s: %w", session.ID, err)
		}

		if session.PersistedMessages < len(session.Messages) {
			if err := appendMessages(tx, entity.ID, session.Messages[session.PersistedMessages:]); err != nil {
				return err
			}
			session.PersistedMessages = len(session.Messages)
		}
		return nil
	})
}

// ListOpen fetches every open session, transcripts included. The push
// consumer fans pushed context and notifications out over this set.
func (r *Repository) ListOpen(ctx context.Context) ([]*dialogue.Session, error) {
	var rows []entities.ChatSession
	if err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("status = ?", entities.SessionOpen).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list open sessions: %w", err)
	}

	out := make([]*dialogue.Session, 0, len(rows))
	for i := range rows {
		session, err := rows[i].EtoD()
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	return out, nil
}

func appendMessages(tx *gorm.DB, sessionID uint, messages []dialogue.Message) error {
	if len(messages) == 0 {
		return nil
	}
	rows := make([]entities.ChatMessage, len(messages))
	for i, m := range messages {
		rows[i] = entities.NewSchemaChatMessage(sessionID, m)
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("append messages: %w", err)
	}
	return nil
}
