package dialogue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// ErrPromptNotFound is returned for unknown prompt IDs.
var ErrPromptNotFound = errors.New("prompt not found")

// Repository persists dialogue sessions. Messages are append-only; the
// implementation stores only the tail past PersistedMessages.
type Repository interface {
	Create(ctx context.Context, session *Session) error
	FindByPublicID(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	ListOpen(ctx context.Context) ([]*Session, error)
}

// sessionLocks serializes writes per session. Turns, prompt operations,
// and push events all do a load-modify-save cycle on the same row;
// without the lock a concurrent turn and notification would silently
// overwrite each other's pending state and prompts.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Service coordinates session lifecycle, turn handling, and the push
// channel's writes into sessions. Persistence happens after every turn
// so a client reconnect never loses slot-filling progress.
type Service struct {
	sessions Repository
	engine   *Engine
	locks    *sessionLocks
	now      func() time.Time
	log      zerolog.Logger
}

// NewService wires the session service.
func NewService(sessions Repository, engine *Engine, log zerolog.Logger) *Service {
	return &Service{
		sessions: sessions,
		engine:   engine,
		locks:    newSessionLocks(),
		now:      time.Now,
		log:      log.With().Str("component", "chat-service").Logger(),
	}
}

// CreateSession opens a new conversation, optionally bound to an
// employee, and greets the user.
func (s *Service) CreateSession(ctx context.Context, employeeID, language string) (*Session, error) {
	session := NewSession(newPublicID(), employeeID, language, s.now())
	session.AddBot("Hi! Pick an action or ask me a question.")

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// GetSession loads a session with its transcript and prompts.
func (s *Service) GetSession(ctx context.Context, id string) (*Session, error) {
	return s.sessions.FindByPublicID(ctx, id)
}

// withSession loads a session under its lock and runs fn against the
// fresh copy. Every mutating path goes through here.
func (s *Service) withSession(ctx context.Context, id string, fn func(session *Session) error) error {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.sessions.FindByPublicID(ctx, id)
	if err != nil {
		return err
	}
	return fn(session)
}

// HandleMessage runs one turn and persists the result.
func (s *Service) HandleMessage(ctx context.Context, id string, in TurnInput) ([]Message, error) {
	var replies []Message
	err := s.withSession(ctx, id, func(session *Session) error {
		var err error
		replies, err = s.engine.HandleTurn(ctx, session, in)
		if err != nil {
			return err
		}
		if err := s.sessions.Save(ctx, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// AcknowledgePrompt removes a proactive prompt and, when it carries an
// action, re-enters the server-confirmed intent path with it.
func (s *Service) AcknowledgePrompt(ctx context.Context, sessionID, promptID string) ([]Message, error) {
	var replies []Message
	err := s.withSession(ctx, sessionID, func(session *Session) error {
		prompt, found := session.RemovePrompt(promptID)
		if !found {
			return ErrPromptNotFound
		}

		var err error
		replies, err = s.engine.StartPromptAction(ctx, session, prompt)
		if err != nil {
			return err
		}
		if err := s.sessions.Save(ctx, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// DismissPrompt drops a prompt without acting on it.
func (s *Service) DismissPrompt(ctx context.Context, sessionID, promptID string) error {
	return s.withSession(ctx, sessionID, func(session *Session) error {
		if _, found := session.RemovePrompt(promptID); !found {
			return ErrPromptNotFound
		}
		if err := s.sessions.Save(ctx, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	})
}

// ApplyContext binds the pushed employee to every open session that has
// no employee yet. Sessions with a subject are never overridden.
func (s *Service) ApplyContext(ctx context.Context, employeeID string) error {
	sessions, err := s.sessions.ListOpen(ctx)
	if err != nil {
		return err
	}
	for _, candidate := range sessions {
		err := s.withSession(ctx, candidate.ID, func(session *Session) error {
			if !session.SetEmployee(employeeID) {
				return nil
			}
			return s.sessions.Save(ctx, session)
		})
		if err != nil {
			s.log.Error().Err(err).Str("session", candidate.ID).Msg("apply context failed")
		}
	}
	return nil
}

// Notify fans a pushed notification out to all open sessions: one chat
// line plus a dismissible prompt, de-duplicated by prompt ID. It
// returns the sessions that actually changed.
func (s *Service) Notify(ctx context.Context, prompt ProactivePrompt) ([]*Session, error) {
	sessions, err := s.sessions.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	var updated []*Session
	for _, candidate := range sessions {
		err := s.withSession(ctx, candidate.ID, func(session *Session) error {
			if !session.AddPrompt(prompt) {
				return nil
			}
			session.AddBot(fmt.Sprintf("%s: %s", prompt.Title, prompt.Message))
			if err := s.sessions.Save(ctx, session); err != nil {
				return err
			}
			updated = append(updated, session)
			return nil
		})
		if err != nil {
			s.log.Error().Err(err).Str("session", candidate.ID).Msg("notify save failed")
		}
	}
	return updated, nil
}

func newPublicID() string {
	return "chat_" + uuid.NewString()
}
