package dialogue

import "time"

// Session is the full conversational state for one chat thread. At most
// one pending intent and one server confirmation exist at a time; the
// turn engine enforces both invariants.
type Session struct {
	ID         string
	EmployeeID string
	Language   string

	// ReferenceTime is captured once at session creation and anchors
	// all natural-language date resolution for the conversation.
	ReferenceTime time.Time

	Messages     []Message
	Pending      Pending
	Confirmation *ServerConfirmation
	Prompts      []ProactivePrompt

	// PersistedMessages tracks how many transcript lines the repository
	// has already stored, so saves only append the tail.
	PersistedMessages int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServerConfirmation holds the round-trip confirmation token returned
// by the platform for needs-confirmation intents.
type ServerConfirmation struct {
	Intent  IntentTag      `json:"intent"`
	Message string         `json:"message"`
	Payload map[string]any `json:"payload,omitempty"`
}

// NewSession creates an empty session anchored at now.
func NewSession(id, employeeID, language string, now time.Time) *Session {
	return &Session{
		ID:            id,
		EmployeeID:    employeeID,
		Language:      language,
		ReferenceTime: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AddUser appends a user line to the transcript.
func (s *Session) AddUser(text string) {
	s.Messages = append(s.Messages, Message{From: RoleUser, Text: text, At: time.Now()})
}

// AddBot appends a bot line to the transcript.
func (s *Session) AddBot(text string) {
	s.Messages = append(s.Messages, Message{From: RoleBot, Text: text, At: time.Now()})
}

// SetEmployee binds the session to an employee only when none is bound
// yet. It never overrides the subject of an in-progress conversation.
func (s *Session) SetEmployee(id string) bool {
	if s.EmployeeID != "" || id == "" {
		return false
	}
	s.EmployeeID = id
	return true
}

// AddPrompt retains a proactive prompt, de-duplicating by ID and
// evicting the oldest once MaxPrompts is reached. It reports whether
// the prompt was added.
func (s *Session) AddPrompt(p ProactivePrompt) bool {
	for _, existing := range s.Prompts {
		if existing.ID == p.ID {
			return false
		}
	}
	if len(s.Prompts) >= MaxPrompts {
		s.Prompts = s.Prompts[1:]
	}
	s.Prompts = append(s.Prompts, p)
	return true
}

// RemovePrompt drops the prompt with the given ID and returns it.
func (s *Session) RemovePrompt(id string) (ProactivePrompt, bool) {
	for i, p := range s.Prompts {
		if p.ID == id {
			s.Prompts = append(s.Prompts[:i], s.Prompts[i+1:]...)
			return p, true
		}
	}
	return ProactivePrompt{}, false
}

// ClearPending destroys the active pending intent, if any.
func (s *Session) ClearPending() {
	s.Pending = nil
}

// ClearConfirmation destroys the active server confirmation, if any.
func (s *Session) ClearConfirmation() {
	s.Confirmation = nil
}
