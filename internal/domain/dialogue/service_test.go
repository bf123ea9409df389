package dialogue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository mimics the row-per-session store: reads hand out
// copies, so concurrent writers can only cooperate through Save.
type memoryRepository struct {
	mu       sync.Mutex
	sessions map[string]*Session
	saves    int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{sessions: make(map[string]*Session)}
}

func cloneSession(s *Session) *Session {
	c := *s
	c.Messages = append([]Message(nil), s.Messages...)
	c.Prompts = append([]ProactivePrompt(nil), s.Prompts...)
	return &c
}

func (r *memoryRepository) Create(_ context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *memoryRepository) FindByPublicID(_ context.Context, id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(session), nil
}

func (r *memoryRepository) Save(_ context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *memoryRepository) ListOpen(_ context.Context) ([]*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		out = append(out, cloneSession(session))
	}
	return out, nil
}

func newTestService(t *testing.T, client HRClient) (*Service, *memoryRepository) {
	t.Helper()
	repo := newMemoryRepository()
	return NewService(repo, newTestEngine(t, client), zerolog.Nop()), repo
}

func TestCreateSessionGreets(t *testing.T) {
	service, repo := newTestService(t, &mockHRClient{})

	session, err := service.CreateSession(context.Background(), "emp-1", "en")
	require.NoError(t, err)

	assert.Contains(t, session.ID, "chat_")
	assert.Equal(t, "emp-1", session.EmployeeID)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, RoleBot, session.Messages[0].From)
	assert.Contains(t, repo.sessions, session.ID)
}

func TestHandleMessagePersistsTurn(t *testing.T) {
	service, repo := newTestService(t, &mockHRClient{})

	session, err := service.CreateSession(context.Background(), "emp-1", "en")
	require.NoError(t, err)

	replies, err := service.HandleMessage(context.Background(), session.ID, TurnInput{Intent: "addBonus"})
	require.NoError(t, err)

	assert.Equal(t, "What is the bonus amount?", lastBotText(t, replies))
	assert.Equal(t, 1, repo.saves)
	assert.NotNil(t, repo.sessions[session.ID].Pending)
}

func TestHandleMessageUnknownSession(t *testing.T) {
	service, _ := newTestService(t, &mockHRClient{})

	_, err := service.HandleMessage(context.Background(), "chat_missing", TurnInput{Text: "hi"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestApplyContextBindsOnlyUnboundSessions(t *testing.T) {
	service, _ := newTestService(t, &mockHRClient{})

	bound, err := service.CreateSession(context.Background(), "emp-1", "en")
	require.NoError(t, err)
	unbound, err := service.CreateSession(context.Background(), "", "en")
	require.NoError(t, err)

	require.NoError(t, service.ApplyContext(context.Background(), "emp-9"))

	updated, err := service.GetSession(context.Background(), unbound.ID)
	require.NoError(t, err)
	assert.Equal(t, "emp-9", updated.EmployeeID)

	untouched, err := service.GetSession(context.Background(), bound.ID)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", untouched.EmployeeID)
}

func TestApplyContextIsIdempotent(t *testing.T) {
	service, _ := newTestService(t, &mockHRClient{})

	session, err := service.CreateSession(context.Background(), "", "en")
	require.NoError(t, err)

	require.NoError(t, service.ApplyContext(context.Background(), "emp-9"))
	require.NoError(t, service.ApplyContext(context.Background(), "emp-9"))
	require.NoError(t, service.ApplyContext(context.Background(), "emp-2"))

	updated, err := service.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "emp-9", updated.EmployeeID)
}

func TestNotifyFansOutToOpenSessions(t *testing.T) {
	service, _ := newTestService(t, &mockHRClient{})

	first, err := service.CreateSession(context.Background(), "emp-1", "en")
	require.NoError(t, err)
	second, err := service.CreateSession(context.Background(), "emp-2", "en")
	require.NoError(t, err)

	prompt := ProactivePrompt{ID: "n1", Title: "Reminder", Message: "Payroll closes Friday."}
	updated, err := service.Notify(context.Background(), prompt)
	require.NoError(t, err)
	assert.Len(t, updated, 2)

	for _, id := range []string{first.ID, second.ID} {
		session, err := service.GetSession(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, session.Prompts, 1)
		assert.Equal(t, "Reminder: Payroll closes Friday.", session.Messages[len(session.Messages)-1].Text)
	}

	// Redelivery of the same prompt ID changes nothing.
	updated, err = service.Notify(context.Background(), prompt)
	require.NoError(t, err)
	assert.Empty(t, updated)
}

func TestAcknowledgePromptRunsAction(t *testing.T) {
	var submitted *IntentSubmission
	mock := &mockHRClient{
		submitIntentFunc: func(_ context.Context, submission IntentSubmission) (IntentOutcome, error) {
			submitted = &submission
			return IntentOutcome{Status: OutcomeCompleted, Message: "Acknowledged the policy."}, nil
		},
	}
	service, _ := newTestService(t, mock)

	session, err := service.CreateSession(context.Background(), "emp-1", "en")
	require.NoError(t, err)

	_, err = service.Notify(context.Background(), ProactivePrompt{
		ID:      "p1",
		Title:   "Policy",
		Message: "Please acknowledge.",
		Action:  &PromptAction{Intent: IntentAcknowledgeDocument, Payload: map[string]any{"documentId": "doc-1"}},
	})
	require.NoError(t, err)

	replies, err := service.AcknowledgePrompt(context.Background(), session.ID, "p1")
	require.NoError(t, err)

	assert.Equal(t, "Acknowledged the policy.", lastBotText(t, replies))
	require.NotNil(t, submitted)
	assert.Equal(t, "doc-1", submitted.Payload["documentId"])

	updated, err := service.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Prompts)
}

func TestTurnSerializesAgainstNotification(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	mock := &mockHRClient{
		submitIntentFunc: func(context.Context, IntentSubmission) (IntentOutcome, error) {
			close(entered)
			<-release
			return IntentOutcome{Status: OutcomeCompleted, Message: "Done."}, nil
		},
	}
	service, repo := newTestService(t, mock)

	session := NewSession("chat_race", "emp-1", "en", time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC))
	session.Confirmation = &ServerConfirmation{Intent: IntentRequestVacation, Message: "Request 5 vacation days?"}
	require.NoError(t, repo.Create(context.Background(), session))

	turnDone := make(chan error, 1)
	go func() {
		_, err := service.HandleMessage(context.Background(), session.ID, TurnInput{Text: "yes"})
		turnDone <- err
	}()
	<-entered

	notifyDone := make(chan struct{})
	go func() {
		defer close(notifyDone)
		_, err := service.Notify(context.Background(), ProactivePrompt{ID: "n-race", Title: "Reminder", Message: "Payroll closes Friday."})
		assert.NoError(t, err)
	}()

	// The notification must wait for the in-flight turn.
	select {
	case <-notifyDone:
		t.Fatal("notification applied while a turn held the session")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-turnDone)
	<-notifyDone

	final, err := service.GetSession(context.Background(), session.ID)
	require.NoError(t, err)

	// Both writes survive: the turn cleared the confirmation and the
	// notification added its prompt plus transcript line.
	assert.Nil(t, final.Confirmation)
	require.Len(t, final.Prompts, 1)
	texts := make([]string, 0, len(final.Messages))
	for _, m := range final.Messages {
		texts = append(texts, m.Text)
	}
	assert.Contains(t, texts, "Done.")
	assert.Contains(t, texts, "Reminder: Payroll closes Friday.")
}

func TestDismissPromptDropsWithoutAction(t *testing.T) {
	mock := &mockHRClient{}
	service, _ := newTestService(t, mock)

	session, err := service.CreateSession(context.Background(), "emp-1", "en")
	require.NoError(t, err)

	_, err = service.Notify(context.Background(), ProactivePrompt{ID: "p1", Title: "Reminder", Message: "Ping."})
	require.NoError(t, err)

	require.NoError(t, service.DismissPrompt(context.Background(), session.ID, "p1"))

	updated, err := service.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Prompts)
	assert.Zero(t, mock.calls)

	err = service.DismissPrompt(context.Background(), session.ID, "p1")
	assert.ErrorIs(t, err, ErrPromptNotFound)
}
