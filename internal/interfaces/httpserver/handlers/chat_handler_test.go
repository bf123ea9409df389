package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-server/chatbot-api/internal/config"
	"hr-server/chatbot-api/internal/domain/dialogue"
	"hr-server/chatbot-api/internal/domain/hr"
	"hr-server/chatbot-api/internal/domain/i18n"
	"hr-server/chatbot-api/internal/domain/receipt"
	"hr-server/chatbot-api/internal/infrastructure/pushchannel"
	"hr-server/chatbot-api/internal/interfaces/httpserver/handlers"
)

// stubHRClient satisfies dialogue.HRClient with zero values. The
// handler tests only exercise flows that never reach the platform.
type stubHRClient struct{}

func (stubHRClient) Employee(context.Context, string) (hr.Employee, error) {
	return hr.Employee{}, nil
}
func (stubHRClient) Assets(context.Context) ([]hr.Asset, error) { return nil, nil }
func (stubHRClient) Cars(context.Context) ([]hr.Car, error)     { return nil, nil }
func (stubHRClient) Loans(context.Context) ([]hr.Loan, error)   { return nil, nil }
func (stubHRClient) CreateLoan(context.Context, hr.Loan) (hr.Loan, error) {
	return hr.Loan{}, nil
}
func (stubHRClient) UpdateLoan(context.Context, string, float64) error        { return nil }
func (stubHRClient) UpdateEmployee(context.Context, string, map[string]string) error {
	return nil
}
func (stubHRClient) CreateEmployeeEvent(context.Context, hr.EmployeeEvent) (hr.EmployeeEvent, error) {
	return hr.EmployeeEvent{}, nil
}
func (stubHRClient) AssetAssignments(context.Context, string) ([]hr.AssetAssignment, error) {
	return nil, nil
}
func (stubHRClient) CreateAssetAssignment(context.Context, hr.AssetAssignment) (hr.AssetAssignment, error) {
	return hr.AssetAssignment{}, nil
}
func (stubHRClient) ReturnAssetAssignment(context.Context, string) error { return nil }
func (stubHRClient) UploadAssetDocument(context.Context, string, hr.Document) error {
	return nil
}
func (stubHRClient) CarAssignments(context.Context, string) ([]hr.CarAssignment, error) {
	return nil, nil
}
func (stubHRClient) CreateCarAssignment(context.Context, hr.CarAssignment) (hr.CarAssignment, error) {
	return hr.CarAssignment{}, nil
}
func (stubHRClient) ReturnCarAssignment(context.Context, string) error { return nil }
func (stubHRClient) UploadEmployeeDocument(context.Context, string, hr.Document) error {
	return nil
}
func (stubHRClient) Knowledge(context.Context, string, int) ([]hr.KnowledgeEntry, error) {
	return nil, nil
}
func (stubHRClient) LoanStatus(context.Context, string) (hr.LoanStatus, error) {
	return hr.LoanStatus{}, nil
}
func (stubHRClient) EmployeeSummary(context.Context, string) (hr.EmployeeSummary, error) {
	return hr.EmployeeSummary{}, nil
}
func (stubHRClient) ReportSummary(context.Context, string) (hr.ReportSummary, error) {
	return hr.ReportSummary{}, nil
}
func (stubHRClient) MonthlySummary(context.Context, string) (hr.MonthlySummary, error) {
	return hr.MonthlySummary{}, nil
}
func (stubHRClient) EmployeeDocuments(context.Context, string) ([]hr.EmployeeDocument, error) {
	return nil, nil
}
func (stubHRClient) SubmitIntent(context.Context, dialogue.IntentSubmission) (dialogue.IntentOutcome, error) {
	return dialogue.IntentOutcome{}, nil
}

// memoryRepository keeps sessions in a map for handler tests.
type memoryRepository struct {
	sessions map[string]*dialogue.Session
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{sessions: make(map[string]*dialogue.Session)}
}

func (r *memoryRepository) Create(_ context.Context, s *dialogue.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *memoryRepository) FindByPublicID(_ context.Context, id string) (*dialogue.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, dialogue.ErrSessionNotFound
	}
	return s, nil
}

func (r *memoryRepository) Save(_ context.Context, s *dialogue.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *memoryRepository) ListOpen(_ context.Context) ([]*dialogue.Session, error) {
	out := make([]*dialogue.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogue, err := i18n.Load()
	require.NoError(t, err)

	log := zerolog.Nop()
	repo := newMemoryRepository()
	engine := dialogue.NewEngine(stubHRClient{}, catalogue, receipt.NewBuilder(catalogue), log)
	service := dialogue.NewService(repo, engine, log)

	cfg := &config.Config{DefaultLanguage: "en"}
	handler := handlers.NewChatHandler(cfg, service, pushchannel.NewHub(log), log)

	router := gin.New()
	router.POST("/v1/chat/sessions", handler.CreateSession)
	router.GET("/v1/chat/sessions/:session_id", handler.Get)
	router.POST("/v1/chat/sessions/:session_id/messages", handler.PostMessage)
	router.POST("/v1/chat/sessions/:session_id/prompts/:prompt_id/dismiss", handler.DismissPrompt)
	return router, repo
}

func testTime() time.Time {
	return time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC)
}

func TestCreateSessionGreets(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/sessions", bytes.NewBufferString(`{"employee_id":"emp-1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		ID       string `json:"id"`
		Language string `json:"language"`
		Messages []struct {
			From string `json:"from"`
			Text string `json:"text"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.ID, "chat_")
	assert.Equal(t, "en", body.Language)
	require.Len(t, body.Messages, 1)
	assert.Equal(t, "bot", body.Messages[0].From)
}

func TestGetUnknownSessionReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/chat/sessions/chat_missing", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostMessageRunsTurn(t *testing.T) {
	router, repo := newTestRouter(t)

	session := dialogue.NewSession("chat_t1", "emp-1", "en", testTime())
	require.NoError(t, repo.Create(context.Background(), session))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/sessions/chat_t1/messages", bytes.NewBufferString(`{"text":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Messages []struct {
			Text string `json:"text"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Messages, 1)
	assert.Equal(t, "How can I help?", body.Messages[0].Text)
}

func TestPostMessageRejectsBadBody(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/sessions/chat_t1/messages", bytes.NewBufferString(`{`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDismissUnknownPromptReturns404(t *testing.T) {
	router, repo := newTestRouter(t)

	session := dialogue.NewSession("chat_t2", "emp-1", "en", testTime())
	require.NoError(t, repo.Create(context.Background(), session))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/sessions/chat_t2/prompts/n-404/dismiss", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
