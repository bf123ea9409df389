package hrapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-server/chatbot-api/internal/domain/dialogue"
	"hr-server/chatbot-api/internal/domain/hr"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		BaseURL:      server.URL,
		Timeout:      5 * time.Second,
		DirectoryTTL: time.Minute,
	})
}

func TestEmployeeFetch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/employees/emp-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hr.Employee{ID: "emp-1", Name: "Jane Doe", Position: "Engineer"})
	}))

	employee, err := client.Employee(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", employee.Name)
}

func TestErrorEnvelopeDecodesToAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"monthlySummaryForbidden","message":"forbidden"}}`))
	}))

	_, err := client.MonthlySummary(context.Background(), "emp-1")
	require.Error(t, err)

	var apiErr *hr.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "monthlySummaryForbidden", apiErr.Code)
}

func TestErrorWithoutEnvelopeStillYieldsAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))

	_, err := client.Loans(context.Background())
	require.Error(t, err)

	var apiErr *hr.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.Code)
}

func TestAssetsServedFromCache(t *testing.T) {
	hits := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]hr.Asset{{ID: "asset-1", Name: "MacBook Pro"}})
	}))

	ctx := context.Background()
	first, err := client.Assets(ctx)
	require.NoError(t, err)
	second, err := client.Assets(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits)
}

func TestSubmitIntentRoundTrip(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chatbot/intents", r.URL.Path)

		var submission dialogue.IntentSubmission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submission))
		assert.Equal(t, dialogue.IntentRequestVacation, submission.Intent)
		assert.False(t, submission.Confirm)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dialogue.IntentOutcome{
			Status:       dialogue.OutcomeNeedsConfirmation,
			Confirmation: &dialogue.OutcomeConfirmation{Message: "Request 5 days?"},
		})
	}))

	outcome, err := client.SubmitIntent(context.Background(), dialogue.IntentSubmission{
		Intent:     dialogue.IntentRequestVacation,
		Payload:    map[string]any{"startDate": "2024-07-15"},
		EmployeeID: "emp-1",
	})
	require.NoError(t, err)

	assert.Equal(t, dialogue.OutcomeNeedsConfirmation, outcome.Status)
	require.NotNil(t, outcome.Confirmation)
	assert.Equal(t, "Request 5 days?", outcome.Confirmation.Message)
}

func TestUpdateLoanSendsPut(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/loans/loan-2", r.URL.Path)

		var body map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 75.0, body["monthlyDeduction"])
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.UpdateLoan(context.Background(), "loan-2", 75)
	require.NoError(t, err)
}

func TestUpdateEmployeeSendsPut(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/employees/emp-1", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Senior Engineer", body["position"])
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.UpdateEmployee(context.Background(), "emp-1", map[string]string{"position": "Senior Engineer"})
	require.NoError(t, err)
}

func TestReturnAssignmentsPostToAssignmentPath(t *testing.T) {
	var gotPaths []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotPaths = append(gotPaths, r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "returned", body["status"])
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.ReturnAssetAssignment(context.Background(), "as-1"))
	require.NoError(t, client.ReturnCarAssignment(context.Background(), "ca-1"))

	assert.Equal(t, []string{"/api/asset-assignments/as-1", "/api/car-assignments/ca-1"}, gotPaths)
}
