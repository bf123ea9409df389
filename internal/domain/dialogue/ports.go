package dialogue

import (
	"context"

	"hr-server/chatbot-api/internal/domain/hr"
)

// Intent submission outcome statuses returned by the platform.
const (
	OutcomeNeedsConfirmation = "needs-confirmation"
	OutcomeCompleted         = "completed"
)

// IntentSubmission is the POST /api/chatbot/intents body.
type IntentSubmission struct {
	Intent     IntentTag      `json:"intent"`
	Payload    map[string]any `json:"payload"`
	Confirm    bool           `json:"confirm"`
	EmployeeID string         `json:"employeeId,omitempty"`
}

// OutcomeConfirmation is the confirmation token the platform hands back
// for needs-confirmation intents.
type OutcomeConfirmation struct {
	Message string         `json:"message"`
	Payload map[string]any `json:"payload"`
}

// IntentOutcome is the platform's reply to an intent submission.
type IntentOutcome struct {
	Status       string               `json:"status"`
	Message      string               `json:"message,omitempty"`
	Confirmation *OutcomeConfirmation `json:"confirmation,omitempty"`
}

// HRClient is the engine's view of the HR platform REST API. Calls are
// never retried; each failure surfaces as a single chat line.
type HRClient interface {
	// Directory lookups for entity slots.
	Employee(ctx context.Context, id string) (hr.Employee, error)
	Assets(ctx context.Context) ([]hr.Asset, error)
	Cars(ctx context.Context) ([]hr.Car, error)

	// Loans.
	Loans(ctx context.Context) ([]hr.Loan, error)
	CreateLoan(ctx context.Context, loan hr.Loan) (hr.Loan, error)
	UpdateLoan(ctx context.Context, id string, monthlyDeduction float64) error

	// Employees and payroll events.
	UpdateEmployee(ctx context.Context, id string, fields map[string]string) error
	CreateEmployeeEvent(ctx context.Context, event hr.EmployeeEvent) (hr.EmployeeEvent, error)

	// Asset assignments.
	AssetAssignments(ctx context.Context, employeeID string) ([]hr.AssetAssignment, error)
	CreateAssetAssignment(ctx context.Context, assignment hr.AssetAssignment) (hr.AssetAssignment, error)
	ReturnAssetAssignment(ctx context.Context, id string) error
	UploadAssetDocument(ctx context.Context, assetID string, doc hr.Document) error

	// Car assignments.
	CarAssignments(ctx context.Context, employeeID string) ([]hr.CarAssignment, error)
	CreateCarAssignment(ctx context.Context, assignment hr.CarAssignment) (hr.CarAssignment, error)
	ReturnCarAssignment(ctx context.Context, id string) error

	// Documents.
	UploadEmployeeDocument(ctx context.Context, employeeID string, doc hr.Document) error

	// Chatbot reads.
	Knowledge(ctx context.Context, query string, limit int) ([]hr.KnowledgeEntry, error)
	LoanStatus(ctx context.Context, employeeID string) (hr.LoanStatus, error)
	EmployeeSummary(ctx context.Context, employeeID string) (hr.EmployeeSummary, error)
	ReportSummary(ctx context.Context, employeeID string) (hr.ReportSummary, error)
	MonthlySummary(ctx context.Context, employeeID string) (hr.MonthlySummary, error)
	EmployeeDocuments(ctx context.Context, employeeID string) ([]hr.EmployeeDocument, error)

	// Server-confirmed intents.
	SubmitIntent(ctx context.Context, submission IntentSubmission) (IntentOutcome, error)
}
