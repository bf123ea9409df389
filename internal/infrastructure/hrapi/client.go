// Package hrapi is the REST client for the HR platform. Failed calls
// carry the platform's error code so the dialogue layer can localize
// them; transport failures surface as plain errors.
package hrapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"hr-server/chatbot-api/internal/domain/dialogue"
	"hr-server/chatbot-api/internal/domain/hr"
	"hr-server/chatbot-api/internal/infrastructure/metrics"
)

// Config controls the platform client.
type Config struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	DirectoryTTL time.Duration
}

// Client implements the dialogue.HRClient interface.
type Client struct {
	httpClient *resty.Client
	assets     *directoryCache[hr.Asset]
	cars       *directoryCache[hr.Car]
}

// NewClient creates a Resty-backed platform client.
func NewClient(cfg Config) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)
	if cfg.APIKey != "" {
		httpClient.SetHeader("X-Api-Key", cfg.APIKey)
	}

	return &Client{
		httpClient: httpClient,
		assets:     newDirectoryCache[hr.Asset](cfg.DirectoryTTL),
		cars:       newDirectoryCache[hr.Car](cfg.DirectoryTTL),
	}
}

// Ensure interface compliance.
var _ dialogue.HRClient = (*Client)(nil)

// Employee fetches one employee record.
func (c *Client) Employee(ctx context.Context, id string) (hr.Employee, error) {
	var employee hr.Employee
	err := c.get(ctx, "employee", "/api/employees/{id}", map[string]string{"id": id}, nil, &employee)
	return employee, err
}

// Assets lists the asset directory, served from a short-lived cache.
func (c *Client) Assets(ctx context.Context) ([]hr.Asset, error) {
	return c.assets.get(func() ([]hr.Asset, error) {
		var assets []hr.Asset
		err := c.get(ctx, "assets", "/api/assets", nil, nil, &assets)
		return assets, err
	})
}

// Cars lists the fleet directory, served from a short-lived cache.
func (c *Client) Cars(ctx context.Context) ([]hr.Car, error) {
	return c.cars.get(func() ([]hr.Car, error) {
		var cars []hr.Car
		err := c.get(ctx, "cars", "/api/cars", nil, nil, &cars)
		return cars, err
	})
}

// Loans lists all loans.
func (c *Client) Loans(ctx context.Context) ([]hr.Loan, error) {
	var loans []hr.Loan
	err := c.get(ctx, "loans", "/api/loans", nil, nil, &loans)
	return loans, err
}

// CreateLoan creates a loan and returns the stored record.
func (c *Client) CreateLoan(ctx context.Context, loan hr.Loan) (hr.Loan, error) {
	var created hr.Loan
	err := c.post(ctx, "create_loan", "/api/loans", nil, loan, &created)
	return created, err
}

// UpdateLoan changes the monthly deduction of one loan.
func (c *Client) UpdateLoan(ctx context.Context, id string, monthlyDeduction float64) error {
	body := map[string]float64{"monthlyDeduction": monthlyDeduction}
	return c.put(ctx, "update_loan", "/api/loans/{id}", map[string]string{"id": id}, body)
}

// UpdateEmployee replaces the given employee fields.
func (c *Client) UpdateEmployee(ctx context.Context, id string, fields map[string]string) error {
	return c.put(ctx, "update_employee", "/api/employees/{id}", map[string]string{"id": id}, fields)
}

// CreateEmployeeEvent records a bonus or deduction.
func (c *Client) CreateEmployeeEvent(ctx context.Context, event hr.EmployeeEvent) (hr.EmployeeEvent, error) {
	var created hr.EmployeeEvent
	err := c.post(ctx, "create_event", "/api/employee-events", nil, event, &created)
	return created, err
}

// AssetAssignments lists asset assignments for one employee.
func (c *Client) AssetAssignments(ctx context.Context, employeeID string) ([]hr.AssetAssignment, error) {
	var assignments []hr.AssetAssignment
	err := c.get(ctx, "asset_assignments", "/api/asset-assignments", nil,
		map[string]string{"employeeId": employeeID}, &assignments)
	return assignments, err
}

// CreateAssetAssignment assigns an asset.
func (c *Client) CreateAssetAssignment(ctx context.Context, assignment hr.AssetAssignment) (hr.AssetAssignment, error) {
	var created hr.AssetAssignment
	err := c.post(ctx, "create_asset_assignment", "/api/asset-assignments", nil, assignment, &created)
	return created, err
}

// ReturnAssetAssignment closes an asset assignment.
func (c *Client) ReturnAssetAssignment(ctx context.Context, id string) error {
	return c.post(ctx, "return_asset_assignment", "/api/asset-assignments/{id}",
		map[string]string{"id": id}, map[string]string{"status": "returned"}, nil)
}

// UploadAssetDocument attaches a document to an asset.
func (c *Client) UploadAssetDocument(ctx context.Context, assetID string, doc hr.Document) error {
	return c.post(ctx, "upload_asset_document", "/api/assets/{id}/documents",
		map[string]string{"id": assetID}, doc, nil)
}

// CarAssignments lists car assignments for one employee.
func (c *Client) CarAssignments(ctx context.Context, employeeID string) ([]hr.CarAssignment, error) {
	var assignments []hr.CarAssignment
	err := c.get(ctx, "car_assignments", "/api/car-assignments", nil,
		map[string]string{"employeeId": employeeID}, &assignments)
	return assignments, err
}

// CreateCarAssignment assigns a car.
func (c *Client) CreateCarAssignment(ctx context.Context, assignment hr.CarAssignment) (hr.CarAssignment, error) {
	var created hr.CarAssignment
	err := c.post(ctx, "create_car_assignment", "/api/car-assignments", nil, assignment, &created)
	return created, err
}

// ReturnCarAssignment closes a car assignment.
func (c *Client) ReturnCarAssignment(ctx context.Context, id string) error {
	return c.post(ctx, "return_car_assignment", "/api/car-assignments/{id}",
		map[string]string{"id": id}, map[string]string{"status": "returned"}, nil)
}

// UploadEmployeeDocument attaches a document to an employee.
func (c *Client) UploadEmployeeDocument(ctx context.Context, employeeID string, doc hr.Document) error {
	return c.post(ctx, "upload_employee_document", "/api/employees/{id}/documents",
		map[string]string{"id": employeeID}, doc, nil)
}

// Knowledge queries the chatbot knowledge base.
func (c *Client) Knowledge(ctx context.Context, query string, limit int) ([]hr.KnowledgeEntry, error) {
	var entries []hr.KnowledgeEntry
	err := c.get(ctx, "knowledge", "/api/chatbot/knowledge", nil,
		map[string]string{"q": query, "limit": fmt.Sprintf("%d", limit)}, &entries)
	return entries, err
}

// LoanStatus fetches the loan rollup for one employee.
func (c *Client) LoanStatus(ctx context.Context, employeeID string) (hr.LoanStatus, error) {
	var status hr.LoanStatus
	err := c.get(ctx, "loan_status", "/api/chatbot/loan-status/{id}",
		map[string]string{"id": employeeID}, nil, &status)
	return status, err
}

// EmployeeSummary fetches the employee overview.
func (c *Client) EmployeeSummary(ctx context.Context, employeeID string) (hr.EmployeeSummary, error) {
	var summary hr.EmployeeSummary
	err := c.get(ctx, "employee_summary", "/api/chatbot/employee-summary/{id}",
		map[string]string{"id": employeeID}, nil, &summary)
	return summary, err
}

// ReportSummary fetches the report rollup.
func (c *Client) ReportSummary(ctx context.Context, employeeID string) (hr.ReportSummary, error) {
	var report hr.ReportSummary
	err := c.get(ctx, "report_summary", "/api/chatbot/report-summary/{id}",
		map[string]string{"id": employeeID}, nil, &report)
	return report, err
}

// MonthlySummary fetches the monthly rollup.
func (c *Client) MonthlySummary(ctx context.Context, employeeID string) (hr.MonthlySummary, error) {
	var summary hr.MonthlySummary
	err := c.get(ctx, "monthly_summary", "/api/chatbot/monthly-summary/{id}",
		map[string]string{"id": employeeID}, nil, &summary)
	return summary, err
}

// EmployeeDocuments lists the documents attached to one employee.
func (c *Client) EmployeeDocuments(ctx context.Context, employeeID string) ([]hr.EmployeeDocument, error) {
	var docs []hr.EmployeeDocument
	err := c.get(ctx, "employee_documents", "/api/employees/{id}/documents",
		map[string]string{"id": employeeID}, nil, &docs)
	return docs, err
}

// SubmitIntent sends a server-confirmed intent to the platform.
func (c *Client) SubmitIntent(ctx context.Context, submission dialogue.IntentSubmission) (dialogue.IntentOutcome, error) {
	var outcome dialogue.IntentOutcome
	err := c.post(ctx, "submit_intent", "/api/chatbot/intents", nil, submission, &outcome)
	return outcome, err
}

func (c *Client) get(ctx context.Context, endpoint, path string, pathParams, queryParams map[string]string, result any) error {
	req := c.httpClient.R().SetContext(ctx)
	if pathParams != nil {
		req.SetPathParams(pathParams)
	}
	if queryParams != nil {
		req.SetQueryParams(queryParams)
	}
	if result != nil {
		req.SetResult(result)
	}

	start := time.Now()
	resp, err := req.Get(path)
	return c.finish(endpoint, start, resp, err)
}

func (c *Client) post(ctx context.Context, endpoint, path string, pathParams map[string]string, body, result any) error {
	req := c.httpClient.R().SetContext(ctx)
	if pathParams != nil {
		req.SetPathParams(pathParams)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	start := time.Now()
	resp, err := req.Post(path)
	return c.finish(endpoint, start, resp, err)
}

func (c *Client) put(ctx context.Context, endpoint, path string, pathParams map[string]string, body any) error {
	req := c.httpClient.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		SetBody(body)

	start := time.Now()
	resp, err := req.Put(path)
	return c.finish(endpoint, start, resp, err)
}

func (c *Client) finish(endpoint string, start time.Time, resp *resty.Response, err error) error {
	duration := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordPlatformRequest(endpoint, "error", duration)
		return fmt.Errorf("hr api %s: %w", endpoint, err)
	}

	metrics.RecordPlatformRequest(endpoint, resp.Status(), duration)
	if resp.IsError() {
		return decodeAPIError(resp)
	}
	return nil
}

// decodeAPIError maps a platform error body to hr.APIError. Bodies that
// do not match the error envelope still produce an APIError with an
// empty code, which localizes to the general error text.
func decodeAPIError(resp *resty.Response) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(resp.Body(), &envelope)

	return &hr.APIError{
		StatusCode: resp.StatusCode(),
		Code:       envelope.Error.Code,
		Message:    envelope.Error.Message,
	}
}
