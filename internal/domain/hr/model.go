// Package hr holds the HR platform's data shapes as consumed by the
// chatbot. The platform owns these records; this service only reads and
// mutates them through the REST contract.
package hr

import "time"

// Employee is the subject of a chat session.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

// Employee fields the chatbot is allowed to update.
const (
	FieldPosition = "position"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldStatus   = "status"
)

// AllowedEmployeeField reports whether the chatbot may edit the field.
func AllowedEmployeeField(field string) bool {
	switch field {
	case FieldPosition, FieldPhone, FieldEmail, FieldStatus:
		return true
	}
	return false
}

// Loan is an employee loan with a fixed monthly deduction.
type Loan struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employeeId"`
	Amount           float64   `json:"amount"`
	MonthlyDeduction float64   `json:"monthlyDeduction"`
	RemainingBalance float64   `json:"remainingBalance"`
	StartDate        time.Time `json:"startDate"`
	Status           string    `json:"status"`
}

// EventKind classifies an employee payroll event.
type EventKind string

const (
	EventBonus     EventKind = "bonus"
	EventDeduction EventKind = "deduction"
)

// EmployeeEvent is a one-off payroll adjustment.
type EmployeeEvent struct {
	ID         string    `json:"id,omitempty"`
	EmployeeID string    `json:"employeeId"`
	Type       EventKind `json:"type"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Reason     string    `json:"reason,omitempty"`
}

// Asset is a company asset that can be assigned to employees.
type Asset struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Status       string `json:"status"`
}

// AssignmentActive marks an assignment that has not been returned yet.
const AssignmentActive = "active"

// AssetAssignment links an asset to an employee.
type AssetAssignment struct {
	ID         string     `json:"id"`
	AssetID    string     `json:"assetId"`
	EmployeeID string     `json:"employeeId"`
	Status     string     `json:"status"`
	AssignedAt time.Time  `json:"assignedAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// Car is a fleet vehicle.
type Car struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Plate  string `json:"plate"`
	Status string `json:"status"`
}

// CarAssignment links a car to an employee.
type CarAssignment struct {
	ID         string     `json:"id"`
	CarID      string     `json:"carId"`
	EmployeeID string     `json:"employeeId"`
	Status     string     `json:"status"`
	AssignedAt time.Time  `json:"assignedAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}

// Document is an uploadable attachment, e.g. an action receipt.
type Document struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	MimeType string `json:"mimeType,omitempty"`
}

// EmployeeDocument is a document already attached to an employee.
type EmployeeDocument struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	URL       string     `json:"url,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// PayrollFigures holds gross and net pay for one period.
type PayrollFigures struct {
	Gross float64 `json:"gross"`
	Net   float64 `json:"net"`
}

// MonthlySummary is the platform's per-employee monthly rollup.
type MonthlySummary struct {
	Payroll     PayrollFigures  `json:"payroll"`
	LoanBalance float64         `json:"loanBalance"`
	Events      []EmployeeEvent `json:"events"`
}

// ReportSummary is the per-employee report rollup over a date range.
type ReportSummary struct {
	From   time.Time       `json:"from"`
	To     time.Time       `json:"to"`
	Events []EmployeeEvent `json:"events"`
}

// LoanStatus is the platform's loan rollup for one employee.
type LoanStatus struct {
	ActiveLoans      int     `json:"activeLoans"`
	TotalBalance     float64 `json:"totalBalance"`
	MonthlyDeduction float64 `json:"monthlyDeduction"`
}

// EmployeeSummary is the platform's employee overview payload.
type EmployeeSummary struct {
	Employee Employee `json:"employee"`
	Vacation struct {
		Remaining float64 `json:"remaining"`
	} `json:"vacation"`
}

// KnowledgeEntry is one hit from the chatbot knowledge base.
type KnowledgeEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
