package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hr-server/chatbot-api/internal/domain/hr"
)

// runRead executes a read-only intent: one GET, one formatted reply.
func (e *Engine) runRead(ctx context.Context, s *Session, tag IntentTag) {
	var (
		reply string
		err   error
	)

	switch tag {
	case IntentLoanStatus:
		var status hr.LoanStatus
		if status, err = e.hr.LoanStatus(ctx, s.EmployeeID); err == nil {
			reply = formatLoanStatus(status)
		}
	case IntentEmployeeInfo:
		var summary hr.EmployeeSummary
		if summary, err = e.hr.EmployeeSummary(ctx, s.EmployeeID); err == nil {
			reply = formatEmployeeSummary(summary)
		}
	case IntentReportSummary:
		var report hr.ReportSummary
		if report, err = e.hr.ReportSummary(ctx, s.EmployeeID); err == nil {
			reply = formatReportSummary(report)
		}
	case IntentMonthlySummary:
		var summary hr.MonthlySummary
		if summary, err = e.hr.MonthlySummary(ctx, s.EmployeeID); err == nil {
			reply = formatMonthlySummary(summary)
		}
	case IntentEmployeeDocuments:
		var docs []hr.EmployeeDocument
		if docs, err = e.hr.EmployeeDocuments(ctx, s.EmployeeID); err == nil {
			reply = formatEmployeeDocuments(docs, s.ReferenceTime)
		}
	default:
		s.AddBot("I don't know that action.")
		return
	}

	if err != nil {
		e.log.Error().Err(err).Str("session", s.ID).Str("intent", string(tag)).Msg("read intent failed")
		s.AddBot(e.apiMessage(s, err))
		return
	}
	s.AddBot(reply)
}

func formatLoanStatus(status hr.LoanStatus) string {
	if status.ActiveLoans == 0 {
		return "No active loans."
	}
	return fmt.Sprintf("Active loans: %d, total balance: %s, monthly deduction: %s.",
		status.ActiveLoans, formatAmount(status.TotalBalance), formatAmount(status.MonthlyDeduction))
}

func formatEmployeeSummary(summary hr.EmployeeSummary) string {
	emp := summary.Employee
	return fmt.Sprintf("%s, %s. Email: %s. Phone: %s. Status: %s. Vacation remaining: %s days.",
		emp.Name, emp.Position, emp.Email, emp.Phone, emp.Status,
		formatAmount(summary.Vacation.Remaining))
}

func formatReportSummary(report hr.ReportSummary) string {
	events := hr.FilterEventsInRange(report.Events, report.From, report.To)
	return fmt.Sprintf("Report from %s to %s: %d events. %s",
		report.From.Format("2006-01-02"), report.To.Format("2006-01-02"),
		len(events), formatEvents(events))
}

func formatMonthlySummary(summary hr.MonthlySummary) string {
	return fmt.Sprintf("Gross: %s, Net: %s, Loan balance: %s. Events: %s",
		formatAmount(summary.Payroll.Gross),
		formatAmount(summary.Payroll.Net),
		formatAmount(summary.LoanBalance),
		formatEvents(summary.Events))
}

func formatEmployeeDocuments(docs []hr.EmployeeDocument, now time.Time) string {
	if len(docs) == 0 {
		return "No documents on file."
	}
	parts := make([]string, len(docs))
	for i, doc := range docs {
		switch hr.ClassifyExpiry(doc, now) {
		case hr.ExpiryExpired:
			parts[i] = fmt.Sprintf("%s (expired %s)", doc.Title, doc.ExpiresAt.Format("2006-01-02"))
		case hr.ExpiryExpiringSoon:
			parts[i] = fmt.Sprintf("%s (expires %s)", doc.Title, doc.ExpiresAt.Format("2006-01-02"))
		default:
			parts[i] = fmt.Sprintf("%s (valid)", doc.Title)
		}
	}
	return "Documents: " + strings.Join(parts, "; ") + "."
}
