package dialogue

import (
	"context"
	"strings"
	"time"
)

// The server-confirmed family collects slots locally, then submits with
// confirm=false. The platform, not this service, owns confirmation
// policy: a "needs-confirmation" reply parks a ServerConfirmation on
// the session, a "completed" reply is surfaced immediately.

// requestVacationIntent files a vacation request.
type requestVacationIntent struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Reason    *string    `json:"reason,omitempty"`
}

func (p *requestVacationIntent) Tag() IntentTag { return IntentRequestVacation }

func (p *requestVacationIntent) prompt() string {
	switch {
	case p.StartDate == nil:
		return "From what date?"
	case p.EndDate == nil:
		return "Until what date?"
	default:
		return "What is the reason? (or \"-\")"
	}
}

func (p *requestVacationIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	switch {
	case p.StartDate == nil:
		date, err := e.resolveDate(s, text)
		if err != nil {
			s.AddBot(msgInvalidDate)
			return nil
		}
		p.StartDate = &date
		s.AddBot(p.prompt())
	case p.EndDate == nil:
		date, err := e.resolveDate(s, text)
		if err != nil {
			s.AddBot(msgInvalidDate)
			return nil
		}
		if date.Before(*p.StartDate) {
			s.AddBot("The end date must not be before the start date.")
			return nil
		}
		p.EndDate = &date
		s.AddBot(p.prompt())
	case p.Reason == nil:
		reason := strings.TrimSpace(text)
		if reason == "-" {
			reason = ""
		}
		p.Reason = &reason
		s.ClearPending()
		return e.submitServerIntent(ctx, s, IntentRequestVacation, map[string]any{
			"startDate": p.StartDate.Format("2006-01-02"),
			"endDate":   p.EndDate.Format("2006-01-02"),
			"reason":    reason,
		})
	}
	return nil
}

// cancelVacationIntent cancels the vacation starting on a given date.
type cancelVacationIntent struct {
	StartDate *time.Time `json:"startDate,omitempty"`
}

func (p *cancelVacationIntent) Tag() IntentTag { return IntentCancelVacation }

func (p *cancelVacationIntent) prompt() string {
	return "Which vacation? Give its start date."
}

func (p *cancelVacationIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	date, err := e.resolveDate(s, text)
	if err != nil {
		s.AddBot(msgInvalidDate)
		return nil
	}
	p.StartDate = &date
	s.ClearPending()
	return e.submitServerIntent(ctx, s, IntentCancelVacation, map[string]any{
		"startDate": date.Format("2006-01-02"),
	})
}

// changeVacationIntent moves an existing vacation to new dates.
type changeVacationIntent struct {
	StartDate    *time.Time `json:"startDate,omitempty"`
	NewStartDate *time.Time `json:"newStartDate,omitempty"`
	NewEndDate   *time.Time `json:"newEndDate,omitempty"`
}

func (p *changeVacationIntent) Tag() IntentTag { return IntentChangeVacation }

func (p *changeVacationIntent) prompt() string {
	switch {
	case p.StartDate == nil:
		return "Which vacation? Give its current start date."
	case p.NewStartDate == nil:
		return "What is the new start date?"
	default:
		return "What is the new end date?"
	}
}

func (p *changeVacationIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	date, err := e.resolveDate(s, text)
	if err != nil {
		s.AddBot(msgInvalidDate)
		return nil
	}

	switch {
	case p.StartDate == nil:
		p.StartDate = &date
		s.AddBot(p.prompt())
	case p.NewStartDate == nil:
		p.NewStartDate = &date
		s.AddBot(p.prompt())
	case p.NewEndDate == nil:
		if date.Before(*p.NewStartDate) {
			s.AddBot("The end date must not be before the start date.")
			return nil
		}
		p.NewEndDate = &date
		s.ClearPending()
		return e.submitServerIntent(ctx, s, IntentChangeVacation, map[string]any{
			"startDate":    p.StartDate.Format("2006-01-02"),
			"newStartDate": p.NewStartDate.Format("2006-01-02"),
			"newEndDate":   p.NewEndDate.Format("2006-01-02"),
		})
	}
	return nil
}

// runPayrollIntent triggers a payroll run for one period.
type runPayrollIntent struct {
	Period *string `json:"period,omitempty"`
}

func (p *runPayrollIntent) Tag() IntentTag { return IntentRunPayroll }

func (p *runPayrollIntent) prompt() string {
	return "For which period? Use YYYY-MM."
}

func (p *runPayrollIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	period := strings.TrimSpace(text)
	if _, err := time.Parse("2006-01", period); err != nil {
		s.AddBot("Please give the period as YYYY-MM, e.g. 2024-07.")
		return nil
	}
	p.Period = &period
	s.ClearPending()
	return e.submitServerIntent(ctx, s, IntentRunPayroll, map[string]any{
		"period": period,
	})
}

// acknowledgeDocumentIntent acknowledges a document by ID, typically
// reached through a proactive prompt's one-click action.
type acknowledgeDocumentIntent struct {
	DocumentID *string `json:"documentId,omitempty"`
}

func (p *acknowledgeDocumentIntent) Tag() IntentTag { return IntentAcknowledgeDocument }

func (p *acknowledgeDocumentIntent) prompt() string {
	return "Which document? Give its ID."
}

func (p *acknowledgeDocumentIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	id := strings.TrimSpace(text)
	if id == "" {
		s.AddBot(p.prompt())
		return nil
	}
	p.DocumentID = &id
	s.ClearPending()
	return e.submitServerIntent(ctx, s, IntentAcknowledgeDocument, map[string]any{
		"documentId": id,
	})
}
