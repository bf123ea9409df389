package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hr-server/chatbot-api/internal/domain/hr"
	"hr-server/chatbot-api/internal/domain/receipt"
)

// eventIntent collects a bonus or deduction: amount, date, reason, then
// an explicit yes/no confirmation before anything is sent.
type eventIntent struct {
	Kind            hr.EventKind `json:"kind"`
	Amount          *float64     `json:"amount,omitempty"`
	Date            *time.Time   `json:"date,omitempty"`
	Reason          *string      `json:"reason,omitempty"`
	AwaitingConfirm bool         `json:"awaitingConfirm,omitempty"`
}

func (p *eventIntent) Tag() IntentTag {
	if p.Kind == hr.EventDeduction {
		return IntentAddDeduction
	}
	return IntentAddBonus
}

func (p *eventIntent) prompt() string {
	switch {
	case p.Amount == nil:
		return fmt.Sprintf("What is the %s amount?", p.Kind)
	case p.Date == nil:
		return fmt.Sprintf("On what date should the %s apply?", p.Kind)
	case p.Reason == nil:
		return "What is the reason?"
	default:
		return fmt.Sprintf("Confirm %s of %s on %s? (yes/no)",
			p.Kind, formatAmount(*p.Amount), p.Date.Format("2006-01-02"))
	}
}

func (p *eventIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	switch {
	case p.Amount == nil:
		amount, ok := parseAmount(text)
		if !ok {
			s.AddBot(msgInvalidNumber)
			return nil
		}
		p.Amount = &amount
		s.AddBot(p.prompt())
	case p.Date == nil:
		date, err := e.resolveDate(s, text)
		if err != nil {
			s.AddBot(msgInvalidDate)
			return nil
		}
		p.Date = &date
		s.AddBot(p.prompt())
	case p.Reason == nil:
		reason := strings.TrimSpace(text)
		p.Reason = &reason
		p.AwaitingConfirm = true
		s.AddBot(p.prompt())
	case p.AwaitingConfirm:
		s.ClearPending()
		if !isYes(text) {
			s.AddBot(msgCancelled)
			return nil
		}
		return p.execute(ctx, e, s)
	}
	return nil
}

func (p *eventIntent) execute(ctx context.Context, e *Engine, s *Session) error {
	event := hr.EmployeeEvent{
		EmployeeID: s.EmployeeID,
		Type:       p.Kind,
		Amount:     *p.Amount,
		Date:       *p.Date,
		Reason:     *p.Reason,
	}
	if _, err := e.hr.CreateEmployeeEvent(ctx, event); err != nil {
		return err
	}

	e.uploadReceipt(ctx, s, string(p.Kind), []receipt.Line{
		{LabelKey: "label.amount", Value: formatAmount(*p.Amount)},
		{LabelKey: "label.date", Value: p.Date.Format("2006-01-02")},
		{LabelKey: "label.reason", Value: *p.Reason},
	})

	s.AddBot(fmt.Sprintf("Recorded %s of %s on %s.",
		p.Kind, formatAmount(*p.Amount), p.Date.Format("2006-01-02")))
	return nil
}
