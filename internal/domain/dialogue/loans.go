package dialogue

import (
	"context"
	"fmt"
	"time"

	"hr-server/chatbot-api/internal/domain/hr"
	"hr-server/chatbot-api/internal/domain/receipt"
)

// createLoanIntent collects a new loan: amount, monthly deduction,
// start date. Executes on the final slot.
type createLoanIntent struct {
	Amount           *float64   `json:"amount,omitempty"`
	MonthlyDeduction *float64   `json:"monthlyDeduction,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
}

func (p *createLoanIntent) Tag() IntentTag { return IntentCreateLoan }

func (p *createLoanIntent) prompt() string {
	switch {
	case p.Amount == nil:
		return "What is the loan amount?"
	case p.MonthlyDeduction == nil:
		return "What is the monthly deduction?"
	default:
		return "From what date does the loan start?"
	}
}

func (p *createLoanIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	switch {
	case p.Amount == nil:
		amount, ok := parseAmount(text)
		if !ok {
			s.AddBot(msgInvalidNumber)
			return nil
		}
		p.Amount = &amount
		s.AddBot(p.prompt())
	case p.MonthlyDeduction == nil:
		deduction, ok := parseAmount(text)
		if !ok {
			s.AddBot(msgInvalidNumber)
			return nil
		}
		p.MonthlyDeduction = &deduction
		s.AddBot(p.prompt())
	case p.StartDate == nil:
		date, err := e.resolveDate(s, text)
		if err != nil {
			s.AddBot(msgInvalidDate)
			return nil
		}
		p.StartDate = &date
		s.ClearPending()
		return p.execute(ctx, e, s)
	}
	return nil
}

func (p *createLoanIntent) execute(ctx context.Context, e *Engine, s *Session) error {
	loan := hr.Loan{
		EmployeeID:       s.EmployeeID,
		Amount:           *p.Amount,
		MonthlyDeduction: *p.MonthlyDeduction,
		RemainingBalance: *p.Amount,
		StartDate:        *p.StartDate,
		Status:           "active",
	}
	created, err := e.hr.CreateLoan(ctx, loan)
	if err != nil {
		return err
	}

	e.uploadReceipt(ctx, s, "createLoan", []receipt.Line{
		{LabelKey: "label.amount", Value: formatAmount(*p.Amount)},
		{LabelKey: "label.monthlyDeduction", Value: formatAmount(*p.MonthlyDeduction)},
		{LabelKey: "label.startDate", Value: p.StartDate.Format("2006-01-02")},
	})

	s.AddBot(fmt.Sprintf("Loan of %s created. Next deduction: %s.",
		formatAmount(*p.Amount), formatAmount(hr.NextDeduction(created))))
	return nil
}

// updateLoanIntent changes the monthly deduction of the employee's most
// recent loan. There is no loan-selection slot: the latest startDate
// wins, ties broken by array order. A loanless employee gets a distinct
// "No loan found" reply instead of the generic failure text.
type updateLoanIntent struct {
	MonthlyDeduction *float64 `json:"monthlyDeduction,omitempty"`
}

func (p *updateLoanIntent) Tag() IntentTag { return IntentUpdateLoan }

func (p *updateLoanIntent) prompt() string {
	return "What should the new monthly deduction be?"
}

func (p *updateLoanIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	deduction, ok := parseAmount(text)
	if !ok {
		s.AddBot(msgInvalidNumber)
		return nil
	}
	p.MonthlyDeduction = &deduction
	s.ClearPending()

	loans, err := e.hr.Loans(ctx)
	if err != nil {
		return err
	}
	latest, found := hr.LatestLoan(loans, s.EmployeeID)
	if !found {
		s.AddBot(e.text(s, "noLoanFound"))
		return nil
	}

	if err := e.hr.UpdateLoan(ctx, latest.ID, deduction); err != nil {
		return err
	}

	e.uploadReceipt(ctx, s, "updateLoan", []receipt.Line{
		{LabelKey: "label.monthlyDeduction", Value: formatAmount(deduction)},
	})
	s.AddBot(fmt.Sprintf("Monthly deduction set to %s.", formatAmount(deduction)))
	return nil
}
