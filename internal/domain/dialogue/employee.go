package dialogue

import (
	"context"
	"fmt"
	"strings"

	"hr-server/chatbot-api/internal/domain/hr"
	"hr-server/chatbot-api/internal/domain/receipt"
)

// updateEmployeeIntent edits one employee field. The field slot is
// validated against an allow-list before it is accepted; the value slot
// is taken verbatim.
type updateEmployeeIntent struct {
	Field *string `json:"field,omitempty"`
	Value *string `json:"value,omitempty"`
}

func (p *updateEmployeeIntent) Tag() IntentTag { return IntentUpdateEmployee }

func (p *updateEmployeeIntent) prompt() string {
	if p.Field == nil {
		return "Which field? (position, phone, email, status)"
	}
	return fmt.Sprintf("What should %s be set to?", *p.Field)
}

func (p *updateEmployeeIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	switch {
	case p.Field == nil:
		field := strings.ToLower(strings.TrimSpace(text))
		if !hr.AllowedEmployeeField(field) {
			s.AddBot("That field cannot be edited here. Choose one of: position, phone, email, status.")
			return nil
		}
		p.Field = &field
		s.AddBot(p.prompt())
	case p.Value == nil:
		value := strings.TrimSpace(text)
		p.Value = &value
		s.ClearPending()

		if err := e.hr.UpdateEmployee(ctx, s.EmployeeID, map[string]string{*p.Field: value}); err != nil {
			return err
		}

		e.uploadReceipt(ctx, s, "updateEmployee", []receipt.Line{
			{LabelKey: "label.field", Value: *p.Field},
			{LabelKey: "label.value", Value: value},
		})
		s.AddBot(fmt.Sprintf("Updated %s to %q.", *p.Field, value))
	}
	return nil
}
