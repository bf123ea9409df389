package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
)

// IntentTag names one of the assistant's structured HR actions.
type IntentTag string

// Server-confirmed intents: the platform owns confirmation policy.
const (
	IntentRequestVacation     IntentTag = "requestVacation"
	IntentCancelVacation      IntentTag = "cancelVacation"
	IntentChangeVacation      IntentTag = "changeVacation"
	IntentRunPayroll          IntentTag = "runPayroll"
	IntentAcknowledgeDocument IntentTag = "acknowledgeDocument"
)

// Locally-confirmed intents: the engine prompts or executes directly.
const (
	IntentAddBonus       IntentTag = "addBonus"
	IntentAddDeduction   IntentTag = "addDeduction"
	IntentAssignAsset    IntentTag = "assignAsset"
	IntentAssetDocument  IntentTag = "assetDocument"
	IntentReturnAsset    IntentTag = "returnAsset"
	IntentAssignCar      IntentTag = "assignCar"
	IntentReturnCar      IntentTag = "returnCar"
	IntentCreateLoan     IntentTag = "createLoan"
	IntentUpdateLoan     IntentTag = "updateLoan"
	IntentUpdateEmployee IntentTag = "updateEmployee"
)

// Read-only intents: one GET, one formatted reply, no pending state.
const (
	IntentLoanStatus        IntentTag = "loanStatus"
	IntentEmployeeInfo      IntentTag = "employeeInfo"
	IntentReportSummary     IntentTag = "reportSummary"
	IntentMonthlySummary    IntentTag = "monthlySummary"
	IntentEmployeeDocuments IntentTag = "employeeDocuments"
)

// ServerConfirmed reports whether the platform confirms the intent.
func (t IntentTag) ServerConfirmed() bool {
	switch t {
	case IntentRequestVacation, IntentCancelVacation, IntentChangeVacation,
		IntentRunPayroll, IntentAcknowledgeDocument:
		return true
	}
	return false
}

// ReadOnly reports whether the intent is a pure read.
func (t IntentTag) ReadOnly() bool {
	switch t {
	case IntentLoanStatus, IntentEmployeeInfo, IntentReportSummary,
		IntentMonthlySummary, IntentEmployeeDocuments:
		return true
	}
	return false
}

// ParseIntent validates a raw tag.
func ParseIntent(raw string) (IntentTag, error) {
	tag := IntentTag(raw)
	switch tag {
	case IntentRequestVacation, IntentCancelVacation, IntentChangeVacation,
		IntentRunPayroll, IntentAcknowledgeDocument,
		IntentAddBonus, IntentAddDeduction,
		IntentAssignAsset, IntentAssetDocument, IntentReturnAsset,
		IntentAssignCar, IntentReturnCar,
		IntentCreateLoan, IntentUpdateLoan, IntentUpdateEmployee,
		IntentLoanStatus, IntentEmployeeInfo, IntentReportSummary,
		IntentMonthlySummary, IntentEmployeeDocuments:
		return tag, nil
	}
	return "", fmt.Errorf("unknown intent %q", raw)
}

// Pending is the slot-filling state for one in-flight intent. Each
// intent is its own variant carrying only its own slots; step consumes
// one user reply and advances (or re-prompts without advancing).
type Pending interface {
	Tag() IntentTag
	step(ctx context.Context, e *Engine, s *Session, text string) error
	prompt() string
}

type pendingEnvelope struct {
	Tag  IntentTag       `json:"tag"`
	Data json.RawMessage `json:"data"`
}

// EncodePending serializes a pending intent for persistence. A nil
// pending encodes as nil.
func EncodePending(p Pending) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal pending data: %w", err)
	}
	return json.Marshal(pendingEnvelope{Tag: p.Tag(), Data: data})
}

// DecodePending restores a pending intent from its stored form.
func DecodePending(raw []byte) (Pending, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var env pendingEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshal pending envelope: %w", err)
	}

	var p Pending
	switch env.Tag {
	case IntentAddBonus, IntentAddDeduction:
		p = &eventIntent{}
	case IntentAssignAsset:
		p = &assignAssetIntent{}
	case IntentAssetDocument:
		p = &assetDocumentIntent{}
	case IntentReturnAsset:
		p = &returnAssetIntent{}
	case IntentAssignCar:
		p = &assignCarIntent{}
	case IntentReturnCar:
		p = &returnCarIntent{}
	case IntentCreateLoan:
		p = &createLoanIntent{}
	case IntentUpdateLoan:
		p = &updateLoanIntent{}
	case IntentUpdateEmployee:
		p = &updateEmployeeIntent{}
	case IntentRequestVacation:
		p = &requestVacationIntent{}
	case IntentCancelVacation:
		p = &cancelVacationIntent{}
	case IntentChangeVacation:
		p = &changeVacationIntent{}
	case IntentRunPayroll:
		p = &runPayrollIntent{}
	case IntentAcknowledgeDocument:
		p = &acknowledgeDocumentIntent{}
	default:
		return nil, fmt.Errorf("unknown pending intent %q", env.Tag)
	}

	if err := json.Unmarshal(env.Data, p); err != nil {
		return nil, fmt.Errorf("unmarshal pending %s: %w", env.Tag, err)
	}
	return p, nil
}
