package dialogue

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hr-server/chatbot-api/internal/domain/dates"
	"hr-server/chatbot-api/internal/domain/hr"
	"hr-server/chatbot-api/internal/domain/i18n"
	"hr-server/chatbot-api/internal/domain/receipt"
)

// TurnInput is one user submission: free text, an explicit intent
// selection, or both.
type TurnInput struct {
	Text   string
	Intent string
}

// Engine interprets user turns against the session's pending state and
// dispatches completed intents to the HR platform.
type Engine struct {
	hr        HRClient
	catalogue *i18n.Catalogue
	receipts  *receipt.Builder
	log       zerolog.Logger
}

// NewEngine wires the turn engine.
func NewEngine(client HRClient, catalogue *i18n.Catalogue, receipts *receipt.Builder, log zerolog.Logger) *Engine {
	return &Engine{
		hr:        client,
		catalogue: catalogue,
		receipts:  receipts,
		log:       log.With().Str("component", "dialogue-engine").Logger(),
	}
}

// HandleTurn processes one user submission and returns the transcript
// lines appended during the turn. Turns are strictly serialized per
// session by the caller; the engine itself holds no cross-turn state.
func (e *Engine) HandleTurn(ctx context.Context, s *Session, in TurnInput) ([]Message, error) {
	if s == nil {
		return nil, errors.New("nil session")
	}

	mark := len(s.Messages)
	text := strings.TrimSpace(in.Text)
	if text != "" {
		s.AddUser(text)
	}

	switch {
	case in.Intent != "":
		e.startIntent(ctx, s, in.Intent)
	case s.Confirmation != nil:
		e.stepConfirmation(ctx, s, text)
	case s.Pending != nil:
		if err := s.Pending.step(ctx, e, s, text); err != nil {
			e.log.Error().Err(err).Str("session", s.ID).Str("intent", string(s.Pending.Tag())).Msg("intent step failed")
			s.ClearPending()
			s.AddBot(e.apiMessage(s, err))
		}
	case text == "":
		s.AddBot("How can I help?")
	default:
		e.answerKnowledge(ctx, s, text)
	}

	s.UpdatedAt = time.Now()
	return s.Messages[mark:], nil
}

// startIntent begins slot filling for a selected intent, or runs it
// immediately when it is a pure read. A new intent may only begin when
// no pending intent or confirmation is active.
func (e *Engine) startIntent(ctx context.Context, s *Session, raw string) {
	tag, err := ParseIntent(raw)
	if err != nil {
		s.AddBot("I don't know that action.")
		return
	}

	if s.Pending != nil || s.Confirmation != nil {
		s.AddBot("Please finish or cancel the current action first.")
		return
	}

	if s.EmployeeID == "" {
		s.AddBot("Please select an employee first.")
		return
	}

	if tag.ReadOnly() {
		e.runRead(ctx, s, tag)
		return
	}

	p := newPending(tag)
	if p == nil {
		s.AddBot("I don't know that action.")
		return
	}
	s.Pending = p
	s.AddBot(p.prompt())
}

// stepConfirmation resolves an outstanding server confirmation. Any
// reply not starting with "y" cancels without a request.
func (e *Engine) stepConfirmation(ctx context.Context, s *Session, text string) {
	conf := s.Confirmation
	s.ClearConfirmation()

	if !isYes(text) {
		s.AddBot(msgCancelled)
		return
	}

	outcome, err := e.hr.SubmitIntent(ctx, IntentSubmission{
		Intent:     conf.Intent,
		Payload:    conf.Payload,
		Confirm:    true,
		EmployeeID: s.EmployeeID,
	})
	if err != nil {
		e.log.Error().Err(err).Str("session", s.ID).Str("intent", string(conf.Intent)).Msg("confirm submission failed")
		s.AddBot(e.apiMessage(s, err))
		return
	}

	if outcome.Message != "" {
		s.AddBot(outcome.Message)
	} else {
		s.AddBot("Done.")
	}
}

// submitServerIntent sends a fully-slotted server-confirmed intent with
// confirm=false. The platform decides whether a confirmation round-trip
// is needed; "completed" surfaces immediately.
func (e *Engine) submitServerIntent(ctx context.Context, s *Session, tag IntentTag, payload map[string]any) error {
	outcome, err := e.hr.SubmitIntent(ctx, IntentSubmission{
		Intent:     tag,
		Payload:    payload,
		Confirm:    false,
		EmployeeID: s.EmployeeID,
	})
	if err != nil {
		return err
	}

	switch outcome.Status {
	case OutcomeNeedsConfirmation:
		message := "Please confirm."
		confirmPayload := payload
		if outcome.Confirmation != nil {
			if outcome.Confirmation.Message != "" {
				message = outcome.Confirmation.Message
			}
			if outcome.Confirmation.Payload != nil {
				confirmPayload = outcome.Confirmation.Payload
			}
		}
		s.Confirmation = &ServerConfirmation{Intent: tag, Message: message, Payload: confirmPayload}
		s.AddBot(message + " (yes/no)")
	case OutcomeCompleted:
		if outcome.Message != "" {
			s.AddBot(outcome.Message)
		} else {
			s.AddBot("Done.")
		}
	default:
		e.log.Warn().Str("status", outcome.Status).Str("intent", string(tag)).Msg("unexpected intent outcome status")
		s.AddBot(e.text(s, i18n.GeneralErrorKey))
	}
	return nil
}

// StartPromptAction runs the server-confirmed intent embedded in an
// acknowledged proactive prompt and returns the appended lines.
func (e *Engine) StartPromptAction(ctx context.Context, s *Session, p ProactivePrompt) ([]Message, error) {
	mark := len(s.Messages)

	if p.Action == nil {
		s.AddBot("Acknowledged.")
		return s.Messages[mark:], nil
	}
	if s.Pending != nil || s.Confirmation != nil {
		s.AddBot("Please finish or cancel the current action first.")
		return s.Messages[mark:], nil
	}

	if err := e.submitServerIntent(ctx, s, p.Action.Intent, p.Action.Payload); err != nil {
		e.log.Error().Err(err).Str("session", s.ID).Str("intent", string(p.Action.Intent)).Msg("prompt action failed")
		s.AddBot(e.apiMessage(s, err))
	}
	return s.Messages[mark:], nil
}

// answerKnowledge handles free text with no pending intent: a knowledge
// base lookup, surfacing the top hit.
func (e *Engine) answerKnowledge(ctx context.Context, s *Session, text string) {
	entries, err := e.hr.Knowledge(ctx, text, 5)
	if err != nil {
		e.log.Error().Err(err).Str("session", s.ID).Msg("knowledge lookup failed")
		s.AddBot(e.apiMessage(s, err))
		return
	}
	if len(entries) == 0 {
		s.AddBot("Sorry, I don't have an answer for that. Try one of the actions.")
		return
	}
	s.AddBot(entries[0].Answer)
}

func (e *Engine) text(s *Session, key string) string {
	return e.catalogue.Lookup(s.Language, key)
}

// apiMessage turns a failed platform call into one chat line: error
// codes resolve through the catalogue, transport failures render the
// fixed failure text. Stack traces never reach the transcript.
func (e *Engine) apiMessage(s *Session, err error) string {
	var apiErr *hr.APIError
	if errors.As(err, &apiErr) {
		return e.catalogue.ErrorMessage(s.Language, apiErr.Code)
	}
	return e.text(s, "requestFailed")
}

// resolveDate resolves a date phrase against the session's fixed
// reference time.
func (e *Engine) resolveDate(s *Session, text string) (time.Time, error) {
	return dates.Resolve(text, s.ReferenceTime)
}

// uploadReceipt synthesizes and uploads the bilingual action receipt.
// A failed upload is logged but does not undo the completed action.
func (e *Engine) uploadReceipt(ctx context.Context, s *Session, intent string, lines []receipt.Line) {
	employeeName := s.EmployeeID
	if employee, err := e.hr.Employee(ctx, s.EmployeeID); err == nil && employee.Name != "" {
		employeeName = employee.Name
	}

	doc := e.receipts.Build(intent, employeeName, time.Now(), lines)
	if err := e.hr.UploadEmployeeDocument(ctx, s.EmployeeID, doc); err != nil {
		e.log.Warn().Err(err).Str("session", s.ID).Str("intent", intent).Msg("receipt upload failed")
	}
}

// matchAsset resolves an entity slot: exact ID or case-insensitive
// exact name. No fuzzy matching.
func (e *Engine) matchAsset(ctx context.Context, text string) (hr.Asset, bool, error) {
	assets, err := e.hr.Assets(ctx)
	if err != nil {
		return hr.Asset{}, false, err
	}
	needle := strings.TrimSpace(text)
	for _, a := range assets {
		if a.ID == needle || strings.EqualFold(a.Name, needle) {
			return a, true, nil
		}
	}
	return hr.Asset{}, false, nil
}

// matchCar resolves a car slot: exact ID or case-insensitive exact
// name/plate.
func (e *Engine) matchCar(ctx context.Context, text string) (hr.Car, bool, error) {
	cars, err := e.hr.Cars(ctx)
	if err != nil {
		return hr.Car{}, false, err
	}
	needle := strings.TrimSpace(text)
	for _, c := range cars {
		if c.ID == needle || strings.EqualFold(c.Name, needle) || strings.EqualFold(c.Plate, needle) {
			return c, true, nil
		}
	}
	return hr.Car{}, false, nil
}

// newPending constructs the slot machine for a pending-family intent.
func newPending(tag IntentTag) Pending {
	switch tag {
	case IntentAddBonus:
		return &eventIntent{Kind: hr.EventBonus}
	case IntentAddDeduction:
		return &eventIntent{Kind: hr.EventDeduction}
	case IntentAssignAsset:
		return &assignAssetIntent{}
	case IntentAssetDocument:
		return &assetDocumentIntent{}
	case IntentReturnAsset:
		return &returnAssetIntent{}
	case IntentAssignCar:
		return &assignCarIntent{}
	case IntentReturnCar:
		return &returnCarIntent{}
	case IntentCreateLoan:
		return &createLoanIntent{}
	case IntentUpdateLoan:
		return &updateLoanIntent{}
	case IntentUpdateEmployee:
		return &updateEmployeeIntent{}
	case IntentRequestVacation:
		return &requestVacationIntent{}
	case IntentCancelVacation:
		return &cancelVacationIntent{}
	case IntentChangeVacation:
		return &changeVacationIntent{}
	case IntentRunPayroll:
		return &runPayrollIntent{}
	case IntentAcknowledgeDocument:
		return &acknowledgeDocumentIntent{}
	}
	return nil
}

// isYes implements the confirmation rule: only replies starting with
// "y" proceed, everything else cancels.
func isYes(text string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), "y")
}

// parseAmount parses a numeric slot. Failures re-prompt the same slot
// without consuming the turn as a cancellation.
func parseAmount(text string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

const (
	msgInvalidNumber = "Please enter a valid number."
	msgInvalidDate   = "I couldn't understand that date. Try an ISO date like 2024-07-01, or \"today\", \"tomorrow\", \"next friday\"."
	msgUnknownAsset  = "I couldn't find that asset. Use the asset ID or its exact name."
	msgUnknownCar    = "I couldn't find that car. Use the car ID, name, or plate."
	msgCancelled     = "Cancelled."
)
