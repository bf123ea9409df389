package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hr-server/chatbot-api/internal/domain/hr"
	"hr-server/chatbot-api/internal/domain/receipt"
)

// assignAssetIntent assigns an asset to the session's employee. It
// executes as soon as the final slot is known, with no local confirm.
type assignAssetIntent struct {
	AssetID   *string    `json:"assetId,omitempty"`
	AssetName string     `json:"assetName,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

func (p *assignAssetIntent) Tag() IntentTag { return IntentAssignAsset }

func (p *assignAssetIntent) prompt() string {
	switch {
	case p.AssetID == nil:
		return "Which asset? Use the asset ID or its exact name."
	case p.Date == nil:
		return "From what date?"
	default:
		return "Any notes? (or \"-\")"
	}
}

func (p *assignAssetIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	switch {
	case p.AssetID == nil:
		asset, ok, err := e.matchAsset(ctx, text)
		if err != nil {
			return err
		}
		if !ok {
			s.AddBot(msgUnknownAsset)
			return nil
		}
		p.AssetID = &asset.ID
		p.AssetName = asset.Name
		s.AddBot(p.prompt())
	case p.Date == nil:
		date, err := e.resolveDate(s, text)
		if err != nil {
			s.AddBot(msgInvalidDate)
			return nil
		}
		p.Date = &date
		s.AddBot(p.prompt())
	case p.Notes == nil:
		notes := strings.TrimSpace(text)
		if notes == "-" {
			notes = ""
		}
		p.Notes = &notes
		s.ClearPending()
		return p.execute(ctx, e, s)
	}
	return nil
}

func (p *assignAssetIntent) execute(ctx context.Context, e *Engine, s *Session) error {
	assignment := hr.AssetAssignment{
		AssetID:    *p.AssetID,
		EmployeeID: s.EmployeeID,
		Status:     hr.AssignmentActive,
		AssignedAt: *p.Date,
		Notes:      *p.Notes,
	}
	if _, err := e.hr.CreateAssetAssignment(ctx, assignment); err != nil {
		return err
	}

	lines := []receipt.Line{
		{LabelKey: "label.asset", Value: p.AssetName},
		{LabelKey: "label.date", Value: p.Date.Format("2006-01-02")},
	}
	if *p.Notes != "" {
		lines = append(lines, receipt.Line{LabelKey: "label.notes", Value: *p.Notes})
	}
	e.uploadReceipt(ctx, s, "assignAsset", lines)

	s.AddBot(fmt.Sprintf("Assigned %s from %s.", p.AssetName, p.Date.Format("2006-01-02")))
	return nil
}

// assetDocumentIntent attaches a free-form document to an asset.
type assetDocumentIntent struct {
	AssetID   *string `json:"assetId,omitempty"`
	AssetName string  `json:"assetName,omitempty"`
	Title     *string `json:"title,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (p *assetDocumentIntent) Tag() IntentTag { return IntentAssetDocument }

func (p *assetDocumentIntent) prompt() string {
	switch {
	case p.AssetID == nil:
		return "Which asset? Use the asset ID or its exact name."
	case p.Title == nil:
		return "What is the document title?"
	default:
		return "Document text?"
	}
}

func (p *assetDocumentIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	switch {
	case p.AssetID == nil:
		asset, ok, err := e.matchAsset(ctx, text)
		if err != nil {
			return err
		}
		if !ok {
			s.AddBot(msgUnknownAsset)
			return nil
		}
		p.AssetID = &asset.ID
		p.AssetName = asset.Name
		s.AddBot(p.prompt())
	case p.Title == nil:
		title := strings.TrimSpace(text)
		p.Title = &title
		s.AddBot(p.prompt())
	case p.Notes == nil:
		notes := strings.TrimSpace(text)
		p.Notes = &notes
		s.ClearPending()
		doc := hr.Document{Title: *p.Title, Body: *p.Notes, MimeType: "text/plain"}
		if err := e.hr.UploadAssetDocument(ctx, *p.AssetID, doc); err != nil {
			return err
		}
		s.AddBot(fmt.Sprintf("Document %q attached to %s.", *p.Title, p.AssetName))
	}
	return nil
}

// returnAssetIntent closes the employee's active assignment for one
// asset. A missing active assignment is reported distinctly and no
// write is attempted.
type returnAssetIntent struct {
	AssetID   *string `json:"assetId,omitempty"`
	AssetName string  `json:"assetName,omitempty"`
}

func (p *returnAssetIntent) Tag() IntentTag { return IntentReturnAsset }

func (p *returnAssetIntent) prompt() string {
	return "Which asset is being returned? Use the asset ID or its exact name."
}

func (p *returnAssetIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	asset, ok, err := e.matchAsset(ctx, text)
	if err != nil {
		return err
	}
	if !ok {
		s.AddBot(msgUnknownAsset)
		return nil
	}
	p.AssetID = &asset.ID
	p.AssetName = asset.Name
	s.ClearPending()

	assignments, err := e.hr.AssetAssignments(ctx, s.EmployeeID)
	if err != nil {
		return err
	}
	active, found := hr.ActiveAssetAssignment(assignments, asset.ID, s.EmployeeID)
	if !found {
		s.AddBot(e.text(s, "noActiveAssignment"))
		return nil
	}

	if err := e.hr.ReturnAssetAssignment(ctx, active.ID); err != nil {
		return err
	}

	e.uploadReceipt(ctx, s, "returnAsset", []receipt.Line{
		{LabelKey: "label.asset", Value: asset.Name},
	})
	s.AddBot(fmt.Sprintf("%s returned.", asset.Name))
	return nil
}
