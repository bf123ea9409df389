// Package receipt synthesizes bilingual action receipts for chatbot
// mutations. Every completed write gets one receipt document, built
// from the same template with intent-specific title and detail lines.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"hr-server/chatbot-api/internal/domain/hr"
	"hr-server/chatbot-api/internal/domain/i18n"
)

// Line is one labelled detail on the receipt. LabelKey resolves through
// the catalogue; Value is rendered verbatim in both sections.
type Line struct {
	LabelKey string
	Value    string
}

// Builder renders receipts using the shared message catalogue.
type Builder struct {
	catalogue *i18n.Catalogue
}

// NewBuilder constructs a receipt builder.
func NewBuilder(catalogue *i18n.Catalogue) *Builder {
	return &Builder{catalogue: catalogue}
}

// Build renders a receipt document for the given intent. The body holds
// an English section followed by an Arabic section.
func (b *Builder) Build(intent string, employeeName string, issuedAt time.Time, lines []Line) hr.Document {
	titleKey := "receipt." + intent + ".title"
	all := append([]Line{{LabelKey: "label.employee", Value: employeeName}}, lines...)

	var body strings.Builder
	body.WriteString(b.section("en", titleKey, issuedAt, all))
	body.WriteString("\n")
	body.WriteString(b.section("ar", titleKey, issuedAt, all))

	return hr.Document{
		Title:    fmt.Sprintf("%s - %s", b.catalogue.Lookup("en", titleKey), issuedAt.Format("2006-01-02")),
		Body:     body.String(),
		MimeType: "text/plain",
	}
}

func (b *Builder) section(lang, titleKey string, issuedAt time.Time, lines []Line) string {
	var sb strings.Builder
	sb.WriteString(b.catalogue.Lookup(lang, titleKey))
	sb.WriteString("\n")
	sb.WriteString(issuedAt.Format("2006-01-02"))
	sb.WriteString("\n")
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("%s: %s\n", b.catalogue.Lookup(lang, line.LabelKey), line.Value))
	}
	sb.WriteString(b.catalogue.Lookup(lang, "receipt.generatedBy"))
	sb.WriteString("\n")
	return sb.String()
}
