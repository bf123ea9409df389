package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"hr-server/chatbot-api/internal/domain/hr"
)

// formatAmount renders a number without trailing zeros: 1000 stays
// "1000", 12.5 stays "12.5".
func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatEvents renders an event list as a single transcript fragment.
func formatEvents(events []hr.EmployeeEvent) string {
	if len(events) == 0 {
		return "No events."
	}
	parts := make([]string, len(events))
	for i, ev := range events {
		parts[i] = fmt.Sprintf("%s %s (%s)", ev.Type, formatAmount(ev.Amount), ev.Date.Format("2006-01-02"))
	}
	return strings.Join(parts, ", ") + "."
}
