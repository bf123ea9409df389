package hr

import "time"

// FilterEventsInRange keeps events whose date falls inside [from, to].
// Zero-valued bounds are open on that side.
func FilterEventsInRange(events []EmployeeEvent, from, to time.Time) []EmployeeEvent {
	var out []EmployeeEvent
	for _, e := range events {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}
