package hr

import "time"

// ExpiryState classifies a document against its expiry date.
type ExpiryState string

const (
	ExpiryValid        ExpiryState = "valid"
	ExpiryExpiringSoon ExpiryState = "expiring-soon"
	ExpiryExpired      ExpiryState = "expired"
)

// Documents within this window of their expiry date count as expiring soon.
const expiryWarningWindow = 30 * 24 * time.Hour

// ClassifyExpiry buckets a document by how close it is to expiring at
// the given reference time. Documents without an expiry date are valid.
func ClassifyExpiry(doc EmployeeDocument, now time.Time) ExpiryState {
	if doc.ExpiresAt == nil {
		return ExpiryValid
	}
	switch {
	case !doc.ExpiresAt.After(now):
		return ExpiryExpired
	case doc.ExpiresAt.Sub(now) <= expiryWarningWindow:
		return ExpiryExpiringSoon
	default:
		return ExpiryValid
	}
}
