package dialogue

import "time"

// Role identifies the author of a transcript line.
type Role string

const (
	RoleBot  Role = "bot"
	RoleUser Role = "user"
)

// Message is one transcript line. Messages are append-only and never
// mutated after creation.
type Message struct {
	From Role      `json:"from"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}
