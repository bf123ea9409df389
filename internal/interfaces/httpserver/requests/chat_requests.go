package requests

// CreateSessionRequest opens a new chat session. Both fields are
// optional; an unbound session picks up its employee from a pushed
// context event later.
type CreateSessionRequest struct {
	EmployeeID string `json:"employee_id"`
	Language   string `json:"language"`
}

// MessageRequest carries one user turn. Intent is set when the user
// picked an action button instead of typing.
type MessageRequest struct {
	Text   string `json:"text"`
	Intent string `json:"intent"`
}
