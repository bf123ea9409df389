package dialogue

// MaxPrompts caps how many proactive prompts a session retains. Adding
// a seventh evicts the oldest.
const MaxPrompts = 6

// PromptAction lets a prompt carry a one-click server-confirmed intent,
// e.g. acknowledging an expiring document.
type PromptAction struct {
	Intent  IntentTag      `json:"intent"`
	Payload map[string]any `json:"payload,omitempty"`
}

// ProactivePrompt is a server-pushed notification shown alongside the
// transcript. Prompts are de-duplicated by ID.
type ProactivePrompt struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Message     string        `json:"message"`
	Priority    string        `json:"priority,omitempty"`
	DocumentURL string        `json:"documentUrl,omitempty"`
	Action      *PromptAction `json:"action,omitempty"`
}
