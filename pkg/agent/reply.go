package agent

import "strings"

// Reply is the assistant's response to one submitted turn.
type Reply struct {
	// Content is the textual reply, when the model produced one.
	Content string
	// Raw is the string representation of the complete result message.
	Raw string
	// Usage reports the token accounting for the turn.
	Usage Usage
}

// Usage holds per-turn token counts as reported by the endpoint.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// Text returns the reply content when present, else the raw representation
// of the whole result.
func (r Reply) Text() string {
	if strings.TrimSpace(r.Content) != "" {
		return r.Content
	}
	return r.Raw
}
