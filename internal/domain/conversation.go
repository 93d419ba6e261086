package domain

// Message is one turn of a journaling conversation. Messages live only in a
// session transcript and are never persisted on their own.
type Message struct {
	ID      MessageID `json:"id"`
	Role    Role      `json:"role"`
	Content string    `json:"content"`

	// Quick replies offered by the assistant; only set on assistant turns.
	SuggestedResponses []string `json:"suggested_responses,omitempty"`
}

// GenerateRequest is what the prompt generator sees of a session.
type GenerateRequest struct {
	Moods      []Mood
	Transcript []Message
}

// Generation is the outcome of one prompt generation call. A nil Message
// means the generator produced no usable reply; Err then tells why and is
// informational only.
type Generation struct {
	Message *Message
	Err     error
}

func (g Generation) OK() bool {
	return g.Message != nil
}

// NoReply builds the "no data" outcome.
func NoReply(err error) Generation {
	return Generation{Err: err}
}
