package bus

// InboundMessage is one user turn entering the router.
type InboundMessage struct {
	SessionKey string `json:"session_key"`
	Content    string `json:"content"`
}

// OutboundMessage is one finished assistant reply leaving the router.
// Pacing and formatting for display belong to the consumer.
type OutboundMessage struct {
	SessionKey string `json:"session_key"`
	Content    string `json:"content"`
}
