package models

// CommandRequest is the body of POST /api/commands.
type CommandRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommandReply is what every command surface answers with.
type CommandReply struct {
	Reply       string `json:"reply"`
	Day         int    `json:"day"`
	ActionsLeft int    `json:"actions_left"`
}

// ErrorResponse is the JSON body for failed API calls.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// OutboundMessageRequest represents a message pushed to a WhatsApp number.
// An empty To broadcasts to every recently active player.
type OutboundMessageRequest struct {
	To         string `json:"to"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// OutboundMessageReply acknowledges a queued outbound message.
type OutboundMessageReply struct {
	To        string `json:"to,omitempty"`
	Broadcast bool   `json:"broadcast"`
}
