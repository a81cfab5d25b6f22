package domain

import "context"

// ChatRole is the author of a chat message
type ChatRole string

const (
	ChatRoleSystem ChatRole = "system"
	ChatRoleUser   ChatRole = "user"
)

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// ChatRequest is a single chat completion call.
// An empty Model or a nil Temperature falls back to the client's defaults.
type ChatRequest struct {
	Messages    []ChatMessage
	Model       string
	Temperature *float64
	// JSONMode asks the model for a single JSON object.
	JSONMode bool
}

// ChatClient is the language model the service talks to
type ChatClient interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}
