package llm

import (
	"context"
	"errors"
)

// Roles used in a Request.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyCompletion is returned when the provider answered without any choice or text.
var ErrEmptyCompletion = errors.New("completion returned no content")

type Message struct {
	Role    string
	Content string
}

// Request is a single, stateless chat completion call.
type Request struct {
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// Completer turns a list of messages into one reply.
type Completer interface {
	// Name returns the provider identifier (for logging).
	Name() string

	Complete(ctx context.Context, req Request) (string, error)
}
