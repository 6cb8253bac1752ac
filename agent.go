package chatbot

import "context"

// Agent answers user messages, optionally grounded in the knowledge base.
// The history contains prior turns only; the current message is passed
// separately and must not be repeated in history.
type Agent interface {
	Chat(ctx context.Context, message string, history []Message) (string, error)
}
