package mock

import (
	"context"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

var _ chatbot.Agent = (*Agent)(nil)

// Agent is a mock implementation of chatbot.Agent.
type Agent struct {
	ChatFn func(ctx context.Context, message string, history []chatbot.Message) (string, error)
}

func (a *Agent) Chat(ctx context.Context, message string, history []chatbot.Message) (string, error) {
	return a.ChatFn(ctx, message, history)
}
