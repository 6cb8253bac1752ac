package slog

import (
	"context"
	"log/slog"
	"time"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// Ensure LoggingAgent implements chatbot.Agent.
var _ chatbot.Agent = (*LoggingAgent)(nil)

// LoggingAgent wraps an Agent with per-turn logging.
type LoggingAgent struct {
	next   chatbot.Agent
	logger *slog.Logger
}

// NewLoggingAgent creates a new LoggingAgent.
func NewLoggingAgent(next chatbot.Agent, logger *slog.Logger) *LoggingAgent {
	return &LoggingAgent{next: next, logger: logger}
}

// Chat delegates and logs message sizes and duration. Message content is
// never logged.
func (a *LoggingAgent) Chat(ctx context.Context, message string, history []chatbot.Message) (string, error) {
	begin := time.Now()
	answer, err := a.next.Chat(ctx, message, history)
	if err != nil {
		a.logger.Error("chat turn",
			"message_chars", len(message),
			"history", len(history),
			"duration", time.Since(begin),
			"err", err,
		)
		return "", err
	}
	a.logger.Info("chat turn",
		"message_chars", len(message),
		"history", len(history),
		"answer_chars", len(answer),
		"duration", time.Since(begin),
	)
	return answer, nil
}
