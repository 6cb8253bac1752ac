package chatbot

import "context"

// TokenCounter counts tokens in text for a specific model. Used to size
// chunks for embedding.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
