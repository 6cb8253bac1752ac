package mock

import (
	"context"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

var _ chatbot.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService is a mock implementation of chatbot.KnowledgeService.
type KnowledgeService struct {
	AddURLFn     func(ctx context.Context, url string) ([]string, error)
	LoadedURLsFn func(ctx context.Context) ([]string, error)
	RemoveURLFn  func(ctx context.Context, url string) ([]string, error)
	ClearFn      func(ctx context.Context) error
}

func (s *KnowledgeService) AddURL(ctx context.Context, url string) ([]string, error) {
	return s.AddURLFn(ctx, url)
}

func (s *KnowledgeService) LoadedURLs(ctx context.Context) ([]string, error) {
	return s.LoadedURLsFn(ctx)
}

func (s *KnowledgeService) RemoveURL(ctx context.Context, url string) ([]string, error) {
	return s.RemoveURLFn(ctx, url)
}

func (s *KnowledgeService) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}
