// Package mock provides mock implementations of the chatbot service
// interfaces for testing.
package mock

import (
	"context"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

var _ chatbot.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of chatbot.SourceService.
type SourceService struct {
	CreateSourceFn     func(ctx context.Context, source *chatbot.Source) error
	FindSourceByURLFn  func(ctx context.Context, url string) (*chatbot.Source, error)
	FindSourcesFn      func(ctx context.Context) ([]*chatbot.Source, error)
	UpdateSourceFn     func(ctx context.Context, id string, upd chatbot.SourceUpdate) (*chatbot.Source, error)
	DeleteSourceFn     func(ctx context.Context, url string) error
	DeleteAllSourcesFn func(ctx context.Context) error
}

func (s *SourceService) CreateSource(ctx context.Context, source *chatbot.Source) error {
	return s.CreateSourceFn(ctx, source)
}

func (s *SourceService) FindSourceByURL(ctx context.Context, url string) (*chatbot.Source, error) {
	return s.FindSourceByURLFn(ctx, url)
}

func (s *SourceService) FindSources(ctx context.Context) ([]*chatbot.Source, error) {
	return s.FindSourcesFn(ctx)
}

func (s *SourceService) UpdateSource(ctx context.Context, id string, upd chatbot.SourceUpdate) (*chatbot.Source, error) {
	return s.UpdateSourceFn(ctx, id, upd)
}

func (s *SourceService) DeleteSource(ctx context.Context, url string) error {
	return s.DeleteSourceFn(ctx, url)
}

func (s *SourceService) DeleteAllSources(ctx context.Context) error {
	return s.DeleteAllSourcesFn(ctx)
}
