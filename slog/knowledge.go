// Package slog provides logging decorators around the chatbot service
// interfaces, using the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// Ensure LoggingKnowledgeService implements chatbot.KnowledgeService.
var _ chatbot.KnowledgeService = (*LoggingKnowledgeService)(nil)

// LoggingKnowledgeService wraps a KnowledgeService with operation logging.
type LoggingKnowledgeService struct {
	next   chatbot.KnowledgeService
	logger *slog.Logger
}

// NewLoggingKnowledgeService creates a new LoggingKnowledgeService.
func NewLoggingKnowledgeService(next chatbot.KnowledgeService, logger *slog.Logger) *LoggingKnowledgeService {
	return &LoggingKnowledgeService{next: next, logger: logger}
}

// AddURL delegates and logs the outcome with duration.
func (s *LoggingKnowledgeService) AddURL(ctx context.Context, url string) ([]string, error) {
	begin := time.Now()
	urls, err := s.next.AddURL(ctx, url)
	if err != nil {
		s.logger.Error("knowledge add",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("knowledge add",
		"url", url,
		"loaded", len(urls),
		"duration", time.Since(begin),
	)
	return urls, nil
}

// LoadedURLs delegates to the wrapped service.
func (s *LoggingKnowledgeService) LoadedURLs(ctx context.Context) ([]string, error) {
	return s.next.LoadedURLs(ctx)
}

// RemoveURL delegates and logs the outcome.
func (s *LoggingKnowledgeService) RemoveURL(ctx context.Context, url string) ([]string, error) {
	urls, err := s.next.RemoveURL(ctx, url)
	if err != nil {
		s.logger.Error("knowledge remove", "url", url, "err", err)
		return nil, err
	}
	s.logger.Info("knowledge remove", "url", url, "remaining", len(urls))
	return urls, nil
}

// Clear delegates and logs the outcome.
func (s *LoggingKnowledgeService) Clear(ctx context.Context) error {
	if err := s.next.Clear(ctx); err != nil {
		s.logger.Error("knowledge clear", "err", err)
		return err
	}
	s.logger.Info("knowledge clear")
	return nil
}
