// Package knowledge implements the knowledge base service: adding a URL
// crawls and indexes its content, removing one deletes everything indexed
// under it.
package knowledge

import (
	"context"
	"log/slog"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
	"github.com/B-Manish/web-scraper-chatbot/crawl"
)

// Compile-time interface verification.
var _ chatbot.KnowledgeService = (*Service)(nil)

// Service implements chatbot.KnowledgeService on top of the crawler and the
// source store.
type Service struct {
	Crawler *crawl.Crawler
	Sources chatbot.SourceService
	Logger  *slog.Logger
}

// AddURL crawls the URL and indexes its content. Adding a URL that is
// already loaded is a no-op returning the current list.
func (s *Service) AddURL(ctx context.Context, url string) ([]string, error) {
	source := &chatbot.Source{URL: url}
	if err := source.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.Sources.FindSourceByURL(ctx, url); err == nil && existing != nil {
		return s.LoadedURLs(ctx)
	}

	if err := s.Sources.CreateSource(ctx, source); err != nil {
		return nil, err
	}

	result, err := s.Crawler.CrawlSource(ctx, source)
	if err != nil || result.Saved == 0 {
		// Nothing was indexed; don't leave an empty source behind.
		if delErr := s.Sources.DeleteSource(ctx, url); delErr != nil {
			s.logger().Error("cleanup of failed source failed", "url", url, "error", delErr)
		}
		if err != nil {
			return nil, err
		}
		return nil, chatbot.Errorf(chatbot.EINVALID, "no content could be extracted from %s", url)
	}

	if result.Warning != "" {
		s.logger().Warn("partial crawl", "url", url, "warning", result.Warning)
	}
	s.logger().Info("source indexed",
		"url", url,
		"pages", result.Saved,
		"chunks", result.Chunks,
		"tokens", result.Tokens,
	)

	docs := result.Saved
	if _, err := s.Sources.UpdateSource(ctx, source.ID, chatbot.SourceUpdate{Documents: &docs}); err != nil {
		s.logger().Error("source stats update failed", "url", url, "error", err)
	}

	return s.LoadedURLs(ctx)
}

// LoadedURLs returns the loaded URLs in load order.
func (s *Service) LoadedURLs(ctx context.Context) ([]string, error) {
	sources, err := s.Sources.FindSources(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]string, len(sources))
	for i, source := range sources {
		urls[i] = source.URL
	}
	return urls, nil
}

// RemoveURL removes all indexed content for the URL.
func (s *Service) RemoveURL(ctx context.Context, url string) ([]string, error) {
	if err := s.Sources.DeleteSource(ctx, url); err != nil {
		return nil, err
	}
	return s.LoadedURLs(ctx)
}

// Clear removes all indexed content.
func (s *Service) Clear(ctx context.Context) error {
	return s.Sources.DeleteAllSources(ctx)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
