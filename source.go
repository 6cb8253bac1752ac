package chatbot

import (
	"context"
	"strings"
	"time"
)

// Source represents a URL that has been loaded into the knowledge base.
type Source struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Documents int       `json:"documents"`
	LoadedAt  time.Time `json:"loadedAt"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "source URL required")
	}
	if !strings.HasPrefix(s.URL, "http://") && !strings.HasPrefix(s.URL, "https://") {
		return Errorf(EINVALID, "source URL must start with http:// or https://")
	}
	return nil
}

// SourceService represents a service for managing loaded sources.
type SourceService interface {
	// CreateSource records a newly loaded source.
	// Returns ECONFLICT if the URL is already recorded.
	CreateSource(ctx context.Context, source *Source) error

	// FindSourceByURL retrieves a source by its URL.
	// Returns ENOTFOUND if the URL has not been loaded.
	FindSourceByURL(ctx context.Context, url string) (*Source, error)

	// FindSources retrieves all sources in load order.
	FindSources(ctx context.Context) ([]*Source, error)

	// UpdateSource updates an existing source.
	// Returns ENOTFOUND if the source does not exist.
	UpdateSource(ctx context.Context, id string, upd SourceUpdate) (*Source, error)

	// DeleteSource removes a source and all associated documents and chunks.
	// Returns ENOTFOUND if the URL has not been loaded.
	DeleteSource(ctx context.Context, url string) error

	// DeleteAllSources removes every source and all indexed content.
	DeleteAllSources(ctx context.Context) error
}

// SourceUpdate represents fields that can be updated on a source.
type SourceUpdate struct {
	Title     *string `json:"title"`
	Documents *int    `json:"documents"`
}
