package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// Compile-time interface verification.
var _ chatbot.SourceService = (*SourceService)(nil)

// SourceService implements chatbot.SourceService using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

// CreateSource records a newly loaded source.
func (s *SourceService) CreateSource(ctx context.Context, source *chatbot.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sources WHERE url = ?`, source.URL).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return chatbot.Errorf(chatbot.ECONFLICT, "url %q already loaded", source.URL)
	}

	source.ID = uuid.New().String()
	source.LoadedAt = time.Now().UTC()

	// position records load order; loaded_at is second-granular and ties
	// under the sequential multi-URL load.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sources (id, url, title, documents, loaded_at, position)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM sources))
	`, source.ID, source.URL, source.Title, source.Documents,
		source.LoadedAt.Format(time.RFC3339))

	return err
}

// FindSourceByURL retrieves a source by its URL.
func (s *SourceService) FindSourceByURL(ctx context.Context, url string) (*chatbot.Source, error) {
	var source chatbot.Source
	var loadedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, documents, loaded_at
		FROM sources
		WHERE url = ?
	`, url).Scan(&source.ID, &source.URL, &source.Title, &source.Documents, &loadedAt)

	if err == sql.ErrNoRows {
		return nil, chatbot.Errorf(chatbot.ENOTFOUND, "url %q not found in loaded URLs", url)
	}
	if err != nil {
		return nil, err
	}

	source.LoadedAt, err = parseRFC3339(loadedAt, "loaded_at")
	if err != nil {
		return nil, err
	}

	return &source, nil
}

// FindSources retrieves all sources in load order.
func (s *SourceService) FindSources(ctx context.Context) ([]*chatbot.Source, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, title, documents, loaded_at
		FROM sources
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sources := []*chatbot.Source{}
	for rows.Next() {
		var source chatbot.Source
		var loadedAt string
		if err := rows.Scan(&source.ID, &source.URL, &source.Title, &source.Documents, &loadedAt); err != nil {
			return nil, err
		}
		source.LoadedAt, err = parseRFC3339(loadedAt, "loaded_at")
		if err != nil {
			return nil, err
		}
		sources = append(sources, &source)
	}

	return sources, rows.Err()
}

// UpdateSource updates an existing source.
func (s *SourceService) UpdateSource(ctx context.Context, id string, upd chatbot.SourceUpdate) (*chatbot.Source, error) {
	var url string
	err := s.db.QueryRowContext(ctx, `SELECT url FROM sources WHERE id = ?`, id).Scan(&url)
	if err == sql.ErrNoRows {
		return nil, chatbot.Errorf(chatbot.ENOTFOUND, "source not found")
	}
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if _, err := s.db.ExecContext(ctx, `UPDATE sources SET title = ? WHERE id = ?`, *upd.Title, id); err != nil {
			return nil, err
		}
	}
	if upd.Documents != nil {
		if _, err := s.db.ExecContext(ctx, `UPDATE sources SET documents = ? WHERE id = ?`, *upd.Documents, id); err != nil {
			return nil, err
		}
	}

	return s.FindSourceByURL(ctx, url)
}

// DeleteSource removes a source and all associated documents and chunks.
func (s *SourceService) DeleteSource(ctx context.Context, url string) error {
	source, err := s.FindSourceByURL(ctx, url)
	if err != nil {
		return err
	}

	// chunks reference documents with ON DELETE CASCADE, and documents
	// reference sources the same way, so one delete cleans up everything.
	_, err = s.db.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, source.ID)
	return err
}

// DeleteAllSources removes every source and all indexed content.
func (s *SourceService) DeleteAllSources(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sources`)
	return err
}
