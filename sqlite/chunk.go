package sqlite

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// Compile-time interface verification.
var _ chatbot.ChunkService = (*ChunkService)(nil)

// ChunkService implements chatbot.ChunkService using SQLite.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks creates multiple chunks in a batch.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*chatbot.Chunk) error {
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}

		chunk.ID = uuid.New().String()

		headings, err := json.Marshal(chunk.Metadata.Headings)
		if err != nil {
			return err
		}
		if chunk.Metadata.Headings == nil {
			headings = []byte("{}")
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO chunks (id, document_id, source_id, content, embedding, headings, page_url, title)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID, chunk.DocumentID, chunk.SourceID, chunk.Content,
			encodeEmbedding(chunk.Embedding), string(headings),
			chunk.Metadata.PageURL, chunk.Metadata.Title)
		if err != nil {
			return err
		}
	}
	return nil
}

// FindChunks retrieves chunks matching the filter.
func (s *ChunkService) FindChunks(ctx context.Context, filter chatbot.ChunkFilter) ([]*chatbot.Chunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, document_id, source_id, content, embedding, headings, page_url, title FROM chunks WHERE 1=1")
	appendChunkFilter(&query, &args, filter)
	query.WriteString(" ORDER BY rowid")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chunks := []*chatbot.Chunk{}
	for rows.Next() {
		var chunk chatbot.Chunk
		var embedding []byte
		var headings string
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.SourceID, &chunk.Content,
			&embedding, &headings, &chunk.Metadata.PageURL, &chunk.Metadata.Title); err != nil {
			return nil, err
		}
		chunk.Embedding = decodeEmbedding(embedding)
		if err := json.Unmarshal([]byte(headings), &chunk.Metadata.Headings); err != nil {
			return nil, err
		}
		chunks = append(chunks, &chunk)
	}

	return chunks, rows.Err()
}

// CountChunks returns the number of chunks matching the filter.
func (s *ChunkService) CountChunks(ctx context.Context, filter chatbot.ChunkFilter) (int, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT COUNT(*) FROM chunks WHERE 1=1")
	appendChunkFilter(&query, &args, filter)

	var count int
	err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&count)
	return count, err
}

// DeleteChunksBySource removes all chunks for a source.
func (s *ChunkService) DeleteChunksBySource(ctx context.Context, sourceID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE source_id = ?`, sourceID)
	return err
}

// appendChunkFilter appends WHERE conditions for a ChunkFilter.
func appendChunkFilter(query *strings.Builder, args *[]any, filter chatbot.ChunkFilter) {
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		*args = append(*args, *filter.ID)
	}
	if filter.DocumentID != nil {
		query.WriteString(" AND document_id = ?")
		*args = append(*args, *filter.DocumentID)
	}
	if filter.SourceID != nil {
		query.WriteString(" AND source_id = ?")
		*args = append(*args, *filter.SourceID)
	}
}
