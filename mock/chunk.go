package mock

import (
	"context"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

var _ chatbot.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of chatbot.ChunkService.
type ChunkService struct {
	CreateChunksFn         func(ctx context.Context, chunks []*chatbot.Chunk) error
	FindChunksFn           func(ctx context.Context, filter chatbot.ChunkFilter) ([]*chatbot.Chunk, error)
	CountChunksFn          func(ctx context.Context, filter chatbot.ChunkFilter) (int, error)
	DeleteChunksBySourceFn func(ctx context.Context, sourceID string) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*chatbot.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter chatbot.ChunkFilter) ([]*chatbot.Chunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) CountChunks(ctx context.Context, filter chatbot.ChunkFilter) (int, error) {
	return s.CountChunksFn(ctx, filter)
}

func (s *ChunkService) DeleteChunksBySource(ctx context.Context, sourceID string) error {
	return s.DeleteChunksBySourceFn(ctx, sourceID)
}

var _ chatbot.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of chatbot.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

var _ chatbot.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of chatbot.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts chatbot.SearchOptions) ([]chatbot.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts chatbot.SearchOptions) ([]chatbot.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}
