package sqlite

import (
	"context"
	"math"
	"sort"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// DefaultSearchLimit caps results when SearchOptions.Limit is unset.
const DefaultSearchLimit = 10

// Compile-time interface verification.
var _ chatbot.SearchService = (*SearchService)(nil)

// SearchService implements chatbot.SearchService with brute-force cosine
// similarity over chunk embeddings stored in SQLite.
type SearchService struct {
	chunks   chatbot.ChunkService
	embedder chatbot.Embedder
}

// NewSearchService creates a new SearchService.
func NewSearchService(chunks chatbot.ChunkService, embedder chatbot.Embedder) *SearchService {
	return &SearchService{chunks: chunks, embedder: embedder}
}

// Search returns chunks ordered by relevance to the query.
func (s *SearchService) Search(ctx context.Context, query string, opts chatbot.SearchOptions) ([]chatbot.SearchResult, error) {
	if query == "" {
		return nil, chatbot.Errorf(chatbot.EINVALID, "search query required")
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, chatbot.Errorf(chatbot.EINTERNAL, "embedder returned %d vectors for 1 text", len(vectors))
	}
	queryVec := vectors[0]

	chunks, err := s.chunks.FindChunks(ctx, chatbot.ChunkFilter{})
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results := make([]chatbot.SearchResult, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		score := cosineSimilarity(queryVec, chunk.Embedding)
		if score < opts.MinScore {
			continue
		}
		results = append(results, chatbot.SearchResult{Chunk: chunk, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
