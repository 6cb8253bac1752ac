package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

// DefaultEmbeddingModel is the embedding model used when none is configured.
const DefaultEmbeddingModel = "text-embedding-3-small"

// Ensure Embedder implements chatbot.Embedder at compile time.
var _ chatbot.Embedder = (*Embedder)(nil)

// Embedder computes embedding vectors using the OpenAI embeddings API.
// Vectors from different embedding providers are not comparable, so the
// embedder is selected together with the agent backend.
type Embedder struct {
	client *openai.Client
	model  string
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(apiKey string, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Embed returns embedding vectors for the given texts, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.F[openai.EmbeddingNewParamsInputUnion](openai.EmbeddingNewParamsInputArrayOfStrings(texts)),
		Model: openai.F(openai.EmbeddingModel(e.model)),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, chatbot.Errorf(chatbot.EINTERNAL, "openai returned unexpected embedding count")
	}

	vectors := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
