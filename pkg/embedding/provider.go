package embedding

import "context"

// Task types hint the provider at how the embedding will be used.
const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
	GenerateBatch(ctx context.Context, texts []string, taskType string) ([]*EmbeddingResponse, error)
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// generateOneByOne is the batch fallback for providers whose API only
// accepts a single input per call.
func generateOneByOne(ctx context.Context, p EmbeddingProvider, texts []string, taskType string) ([]*EmbeddingResponse, error) {
	out := make([]*EmbeddingResponse, 0, len(texts))
	for _, text := range texts {
		res, err := p.Generate(ctx, text, taskType)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
