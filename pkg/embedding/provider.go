package embedding

import "context"

// Provider defines the interface for generating text embeddings.
// Implementations may return an empty vector on upstream failure; callers
// must treat that as "no candidates", not as a fatal error.
type Provider interface {
	Generate(ctx context.Context, text string, taskType string) (*Response, error)
}

type Response struct {
	Embedding ResponseEmbedding `json:"embedding"`
}

type ResponseEmbedding struct {
	Values []float32 `json:"values"`
}
