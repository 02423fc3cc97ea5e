package contract

import (
	"context"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredProductEmbedding pairs an embedding row with its cosine similarity
// against the query vector.
type ScoredProductEmbedding struct {
	Embedding  *entity.ProductEmbedding
	Similarity float64
}

type ProductEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ProductEmbedding) error
	Upsert(ctx context.Context, embedding *entity.ProductEmbedding) error
	DeleteByProductId(ctx context.Context, productId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProductEmbedding, error)

	// SearchSimilarWithScore runs approximate nearest-neighbor search within
	// one store's namespace (join-filtered by store_id).
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, storeId uuid.UUID) ([]*ScoredProductEmbedding, error)
}
