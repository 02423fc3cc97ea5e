package contract

import (
	"context"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	Update(ctx context.Context, store *entity.Store) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Store, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Store, error)

	// AdjustCredits applies a relative credit delta atomically in SQL so that
	// concurrent turns never read-modify-write a stale balance.
	AdjustCredits(ctx context.Context, storeId uuid.UUID, delta int) error
}
