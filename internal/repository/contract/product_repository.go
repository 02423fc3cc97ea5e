package contract

import (
	"context"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindNewest is the relational path for the "newest" sort mode.
	FindNewest(ctx context.Context, storeId uuid.UUID, limit int) ([]*entity.Product, error)

	// FindBestSelling orders by aggregated historical order quantity.
	// Returns an empty slice when the store has no sales rows.
	FindBestSelling(ctx context.Context, storeId uuid.UUID, limit int) ([]*entity.ProductSales, error)
}
