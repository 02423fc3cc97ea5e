package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id          uuid.UUID
	StoreId     uuid.UUID
	Title       string
	Handle      string
	Description string
	ProductType string
	Tags        []string
	Price       string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type ProductEmbedding struct {
	Id             uuid.UUID
	ProductId      uuid.UUID
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
}

// ProductSales pairs a product with its aggregated historical order quantity.
type ProductSales struct {
	Product   *Product
	TotalSold int
}
