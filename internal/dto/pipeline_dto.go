package dto

import "github.com/google/uuid"

// PublishEmbedProductMessage asks the embedding pipeline to (re)index one
// product.
type PublishEmbedProductMessage struct {
	ProductId uuid.UUID `json:"product_id"`
}
