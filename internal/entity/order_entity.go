package entity

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	Id          uuid.UUID
	StoreId     uuid.UUID
	OrderNumber string
	Email       string
	Status      string
	TrackingURL string
	Total       string
	LineItems   []OrderLine
	CreatedAt   time.Time
}

type OrderLine struct {
	ProductId uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     string    `json:"price"`
}
