package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id             uuid.UUID
	StoreId        uuid.UUID
	CustomerEmail  *string
	GuestId        *string
	IsGuest        bool
	IsHumanSupport bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

type ChatMessage struct {
	Id                  uuid.UUID
	ChatSessionId       uuid.UUID
	Role                string
	Content             string
	RecommendedProducts []ProductRef
	CreatedAt           time.Time
}

// ProductRef is the compact form persisted on assistant turns, enough for a
// later turn to resolve "that one" without re-searching.
type ProductRef struct {
	Id     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Handle string    `json:"handle"`
	Price  string    `json:"price"`
}
