package entity

import (
	"time"

	"github.com/google/uuid"
)

type Store struct {
	Id           uuid.UUID
	ShopDomain   string
	Name         string
	PublicKey    string
	SupportEmail string
	Description  string
	AiCredits    int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
