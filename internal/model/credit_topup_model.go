package model

import (
	"time"

	"github.com/google/uuid"
)

// CreditTopup tracks a midtrans checkout for an AI credit pack.
type CreditTopup struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId   uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderRef  string    `gorm:"type:varchar(64);not null;uniqueIndex"` // Midtrans order_id
	Credits   int       `gorm:"not null"`
	Amount    int64     `gorm:"not null"` // IDR, gross amount
	Status    string    `gorm:"type:varchar(32);not null;default:'pending'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CreditTopup) TableName() string {
	return "credit_topups"
}
