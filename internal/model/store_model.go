package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShopDomain   string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string         `gorm:"type:text;not null"`
	PublicKey    string         `gorm:"type:varchar(64);not null;uniqueIndex"` // Widget auth key
	SupportEmail string         `gorm:"type:varchar(255)"`
	Description  string         `gorm:"type:text"`
	AiCredits    int            `gorm:"not null;default:0"`
	IsActive     bool           `gorm:"not null;default:true"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Store) TableName() string {
	return "stores"
}
