package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId     uuid.UUID      `gorm:"type:uuid;not null;index"` // Tenant isolation
	Title       string         `gorm:"type:text;not null"`
	Handle      string         `gorm:"type:varchar(255);not null;index"`
	Description string         `gorm:"type:text"`
	ProductType string         `gorm:"type:varchar(255)"`
	Tags        datatypes.JSON `gorm:"type:jsonb"` // ["summer","cotton",...]
	Price       string         `gorm:"type:varchar(32);not null"` // As received from the catalog feed
	ImageURL    string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}
