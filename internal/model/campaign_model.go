package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Campaign struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:text;not null"`
	TriggerKeywords datatypes.JSON `gorm:"type:jsonb;not null"` // ["sale","summer deals",...]
	ResponseMessage string         `gorm:"type:text;not null"`
	ProductIds      datatypes.JSON `gorm:"type:jsonb"`
	IsActive        bool           `gorm:"not null;default:true"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
