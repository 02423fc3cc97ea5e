package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId        uuid.UUID      `gorm:"type:uuid;not null;index"` // Tenant isolation
	CustomerEmail  *string        `gorm:"type:varchar(255);index"`
	GuestId        *string        `gorm:"type:varchar(64);index"`
	IsGuest        bool           `gorm:"not null;default:true"`
	IsHumanSupport bool           `gorm:"not null;default:false"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
