package model

import (
	"time"

	"github.com/google/uuid"
)

type UsageEvent struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ChatSessionId  *uuid.UUID `gorm:"type:uuid;index"`
	RequestType    string     `gorm:"type:varchar(50);not null;index"`
	CreditsUsed    int        `gorm:"not null"`
	WasSuccessful  bool       `gorm:"not null"`
	ResponseTimeMs int64      `gorm:"not null"`
	CreatedAt      time.Time  `gorm:"default:now();not null"`
}

func (UsageEvent) TableName() string {
	return "usage_events"
}
