package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Faq struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Question  string         `gorm:"type:text;not null"`
	Answer    string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Faq) TableName() string {
	return "faqs"
}

type StorePolicy struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	PolicyType string         `gorm:"type:varchar(50);not null"` // shipping | returns | privacy | terms
	Content    string         `gorm:"type:text;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (StorePolicy) TableName() string {
	return "store_policies"
}

type Discount struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Code        string         `gorm:"type:varchar(64);not null"`
	Description string         `gorm:"type:text"`
	Value       string         `gorm:"type:varchar(32);not null"` // "10%" or "15.00"
	IsActive    bool           `gorm:"not null;default:true"`
	ExpiresAt   *time.Time     `gorm:""`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Discount) TableName() string {
	return "discounts"
}
