package entity

import (
	"time"

	"github.com/google/uuid"
)

type Faq struct {
	Id       uuid.UUID
	StoreId  uuid.UUID
	Question string
	Answer   string
}

type StorePolicy struct {
	Id         uuid.UUID
	StoreId    uuid.UUID
	PolicyType string
	Content    string
}

type Discount struct {
	Id          uuid.UUID
	StoreId     uuid.UUID
	Code        string
	Description string
	Value       string
	IsActive    bool
	ExpiresAt   *time.Time
}

type UsageEvent struct {
	Id             uuid.UUID
	StoreId        uuid.UUID
	ChatSessionId  *uuid.UUID
	RequestType    string
	CreditsUsed    int
	WasSuccessful  bool
	ResponseTimeMs int64
	CreatedAt      time.Time
}

type CreditTopup struct {
	Id        uuid.UUID
	StoreId   uuid.UUID
	OrderRef  string
	Credits   int
	Amount    int64
	Status    string
	CreatedAt time.Time
}
