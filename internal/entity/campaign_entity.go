package entity

import (
	"time"

	"github.com/google/uuid"
)

type Campaign struct {
	Id              uuid.UUID
	StoreId         uuid.UUID
	Name            string
	TriggerKeywords []string
	ResponseMessage string
	ProductIds      []uuid.UUID
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
