package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCampaignRequest struct {
	Name            string      `json:"name" validate:"required,max=120"`
	TriggerKeywords []string    `json:"trigger_keywords" validate:"required,min=1,max=20,dive,min=2,max=60"`
	ResponseMessage string      `json:"response_message" validate:"required,max=2000"`
	ProductIds      []uuid.UUID `json:"product_ids,omitempty" validate:"max=6"`
	IsActive        bool        `json:"is_active"`
}

type UpdateCampaignRequest struct {
	Name            *string     `json:"name,omitempty" validate:"omitempty,max=120"`
	TriggerKeywords []string    `json:"trigger_keywords,omitempty" validate:"omitempty,min=1,max=20,dive,min=2,max=60"`
	ResponseMessage *string     `json:"response_message,omitempty" validate:"omitempty,max=2000"`
	ProductIds      []uuid.UUID `json:"product_ids,omitempty" validate:"max=6"`
	IsActive        *bool       `json:"is_active,omitempty"`
}

type CampaignResponse struct {
	Id              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	TriggerKeywords []string    `json:"trigger_keywords"`
	ResponseMessage string      `json:"response_message"`
	ProductIds      []uuid.UUID `json:"product_ids,omitempty"`
	IsActive        bool        `json:"is_active"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       *time.Time  `json:"updated_at,omitempty"`
}
