package dto

import (
	"time"

	"github.com/google/uuid"
)

type StoreProfileResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ShopDomain   string    `json:"shop_domain"`
	Description  string    `json:"description,omitempty"`
	SupportEmail string    `json:"support_email,omitempty"`
	AiCredits    int       `json:"ai_credits"`
	IsActive     bool      `json:"is_active"`
}

type UsageStatsRow struct {
	RequestType string `json:"request_type"`
	Count       int64  `json:"count"`
	Credits     int64  `json:"credits"`
	Failures    int64  `json:"failures"`
	AvgTimeMs   int64  `json:"avg_time_ms"`
}

type UsageStatsResponse struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	RemainingCredits int             `json:"remaining_credits"`
	Rows             []UsageStatsRow `json:"rows"`
}

// ResumeSessionRequest returns a handed-off session to the AI assistant.
type ResumeSessionRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}
