package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Message       string `json:"message" validate:"required,max=2000"`
	GuestId       string `json:"guest_id,omitempty" validate:"omitempty,max=64"`
	CustomerEmail string `json:"customer_email,omitempty" validate:"omitempty,email"`
}

type ProductRefDTO struct {
	Id     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Handle string    `json:"handle"`
	Price  string    `json:"price"`
}

type TurnPerformance struct {
	TotalMs     int64 `json:"total_ms"`
	RetrievalMs int64 `json:"retrieval_ms,omitempty"`
	ModelMs     int64 `json:"model_ms,omitempty"`
}

type SendMessageResponse struct {
	Success          bool            `json:"success"`
	SessionId        uuid.UUID       `json:"session_id"`
	ResponseType     string          `json:"response_type"`
	UserMessage      string          `json:"user_message"`
	AssistantMessage string          `json:"assistant_message"`
	Products         []ProductRefDTO `json:"products,omitempty"`
	RemainingCredits int             `json:"remaining_credits"`
	Performance      TurnPerformance `json:"performance"`
}

// StreamMetadata is the final SSE event of a streamed turn, after all
// text deltas.
type StreamMetadata struct {
	SessionId        uuid.UUID       `json:"session_id"`
	ResponseType     string          `json:"response_type"`
	Products         []ProductRefDTO `json:"products,omitempty"`
	RemainingCredits int             `json:"remaining_credits"`
	Performance      TurnPerformance `json:"performance"`
}

type CreateSessionRequest struct {
	GuestId       string `json:"guest_id,omitempty" validate:"omitempty,max=64"`
	CustomerEmail string `json:"customer_email,omitempty" validate:"omitempty,email"`
}

type CreateSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	IsGuest   bool      `json:"is_guest"`
}

type ChatHistoryMessage struct {
	Id        uuid.UUID       `json:"id"`
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	Products  []ProductRefDTO `json:"products,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type ChatHistoryResponse struct {
	SessionId      uuid.UUID            `json:"session_id"`
	IsHumanSupport bool                 `json:"is_human_support"`
	Messages       []ChatHistoryMessage `json:"messages"`
}
