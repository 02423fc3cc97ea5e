package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "HANDOFF_REQUESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewUsageRecorded is emitted after every completed chat turn so downstream
// consumers (analytics, billing) see usage without touching the hot path.
func NewUsageRecorded(storeId, sessionId, usageType string, creditsUsed int, wasSuccessful bool) Event {
	return BaseEvent{
		Type: "USAGE_RECORDED",
		Data: map[string]interface{}{
			"store_id":       storeId,
			"session_id":     sessionId,
			"usage_type":     usageType,
			"credits_used":   creditsUsed,
			"was_successful": wasSuccessful,
		},
		OccurredAt: time.Now(),
	}
}

// NewHandoffRequested is emitted when a session switches to human support.
func NewHandoffRequested(storeId, sessionId, customerEmail string) Event {
	return BaseEvent{
		Type: "HANDOFF_REQUESTED",
		Data: map[string]interface{}{
			"store_id":       storeId,
			"session_id":     sessionId,
			"customer_email": customerEmail,
		},
		OccurredAt: time.Now(),
	}
}

// NewCreditTopupSettled is emitted when a payment webhook confirms a top-up.
func NewCreditTopupSettled(storeId, orderRef string, credits int) Event {
	return BaseEvent{
		Type: "CREDIT_TOPUP_SETTLED",
		Data: map[string]interface{}{
			"store_id":  storeId,
			"order_ref": orderRef,
			"credits":   credits,
		},
		OccurredAt: time.Now(),
	}
}
