package dto

import "errors"

// Sentinel errors mapped to HTTP statuses by the error middleware.
var (
	ErrStoreNotFound    = errors.New("store not found")
	ErrStoreInactive    = errors.New("store is not active")
	ErrSessionNotFound  = errors.New("chat session not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrTopupNotFound    = errors.New("top-up not found")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// InsufficientCreditsError carries the remaining balance so the widget can
// render the credits-exhausted state.
type InsufficientCreditsError struct {
	Remaining int
}

func (e *InsufficientCreditsError) Error() string {
	return "insufficient ai credits"
}
