package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByChatSessionID filters chat messages by session
type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

// ByGuestID locates the guest session a browser cookie maps to
type ByGuestID struct {
	GuestID string
}

func (s ByGuestID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("guest_id = ?", s.GuestID)
}

// ByCustomerEmail locates the identified-customer session
type ByCustomerEmail struct {
	Email string
}

func (s ByCustomerEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_email = ?", s.Email)
}

// ByPublicKey resolves a store from the widget's X-Store-Key header
type ByPublicKey struct {
	PublicKey string
}

func (s ByPublicKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("public_key = ?", s.PublicKey)
}

// ActiveOnly filters campaigns/discounts by their is_active flag
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
