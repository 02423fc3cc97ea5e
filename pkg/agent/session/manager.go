package session

import (
	"context"
	"fmt"
	"strings"

	"ai-commerce-chat-be/internal/entity"

	"github.com/google/uuid"
)

// Sessions is the session persistence surface the manager needs.
type Sessions interface {
	FindByGuestId(ctx context.Context, storeId uuid.UUID, guestId string) (*entity.ChatSession, error)
	FindByCustomerEmail(ctx context.Context, storeId uuid.UUID, email string) (*entity.ChatSession, error)
	Create(ctx context.Context, session *entity.ChatSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Messages copies message history between sessions during migration.
type Messages interface {
	FindAllBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
	CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error
	DeleteBySession(ctx context.Context, sessionId uuid.UUID) error
}

// TranscriptLog is the realtime copy of a session's transcript; the guest
// key must not outlive a migration.
type TranscriptLog interface {
	DeleteSession(ctx context.Context, sessionId string) error
}

// Manager resolves the session for a turn, creating guest sessions on first
// contact and migrating guest history when a customer identifies.
type Manager struct {
	sessions Sessions
	messages Messages
	log      TranscriptLog
}

func NewManager(sessions Sessions, messages Messages, log TranscriptLog) *Manager {
	return &Manager{
		sessions: sessions,
		messages: messages,
		log:      log,
	}
}

// Resolve returns the session this turn belongs to.
//
// Guests are keyed by their widget-generated guest id. When a customer
// email appears, any history under the guest session is merged into the
// customer session and the guest session is deleted. Client retries are
// expected, so the merge is idempotent: once the guest session is gone,
// subsequent calls resolve straight to the customer session.
func (m *Manager) Resolve(ctx context.Context, storeId uuid.UUID, guestId, customerEmail string) (*entity.ChatSession, error) {
	customerEmail = strings.TrimSpace(strings.ToLower(customerEmail))

	if customerEmail == "" {
		if guestId == "" {
			return nil, fmt.Errorf("either a guest id or a customer email is required")
		}
		return m.resolveGuest(ctx, storeId, guestId)
	}

	customer, err := m.sessions.FindByCustomerEmail(ctx, storeId, customerEmail)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &entity.ChatSession{
			Id:            uuid.New(),
			StoreId:       storeId,
			CustomerEmail: &customerEmail,
			IsGuest:       false,
		}
		if err := m.sessions.Create(ctx, customer); err != nil {
			return nil, err
		}
	}

	if guestId != "" {
		if err := m.migrate(ctx, storeId, guestId, customer); err != nil {
			return nil, err
		}
	}
	return customer, nil
}

func (m *Manager) resolveGuest(ctx context.Context, storeId uuid.UUID, guestId string) (*entity.ChatSession, error) {
	session, err := m.sessions.FindByGuestId(ctx, storeId, guestId)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = &entity.ChatSession{
		Id:      uuid.New(),
		StoreId: storeId,
		GuestId: &guestId,
		IsGuest: true,
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// migrate appends the guest session's history to the customer session and
// removes the guest copy. A missing guest session means the migration
// already happened.
func (m *Manager) migrate(ctx context.Context, storeId uuid.UUID, guestId string, customer *entity.ChatSession) error {
	guest, err := m.sessions.FindByGuestId(ctx, storeId, guestId)
	if err != nil {
		return err
	}
	if guest == nil || guest.Id == customer.Id {
		return nil
	}

	history, err := m.messages.FindAllBySession(ctx, guest.Id)
	if err != nil {
		return err
	}

	if len(history) > 0 {
		moved := make([]*entity.ChatMessage, 0, len(history))
		for _, msg := range history {
			moved = append(moved, &entity.ChatMessage{
				Id:                  uuid.New(),
				ChatSessionId:       customer.Id,
				Role:                msg.Role,
				Content:             msg.Content,
				RecommendedProducts: msg.RecommendedProducts,
				CreatedAt:           msg.CreatedAt,
			})
		}
		if err := m.messages.CreateBulk(ctx, moved); err != nil {
			return err
		}
	}

	if err := m.messages.DeleteBySession(ctx, guest.Id); err != nil {
		return err
	}
	if err := m.sessions.Delete(ctx, guest.Id); err != nil {
		return err
	}
	if m.log != nil {
		if err := m.log.DeleteSession(ctx, guest.Id.String()); err != nil {
			// The realtime copy expires on its own; losing this delete
			// must not fail the turn.
			return nil
		}
	}
	return nil
}
