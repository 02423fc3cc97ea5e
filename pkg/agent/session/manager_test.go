package session

import (
	"context"
	"testing"

	"ai-commerce-chat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	byId map[uuid.UUID]*entity.ChatSession
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byId: map[uuid.UUID]*entity.ChatSession{}}
}

func (f *fakeSessions) FindByGuestId(ctx context.Context, storeId uuid.UUID, guestId string) (*entity.ChatSession, error) {
	for _, s := range f.byId {
		if s.StoreId == storeId && s.GuestId != nil && *s.GuestId == guestId {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessions) FindByCustomerEmail(ctx context.Context, storeId uuid.UUID, email string) (*entity.ChatSession, error) {
	for _, s := range f.byId {
		if s.StoreId == storeId && s.CustomerEmail != nil && *s.CustomerEmail == email {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessions) Create(ctx context.Context, session *entity.ChatSession) error {
	f.byId[session.Id] = session
	return nil
}

func (f *fakeSessions) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byId, id)
	return nil
}

type fakeMessages struct {
	bySession map[uuid.UUID][]*entity.ChatMessage
}

func newFakeMessages() *fakeMessages {
	return &fakeMessages{bySession: map[uuid.UUID][]*entity.ChatMessage{}}
}

func (f *fakeMessages) FindAllBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	return f.bySession[sessionId], nil
}

func (f *fakeMessages) CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error {
	for _, m := range messages {
		f.bySession[m.ChatSessionId] = append(f.bySession[m.ChatSessionId], m)
	}
	return nil
}

func (f *fakeMessages) DeleteBySession(ctx context.Context, sessionId uuid.UUID) error {
	delete(f.bySession, sessionId)
	return nil
}

type fakeLog struct {
	deleted []string
}

func (f *fakeLog) DeleteSession(ctx context.Context, sessionId string) error {
	f.deleted = append(f.deleted, sessionId)
	return nil
}

func TestResolveCreatesGuestSessionOnFirstContact(t *testing.T) {
	sessions := newFakeSessions()
	m := NewManager(sessions, newFakeMessages(), &fakeLog{})
	storeId := uuid.New()

	got, err := m.Resolve(context.Background(), storeId, "guest-abc", "")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsGuest)
	require.NotNil(t, got.GuestId)
	assert.Equal(t, "guest-abc", *got.GuestId)

	// Second contact reuses the same session.
	again, err := m.Resolve(context.Background(), storeId, "guest-abc", "")
	require.NoError(t, err)
	assert.Equal(t, got.Id, again.Id)
}

func TestResolveMigratesGuestHistoryToCustomer(t *testing.T) {
	sessions := newFakeSessions()
	messages := newFakeMessages()
	log := &fakeLog{}
	m := NewManager(sessions, messages, log)
	storeId := uuid.New()

	guest, err := m.Resolve(context.Background(), storeId, "guest-abc", "")
	require.NoError(t, err)

	messages.bySession[guest.Id] = []*entity.ChatMessage{
		{Id: uuid.New(), ChatSessionId: guest.Id, Role: "user", Content: "hi"},
		{Id: uuid.New(), ChatSessionId: guest.Id, Role: "assistant", Content: "hello!"},
	}

	customer, err := m.Resolve(context.Background(), storeId, "guest-abc", "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, customer.CustomerEmail)
	assert.Equal(t, "jane@example.com", *customer.CustomerEmail)
	assert.False(t, customer.IsGuest)

	// History moved, guest session and transcript gone.
	assert.Len(t, messages.bySession[customer.Id], 2)
	assert.Empty(t, messages.bySession[guest.Id])
	assert.NotContains(t, sessions.byId, guest.Id)
	assert.Contains(t, log.deleted, guest.Id.String())
}

func TestResolveMigrationIsIdempotent(t *testing.T) {
	sessions := newFakeSessions()
	messages := newFakeMessages()
	m := NewManager(sessions, messages, &fakeLog{})
	storeId := uuid.New()

	guest, err := m.Resolve(context.Background(), storeId, "guest-abc", "")
	require.NoError(t, err)
	messages.bySession[guest.Id] = []*entity.ChatMessage{
		{Id: uuid.New(), ChatSessionId: guest.Id, Role: "user", Content: "hi"},
	}

	first, err := m.Resolve(context.Background(), storeId, "guest-abc", "jane@example.com")
	require.NoError(t, err)

	// A client retry must not duplicate history or fail.
	second, err := m.Resolve(context.Background(), storeId, "guest-abc", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Len(t, messages.bySession[first.Id], 1)
}

func TestResolveNormalizesEmail(t *testing.T) {
	m := NewManager(newFakeSessions(), newFakeMessages(), &fakeLog{})
	storeId := uuid.New()

	first, err := m.Resolve(context.Background(), storeId, "", "Jane@Example.com ")
	require.NoError(t, err)

	second, err := m.Resolve(context.Background(), storeId, "", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
}

func TestResolveRequiresSomeIdentity(t *testing.T) {
	m := NewManager(newFakeSessions(), newFakeMessages(), &fakeLog{})

	_, err := m.Resolve(context.Background(), uuid.New(), "", "")
	assert.Error(t, err)
}
