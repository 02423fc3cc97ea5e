package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-commerce-chat-be/internal/config"
	"ai-commerce-chat-be/internal/constant"
	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/repository/contract"
	"ai-commerce-chat-be/internal/repository/memory"
	"ai-commerce-chat-be/internal/repository/specification"
	"ai-commerce-chat-be/internal/repository/unitofwork"
	"ai-commerce-chat-be/pkg/embedding"
	"ai-commerce-chat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memState is the shared in-memory backing store for the fake unit of work.
type memState struct {
	mu          sync.Mutex
	store       *entity.Store
	sessions    map[uuid.UUID]*entity.ChatSession
	messages    []*entity.ChatMessage
	campaigns   []*entity.Campaign
	products    []*entity.Product
	usageEvents []*entity.UsageEvent
	adjustments []int

	// Failure injection.
	campaignErr      error
	messageCreateErr error
}

func newMemState(store *entity.Store) *memState {
	return &memState{
		store:    store,
		sessions: make(map[uuid.UUID]*entity.ChatSession),
	}
}

func (m *memState) messagesFor(sessionId uuid.UUID) []*entity.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.ChatMessage
	for _, msg := range m.messages {
		if msg.ChatSessionId == sessionId {
			out = append(out, msg)
		}
	}
	return out
}

type memFactory struct{ state *memState }

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{state: f.state}
}

type memUow struct{ state *memState }

func (u *memUow) Begin(ctx context.Context) error { return nil }
func (u *memUow) Commit() error                   { return nil }
func (u *memUow) Rollback() error                 { return nil }

func (u *memUow) StoreRepository() contract.StoreRepository {
	return &memStoreRepo{state: u.state}
}
func (u *memUow) ProductRepository() contract.ProductRepository {
	return &memProductRepo{state: u.state}
}
func (u *memUow) ProductEmbeddingRepository() contract.ProductEmbeddingRepository { return nil }
func (u *memUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &memSessionRepo{state: u.state}
}
func (u *memUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &memMessageRepo{state: u.state}
}
func (u *memUow) CampaignRepository() contract.CampaignRepository {
	return &memCampaignRepo{state: u.state}
}
func (u *memUow) OrderRepository() contract.OrderRepository             { return nil }
func (u *memUow) FaqRepository() contract.FaqRepository                 { return nil }
func (u *memUow) StorePolicyRepository() contract.StorePolicyRepository { return nil }
func (u *memUow) DiscountRepository() contract.DiscountRepository       { return nil }
func (u *memUow) UsageEventRepository() contract.UsageEventRepository {
	return &memUsageRepo{state: u.state}
}
func (u *memUow) CreditTopupRepository() contract.CreditTopupRepository { return nil }

type memStoreRepo struct{ state *memState }

func (r *memStoreRepo) Create(ctx context.Context, s *entity.Store) error { return nil }
func (r *memStoreRepo) Update(ctx context.Context, s *entity.Store) error { return nil }
func (r *memStoreRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Store, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return r.state.store, nil
}
func (r *memStoreRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Store, error) {
	return nil, nil
}
func (r *memStoreRepo) AdjustCredits(ctx context.Context, storeId uuid.UUID, delta int) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.store.AiCredits += delta
	r.state.adjustments = append(r.state.adjustments, delta)
	return nil
}

type memSessionRepo struct{ state *memState }

func (r *memSessionRepo) Create(ctx context.Context, s *entity.ChatSession) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.sessions[s.Id] = s
	return nil
}
func (r *memSessionRepo) Update(ctx context.Context, s *entity.ChatSession) error { return nil }
func (r *memSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.sessions, id)
	return nil
}
func (r *memSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, s := range r.state.sessions {
		if sessionMatches(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}
func (r *memSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	return nil, nil
}
func (r *memSessionRepo) SetHumanSupport(ctx context.Context, id uuid.UUID, enabled bool) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if s, ok := r.state.sessions[id]; ok {
		s.IsHumanSupport = enabled
	}
	return nil
}

func sessionMatches(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.ByGuestID:
			if s.GuestId == nil || *s.GuestId != v.GuestID {
				return false
			}
		case specification.ByCustomerEmail:
			if s.CustomerEmail == nil || *s.CustomerEmail != v.Email {
				return false
			}
		case specification.StoreOwnedBy:
			if s.StoreId != v.StoreID {
				return false
			}
		}
	}
	return true
}

type memMessageRepo struct{ state *memState }

func (r *memMessageRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.messageCreateErr != nil {
		return r.state.messageCreateErr
	}
	r.state.messages = append(r.state.messages, m)
	return nil
}
func (r *memMessageRepo) CreateBulk(ctx context.Context, msgs []*entity.ChatMessage) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.messages = append(r.state.messages, msgs...)
	return nil
}
func (r *memMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var sessionId uuid.UUID
	for _, spec := range specs {
		if v, ok := spec.(specification.ByChatSessionID); ok {
			sessionId = v.ChatSessionID
		}
	}
	return r.state.messagesFor(sessionId), nil
}
func (r *memMessageRepo) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var kept []*entity.ChatMessage
	for _, m := range r.state.messages {
		if m.ChatSessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.state.messages = kept
	return nil
}
func (r *memMessageRepo) FindRecent(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	msgs := r.state.messagesFor(sessionId)
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

type memCampaignRepo struct{ state *memState }

func (r *memCampaignRepo) Create(ctx context.Context, c *entity.Campaign) error { return nil }
func (r *memCampaignRepo) Update(ctx context.Context, c *entity.Campaign) error { return nil }
func (r *memCampaignRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (r *memCampaignRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Campaign, error) {
	return nil, nil
}
func (r *memCampaignRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Campaign, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.campaignErr != nil {
		return nil, r.state.campaignErr
	}
	return r.state.campaigns, nil
}

type memProductRepo struct{ state *memState }

func (r *memProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.products = append(r.state.products, p)
	return nil
}
func (r *memProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for i, existing := range r.state.products {
		if existing.Id == p.Id {
			r.state.products[i] = p
		}
	}
	return nil
}
func (r *memProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var kept []*entity.Product
	for _, p := range r.state.products {
		if p.Id != id {
			kept = append(kept, p)
		}
	}
	r.state.products = kept
	return nil
}
func (r *memProductRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, p := range r.state.products {
		if productMatches(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func productMatches(p *entity.Product, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if p.Id != v.ID {
				return false
			}
		case specification.ByHandle:
			if p.Handle != v.Handle {
				return false
			}
		case specification.StoreOwnedBy:
			if p.StoreId != v.StoreID {
				return false
			}
		}
	}
	return true
}
func (r *memProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var ids []uuid.UUID
	for _, spec := range specs {
		if v, ok := spec.(specification.ByIDs); ok {
			ids = v.IDs
		}
	}
	if ids == nil {
		return r.state.products, nil
	}
	var out []*entity.Product
	for _, p := range r.state.products {
		for _, id := range ids {
			if p.Id == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}
func (r *memProductRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.state.products)), nil
}
func (r *memProductRepo) FindNewest(ctx context.Context, storeId uuid.UUID, limit int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) FindBestSelling(ctx context.Context, storeId uuid.UUID, limit int) ([]*entity.ProductSales, error) {
	return nil, nil
}

type memUsageRepo struct{ state *memState }

func (r *memUsageRepo) Create(ctx context.Context, e *entity.UsageEvent) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.usageEvents = append(r.state.usageEvents, e)
	return nil
}
func (r *memUsageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageEvent, error) {
	return nil, nil
}
func (r *memUsageRepo) Summarize(ctx context.Context, storeId uuid.UUID, since time.Time) ([]*contract.UsageSummaryRow, error) {
	return nil, nil
}

// turnProvider replays canned responses; an error entry aborts the turn.
type turnProvider struct {
	responses []*llm.Response
	err       error
	calls     int
}

func (p *turnProvider) Chat(ctx context.Context, history []llm.Message, t []llm.Tool, opts ...llm.Option) (*llm.Response, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if p.calls > len(p.responses) {
		return &llm.Response{}, nil
	}
	return p.responses[p.calls-1], nil
}

func (p *turnProvider) ChatStream(ctx context.Context, history []llm.Message, t []llm.Tool, onDelta llm.StreamHandler, opts ...llm.Option) (*llm.Response, error) {
	resp, err := p.Chat(ctx, history, t)
	if err != nil {
		return nil, err
	}
	if resp.Content != "" && onDelta != nil {
		onDelta(resp.Content)
	}
	return resp, nil
}

func (p *turnProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return "", errors.New("unavailable")
}

type fixedEmbedder struct{}

func (fixedEmbedder) Generate(ctx context.Context, text, taskType string) (*embedding.Response, error) {
	return &embedding.Response{Embedding: embedding.ResponseEmbedding{Values: []float32{0.1, 0.2}}}, nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Credits: config.CreditConfig{AiResponseCost: 1, KeywordCost: 0},
		Ai:      config.AIConfig{GenericQueries: []string{"products"}},
	}
}

func newTestChatService(state *memState, provider llm.Provider) IChatService {
	return BuildChatService(
		testConfig(),
		&memFactory{state: state},
		memory.NewSessionRepository(),
		fixedEmbedder{},
		provider,
		nil,
		nil,
		nil,
		nil,
		noopLogger{},
	)
}

func testStore() *entity.Store {
	return &entity.Store{
		Id:        uuid.New(),
		Name:      "Testshop",
		AiCredits: 500,
		IsActive:  true,
	}
}

func TestSendMessageModelTurn(t *testing.T) {
	state := newMemState(testStore())
	provider := &turnProvider{responses: []*llm.Response{{Content: "Happy to help!"}}}
	svc := newTestChatService(state, provider)

	resp, err := svc.SendMessage(context.Background(), state.store, &dto.SendMessageRequest{
		Message: "do you ship internationally?",
		GuestId: "guest-1",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, constant.ResponseTypeAI, resp.ResponseType)
	assert.Equal(t, "Happy to help!", resp.AssistantMessage)
	assert.Equal(t, 499, resp.RemainingCredits)
	assert.Equal(t, []int{-1}, state.adjustments)

	require.Len(t, state.usageEvents, 1)
	assert.Equal(t, constant.UsageTypeAiResponse, state.usageEvents[0].RequestType)
	assert.Equal(t, 1, state.usageEvents[0].CreditsUsed)
	assert.True(t, state.usageEvents[0].WasSuccessful)

	msgs := state.messagesFor(resp.SessionId)
	require.Len(t, msgs, 2)
	assert.Equal(t, constant.ChatRoleUser, msgs[0].Role)
	assert.Equal(t, constant.ChatRoleAssistant, msgs[1].Role)
}

func TestSendMessageCreditsExhausted(t *testing.T) {
	store := testStore()
	store.AiCredits = 0
	state := newMemState(store)
	provider := &turnProvider{}
	svc := newTestChatService(state, provider)

	resp, err := svc.SendMessage(context.Background(), store, &dto.SendMessageRequest{
		Message: "hello",
		GuestId: "guest-1",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.ResponseTypeManualHandoff, resp.ResponseType)
	assert.Equal(t, constant.MsgCreditsExhausted, resp.AssistantMessage)
	assert.Zero(t, provider.calls)
	assert.Empty(t, state.adjustments)

	require.Len(t, state.usageEvents, 1)
	assert.Equal(t, constant.UsageTypeManualHandoff, state.usageEvents[0].RequestType)
	assert.Zero(t, state.usageEvents[0].CreditsUsed)

	// Both the user turn and the canned reply survive for the human agent.
	assert.Len(t, state.messagesFor(resp.SessionId), 2)
}

func TestSendMessageCampaignShortCircuit(t *testing.T) {
	state := newMemState(testStore())
	linked := &entity.Product{Id: uuid.New(), Title: "Wool Beanie", Handle: "wool-beanie", Price: "24.50"}
	state.products = append(state.products, linked)
	state.campaigns = append(state.campaigns, &entity.Campaign{
		Id:              uuid.New(),
		StoreId:         state.store.Id,
		TriggerKeywords: []string{"winter sale"},
		ResponseMessage: "Winter sale is live, check these out!",
		ProductIds:      []uuid.UUID{linked.Id},
		IsActive:        true,
	})
	provider := &turnProvider{}
	svc := newTestChatService(state, provider)

	resp, err := svc.SendMessage(context.Background(), state.store, &dto.SendMessageRequest{
		Message: "when does the winter sale start?",
		GuestId: "guest-1",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.ResponseTypeKeyword, resp.ResponseType)
	assert.Equal(t, "Winter sale is live, check these out!", resp.AssistantMessage)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Wool Beanie", resp.Products[0].Title)
	assert.Zero(t, provider.calls)

	// Keyword cost is zero by default: no deduction, one usage event.
	assert.Empty(t, state.adjustments)
	require.Len(t, state.usageEvents, 1)
	assert.Equal(t, constant.UsageTypeKeywordResponse, state.usageEvents[0].RequestType)
}

func TestSendMessageHumanHandoffMutesAssistant(t *testing.T) {
	state := newMemState(testStore())
	guestId := "guest-1"
	session := &entity.ChatSession{
		Id:             uuid.New(),
		StoreId:        state.store.Id,
		GuestId:        &guestId,
		IsGuest:        true,
		IsHumanSupport: true,
	}
	state.sessions[session.Id] = session

	provider := &turnProvider{}
	svc := newTestChatService(state, provider)

	resp, err := svc.SendMessage(context.Background(), state.store, &dto.SendMessageRequest{
		Message: "are you a real person?",
		GuestId: guestId,
	})
	require.NoError(t, err)

	assert.Equal(t, session.Id, resp.SessionId)
	assert.Equal(t, constant.ResponseTypeManualHandoff, resp.ResponseType)
	assert.Empty(t, resp.AssistantMessage)
	assert.Zero(t, provider.calls)

	// Only the user's message lands; no assistant turn is generated.
	msgs := state.messagesFor(session.Id)
	require.Len(t, msgs, 1)
	assert.Equal(t, constant.ChatRoleUser, msgs[0].Role)

	require.Len(t, state.usageEvents, 1)
	assert.Equal(t, constant.UsageTypeManualHandoff, state.usageEvents[0].RequestType)
}

func TestSendMessageModelFailure(t *testing.T) {
	state := newMemState(testStore())
	provider := &turnProvider{err: errors.New("upstream 503")}
	svc := newTestChatService(state, provider)

	resp, err := svc.SendMessage(context.Background(), state.store, &dto.SendMessageRequest{
		Message: "recommend a jacket",
		GuestId: "guest-1",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, constant.ResponseTypeSystemError, resp.ResponseType)
	assert.Equal(t, constant.MsgGenericError, resp.AssistantMessage)
	assert.Empty(t, state.adjustments)

	require.Len(t, state.usageEvents, 1)
	assert.Equal(t, constant.UsageTypeSystemError, state.usageEvents[0].RequestType)
	assert.False(t, state.usageEvents[0].WasSuccessful)
	assert.Zero(t, state.usageEvents[0].CreditsUsed)
}

func TestSendMessageCampaignLookupFailureStillAccounted(t *testing.T) {
	state := newMemState(testStore())
	state.campaignErr = errors.New("db gone away")
	provider := &turnProvider{}
	svc := newTestChatService(state, provider)

	_, err := svc.SendMessage(context.Background(), state.store, &dto.SendMessageRequest{
		Message: "hello",
		GuestId: "guest-1",
	})
	require.Error(t, err)
	assert.Zero(t, provider.calls)
	assert.Empty(t, state.adjustments)

	require.Len(t, state.usageEvents, 1)
	assert.Equal(t, constant.UsageTypeSystemError, state.usageEvents[0].RequestType)
	assert.False(t, state.usageEvents[0].WasSuccessful)
	assert.Zero(t, state.usageEvents[0].CreditsUsed)
}

func TestSendMessagePersistFailureStillAccounted(t *testing.T) {
	state := newMemState(testStore())
	state.messageCreateErr = errors.New("write timeout")
	provider := &turnProvider{}
	svc := newTestChatService(state, provider)

	_, err := svc.SendMessage(context.Background(), state.store, &dto.SendMessageRequest{
		Message: "hello",
		GuestId: "guest-1",
	})
	require.Error(t, err)
	assert.Zero(t, provider.calls)

	require.Len(t, state.usageEvents, 1)
	assert.Equal(t, constant.UsageTypeSystemError, state.usageEvents[0].RequestType)
	assert.False(t, state.usageEvents[0].WasSuccessful)
}

func TestSendMessageReusesGuestSession(t *testing.T) {
	state := newMemState(testStore())
	provider := &turnProvider{responses: []*llm.Response{
		{Content: "First answer"},
		{Content: "Second answer"},
	}}
	svc := newTestChatService(state, provider)

	first, err := svc.SendMessage(context.Background(), state.store, &dto.SendMessageRequest{
		Message: "hi",
		GuestId: "guest-7",
	})
	require.NoError(t, err)

	second, err := svc.SendMessage(context.Background(), state.store, &dto.SendMessageRequest{
		Message: "and shipping?",
		GuestId: "guest-7",
	})
	require.NoError(t, err)

	assert.Equal(t, first.SessionId, second.SessionId)
	assert.Len(t, state.sessions, 1)
	assert.Len(t, state.messagesFor(first.SessionId), 4)
}

func TestStreamMessageEmitsDeltas(t *testing.T) {
	state := newMemState(testStore())
	provider := &turnProvider{responses: []*llm.Response{{Content: "Streamed reply"}}}
	svc := newTestChatService(state, provider)

	var deltas []string
	resp, err := svc.StreamMessage(context.Background(), state.store, &dto.SendMessageRequest{
		Message: "hello there",
		GuestId: "guest-1",
	}, func(delta string) {
		deltas = append(deltas, delta)
	})
	require.NoError(t, err)

	assert.Equal(t, "Streamed reply", resp.AssistantMessage)
	assert.Equal(t, []string{"Streamed reply"}, deltas)
}

func TestGetHistoryScopedToStore(t *testing.T) {
	state := newMemState(testStore())
	provider := &turnProvider{responses: []*llm.Response{{Content: "noted"}}}
	svc := newTestChatService(state, provider)

	resp, err := svc.SendMessage(context.Background(), state.store, &dto.SendMessageRequest{
		Message: "remember me",
		GuestId: "guest-1",
	})
	require.NoError(t, err)

	history, err := svc.GetHistory(context.Background(), state.store, resp.SessionId)
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "remember me", history.Messages[0].Content)

	other := &entity.Store{Id: uuid.New()}
	_, err = svc.GetHistory(context.Background(), other, resp.SessionId)
	assert.ErrorIs(t, err, dto.ErrSessionNotFound)
}
