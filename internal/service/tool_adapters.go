package service

import (
	"context"

	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/repository/specification"
	"ai-commerce-chat-be/internal/repository/unitofwork"
	agentsession "ai-commerce-chat-be/pkg/agent/session"

	"github.com/google/uuid"
)

// toolAdapters implements every collaborator interface of the tool catalog
// on top of the unit-of-work repositories.
type toolAdapters struct {
	uowFactory unitofwork.RepositoryFactory
}

func newToolAdapters(uowFactory unitofwork.RepositoryFactory) *toolAdapters {
	return &toolAdapters{uowFactory: uowFactory}
}

func (a *toolAdapters) SearchFaqs(ctx context.Context, storeId uuid.UUID, query string, limit int) ([]*entity.Faq, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.FaqRepository().SearchByText(ctx, storeId, query, limit)
}

func (a *toolAdapters) ActiveDiscounts(ctx context.Context, storeId uuid.UUID) ([]*entity.Discount, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.DiscountRepository().FindActive(ctx, storeId)
}

func (a *toolAdapters) Policies(ctx context.Context, storeId uuid.UUID) ([]*entity.StorePolicy, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.StorePolicyRepository().FindAll(ctx, specification.StoreOwnedBy{StoreID: storeId})
}

func (a *toolAdapters) Store(ctx context.Context, storeId uuid.UUID) (*entity.Store, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	store, err := uow.StoreRepository().FindOne(ctx, specification.ByID{ID: storeId})
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, dto.ErrStoreNotFound
	}
	return store, nil
}

func (a *toolAdapters) OrderByNumber(ctx context.Context, storeId uuid.UUID, orderNumber string) (*entity.Order, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.OrderRepository().FindOne(ctx,
		specification.StoreOwnedBy{StoreID: storeId},
		specification.ByOrderNumber{OrderNumber: orderNumber},
	)
}

func (a *toolAdapters) ProductByHandleOrTitle(ctx context.Context, storeId uuid.UUID, handleOrTitle string) (*entity.Product, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx,
		specification.StoreOwnedBy{StoreID: storeId},
		specification.ByHandle{Handle: handleOrTitle},
	)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return product, nil
	}

	return uow.ProductRepository().FindOne(ctx,
		specification.StoreOwnedBy{StoreID: storeId},
		specification.TitleLike{Title: handleOrTitle},
	)
}

func (a *toolAdapters) SetHumanSupport(ctx context.Context, sessionId uuid.UUID) error {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().SetHumanSupport(ctx, sessionId, true)
}

// sessionStoreAdapter implements the session manager's persistence surface.
type sessionStoreAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

var _ agentsession.Sessions = &sessionStoreAdapter{}

func newSessionStoreAdapter(uowFactory unitofwork.RepositoryFactory) *sessionStoreAdapter {
	return &sessionStoreAdapter{uowFactory: uowFactory}
}

func (a *sessionStoreAdapter) FindByGuestId(ctx context.Context, storeId uuid.UUID, guestId string) (*entity.ChatSession, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().FindOne(ctx,
		specification.StoreOwnedBy{StoreID: storeId},
		specification.ByGuestID{GuestID: guestId},
	)
}

func (a *sessionStoreAdapter) FindByCustomerEmail(ctx context.Context, storeId uuid.UUID, email string) (*entity.ChatSession, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().FindOne(ctx,
		specification.StoreOwnedBy{StoreID: storeId},
		specification.ByCustomerEmail{Email: email},
	)
}

func (a *sessionStoreAdapter) Create(ctx context.Context, session *entity.ChatSession) error {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().Create(ctx, session)
}

func (a *sessionStoreAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().Delete(ctx, id)
}

// messageStoreAdapter implements the session manager's message surface.
type messageStoreAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

var _ agentsession.Messages = &messageStoreAdapter{}

func newMessageStoreAdapter(uowFactory unitofwork.RepositoryFactory) *messageStoreAdapter {
	return &messageStoreAdapter{uowFactory: uowFactory}
}

func (a *messageStoreAdapter) FindAllBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
}

func (a *messageStoreAdapter) CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().CreateBulk(ctx, messages)
}

func (a *messageStoreAdapter) DeleteBySession(ctx context.Context, sessionId uuid.UUID) error {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId)
}

// creditBalanceAdapter feeds the credit gate with fresh balances.
type creditBalanceAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func newCreditBalanceAdapter(uowFactory unitofwork.RepositoryFactory) *creditBalanceAdapter {
	return &creditBalanceAdapter{uowFactory: uowFactory}
}

func (a *creditBalanceAdapter) CreditBalance(ctx context.Context, storeId uuid.UUID) (int, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	store, err := uow.StoreRepository().FindOne(ctx, specification.ByID{ID: storeId})
	if err != nil {
		return 0, err
	}
	if store == nil {
		return 0, dto.ErrStoreNotFound
	}
	return store.AiCredits, nil
}
