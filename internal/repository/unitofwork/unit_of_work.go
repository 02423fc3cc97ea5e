package unitofwork

import (
	"context"

	"ai-commerce-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	StoreRepository() contract.StoreRepository
	ProductRepository() contract.ProductRepository
	ProductEmbeddingRepository() contract.ProductEmbeddingRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	CampaignRepository() contract.CampaignRepository
	OrderRepository() contract.OrderRepository
	FaqRepository() contract.FaqRepository
	StorePolicyRepository() contract.StorePolicyRepository
	DiscountRepository() contract.DiscountRepository
	UsageEventRepository() contract.UsageEventRepository
	CreditTopupRepository() contract.CreditTopupRepository
}
