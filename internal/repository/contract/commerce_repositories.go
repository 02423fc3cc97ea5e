package contract

import (
	"context"
	"time"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
}

type FaqRepository interface {
	Create(ctx context.Context, faq *entity.Faq) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Faq, error)

	// SearchByText is a naive ILIKE match over question + answer used by the
	// search_faq tool.
	SearchByText(ctx context.Context, storeId uuid.UUID, query string, limit int) ([]*entity.Faq, error)
}

type StorePolicyRepository interface {
	Create(ctx context.Context, policy *entity.StorePolicy) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StorePolicy, error)
}

type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	FindActive(ctx context.Context, storeId uuid.UUID) ([]*entity.Discount, error)
}

// UsageSummaryRow aggregates usage events per request type for dashboards.
type UsageSummaryRow struct {
	RequestType  string
	Events       int64
	CreditsUsed  int64
	AvgLatencyMs float64
	Failures     int64
}

type UsageEventRepository interface {
	Create(ctx context.Context, event *entity.UsageEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageEvent, error)
	Summarize(ctx context.Context, storeId uuid.UUID, since time.Time) ([]*UsageSummaryRow, error)
}

type CreditTopupRepository interface {
	Create(ctx context.Context, topup *entity.CreditTopup) error
	Update(ctx context.Context, topup *entity.CreditTopup) error
	FindByOrderRef(ctx context.Context, orderRef string) (*entity.CreditTopup, error)
}
