package implementation

import (
	"context"
	"time"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/mapper"
	"ai-commerce-chat-be/internal/model"
	"ai-commerce-chat-be/internal/repository/contract"
	"ai-commerce-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsageEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SupportMapper
}

func NewUsageEventRepository(db *gorm.DB) contract.UsageEventRepository {
	return &UsageEventRepositoryImpl{db: db, mapper: mapper.NewSupportMapper()}
}

func (r *UsageEventRepositoryImpl) Create(ctx context.Context, event *entity.UsageEvent) error {
	m := r.mapper.UsageEventToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.UsageEventToEntity(m)
	return nil
}

func (r *UsageEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageEvent, error) {
	var models []*model.UsageEvent
	if err := applySpecs(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UsageEvent, len(models))
	for i, m := range models {
		entities[i] = r.mapper.UsageEventToEntity(m)
	}
	return entities, nil
}

func (r *UsageEventRepositoryImpl) Summarize(ctx context.Context, storeId uuid.UUID, since time.Time) ([]*contract.UsageSummaryRow, error) {
	var rows []*contract.UsageSummaryRow
	err := r.db.WithContext(ctx).
		Table("usage_events").
		Select(`request_type,
			COUNT(*) as events,
			COALESCE(SUM(credits_used), 0) as credits_used,
			COALESCE(AVG(response_time_ms), 0) as avg_latency_ms,
			COUNT(*) FILTER (WHERE was_successful = false) as failures`).
		Where("store_id = ?", storeId).
		Where("created_at >= ?", since).
		Group("request_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
