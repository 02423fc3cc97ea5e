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

func applySpecs(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// --- FAQ ---

type FaqRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SupportMapper
}

func NewFaqRepository(db *gorm.DB) contract.FaqRepository {
	return &FaqRepositoryImpl{db: db, mapper: mapper.NewSupportMapper()}
}

func (r *FaqRepositoryImpl) Create(ctx context.Context, faq *entity.Faq) error {
	m := &model.Faq{Id: faq.Id, StoreId: faq.StoreId, Question: faq.Question, Answer: faq.Answer}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*faq = *r.mapper.FaqToEntity(m)
	return nil
}

func (r *FaqRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Faq, error) {
	var models []*model.Faq
	if err := applySpecs(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Faq, len(models))
	for i, m := range models {
		entities[i] = r.mapper.FaqToEntity(m)
	}
	return entities, nil
}

func (r *FaqRepositoryImpl) SearchByText(ctx context.Context, storeId uuid.UUID, query string, limit int) ([]*entity.Faq, error) {
	if limit <= 0 {
		limit = 3
	}
	var models []*model.Faq
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeId).
		Where("question ILIKE ? OR answer ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.Faq, len(models))
	for i, m := range models {
		entities[i] = r.mapper.FaqToEntity(m)
	}
	return entities, nil
}

// --- Store policies ---

type StorePolicyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SupportMapper
}

func NewStorePolicyRepository(db *gorm.DB) contract.StorePolicyRepository {
	return &StorePolicyRepositoryImpl{db: db, mapper: mapper.NewSupportMapper()}
}

func (r *StorePolicyRepositoryImpl) Create(ctx context.Context, policy *entity.StorePolicy) error {
	m := &model.StorePolicy{Id: policy.Id, StoreId: policy.StoreId, PolicyType: policy.PolicyType, Content: policy.Content}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*policy = *r.mapper.PolicyToEntity(m)
	return nil
}

func (r *StorePolicyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StorePolicy, error) {
	var models []*model.StorePolicy
	if err := applySpecs(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.StorePolicy, len(models))
	for i, m := range models {
		entities[i] = r.mapper.PolicyToEntity(m)
	}
	return entities, nil
}

// --- Discounts ---

type DiscountRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SupportMapper
}

func NewDiscountRepository(db *gorm.DB) contract.DiscountRepository {
	return &DiscountRepositoryImpl{db: db, mapper: mapper.NewSupportMapper()}
}

func (r *DiscountRepositoryImpl) Create(ctx context.Context, discount *entity.Discount) error {
	m := &model.Discount{
		Id:          discount.Id,
		StoreId:     discount.StoreId,
		Code:        discount.Code,
		Description: discount.Description,
		Value:       discount.Value,
		IsActive:    discount.IsActive,
		ExpiresAt:   discount.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*discount = *r.mapper.DiscountToEntity(m)
	return nil
}

func (r *DiscountRepositoryImpl) FindActive(ctx context.Context, storeId uuid.UUID) ([]*entity.Discount, error) {
	var models []*model.Discount
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeId).
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.Discount, len(models))
	for i, m := range models {
		entities[i] = r.mapper.DiscountToEntity(m)
	}
	return entities, nil
}
