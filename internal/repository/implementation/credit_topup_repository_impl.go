package implementation

import (
	"context"
	"errors"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/mapper"
	"ai-commerce-chat-be/internal/model"
	"ai-commerce-chat-be/internal/repository/contract"

	"gorm.io/gorm"
)

type CreditTopupRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SupportMapper
}

func NewCreditTopupRepository(db *gorm.DB) contract.CreditTopupRepository {
	return &CreditTopupRepositoryImpl{db: db, mapper: mapper.NewSupportMapper()}
}

func (r *CreditTopupRepositoryImpl) Create(ctx context.Context, topup *entity.CreditTopup) error {
	m := r.mapper.TopupToModel(topup)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*topup = *r.mapper.TopupToEntity(m)
	return nil
}

func (r *CreditTopupRepositoryImpl) Update(ctx context.Context, topup *entity.CreditTopup) error {
	m := r.mapper.TopupToModel(topup)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*topup = *r.mapper.TopupToEntity(m)
	return nil
}

func (r *CreditTopupRepositoryImpl) FindByOrderRef(ctx context.Context, orderRef string) (*entity.CreditTopup, error) {
	var m model.CreditTopup
	err := r.db.WithContext(ctx).Where("order_ref = ?", orderRef).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TopupToEntity(&m), nil
}
