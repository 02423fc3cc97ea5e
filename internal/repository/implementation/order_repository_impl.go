package implementation

import (
	"context"
	"errors"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/mapper"
	"ai-commerce-chat-be/internal/model"
	"ai-commerce-chat-be/internal/repository/contract"
	"ai-commerce-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &OrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrderMapper(),
	}
}

func (r *OrderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create stores the order and mirrors its line items into the flattened
// order_line_items table that backs best-selling aggregation.
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.ToEntity(m)

	if len(order.LineItems) == 0 {
		return nil
	}
	lines := make([]*model.OrderLineItem, len(order.LineItems))
	for i, li := range order.LineItems {
		lines[i] = &model.OrderLineItem{
			Id:        uuid.New(),
			OrderId:   order.Id,
			StoreId:   order.StoreId,
			ProductId: li.ProductId,
			Quantity:  li.Quantity,
		}
	}
	return r.db.WithContext(ctx).Create(lines).Error
}

func (r *OrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var models []*model.Order
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Order, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
