package mapper

import (
	"encoding/json"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/model"

	"gorm.io/datatypes"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}

	var lines []entity.OrderLine
	if len(o.LineItems) > 0 {
		_ = json.Unmarshal(o.LineItems, &lines)
	}

	return &entity.Order{
		Id:          o.Id,
		StoreId:     o.StoreId,
		OrderNumber: o.OrderNumber,
		Email:       o.Email,
		Status:      o.Status,
		TrackingURL: o.TrackingURL,
		Total:       o.Total,
		LineItems:   lines,
		CreatedAt:   o.CreatedAt,
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}

	var lines datatypes.JSON
	if len(o.LineItems) > 0 {
		raw, _ := json.Marshal(o.LineItems)
		lines = datatypes.JSON(raw)
	}

	return &model.Order{
		Id:          o.Id,
		StoreId:     o.StoreId,
		OrderNumber: o.OrderNumber,
		Email:       o.Email,
		Status:      o.Status,
		TrackingURL: o.TrackingURL,
		Total:       o.Total,
		LineItems:   lines,
		CreatedAt:   o.CreatedAt,
	}
}
