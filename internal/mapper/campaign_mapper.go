package mapper

import (
	"encoding/json"
	"time"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CampaignMapper struct{}

func NewCampaignMapper() *CampaignMapper {
	return &CampaignMapper{}
}

func (m *CampaignMapper) ToEntity(c *model.Campaign) *entity.Campaign {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var keywords []string
	if len(c.TriggerKeywords) > 0 {
		_ = json.Unmarshal(c.TriggerKeywords, &keywords)
	}

	var productIds []uuid.UUID
	if len(c.ProductIds) > 0 {
		_ = json.Unmarshal(c.ProductIds, &productIds)
	}

	return &entity.Campaign{
		Id:              c.Id,
		StoreId:         c.StoreId,
		Name:            c.Name,
		TriggerKeywords: keywords,
		ResponseMessage: c.ResponseMessage,
		ProductIds:      productIds,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *CampaignMapper) ToModel(c *entity.Campaign) *model.Campaign {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	keywords, _ := json.Marshal(c.TriggerKeywords)

	var productIds datatypes.JSON
	if len(c.ProductIds) > 0 {
		raw, _ := json.Marshal(c.ProductIds)
		productIds = datatypes.JSON(raw)
	}

	return &model.Campaign{
		Id:              c.Id,
		StoreId:         c.StoreId,
		Name:            c.Name,
		TriggerKeywords: datatypes.JSON(keywords),
		ResponseMessage: c.ResponseMessage,
		ProductIds:      productIds,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *CampaignMapper) ToEntities(campaigns []*model.Campaign) []*entity.Campaign {
	entities := make([]*entity.Campaign, len(campaigns))
	for i, c := range campaigns {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
