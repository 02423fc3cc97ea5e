package mapper

import (
	"time"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/model"
)

type StoreMapper struct{}

func NewStoreMapper() *StoreMapper {
	return &StoreMapper{}
}

func (m *StoreMapper) ToEntity(s *model.Store) *entity.Store {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Store{
		Id:           s.Id,
		ShopDomain:   s.ShopDomain,
		Name:         s.Name,
		PublicKey:    s.PublicKey,
		SupportEmail: s.SupportEmail,
		Description:  s.Description,
		AiCredits:    s.AiCredits,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *StoreMapper) ToModel(s *entity.Store) *model.Store {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Store{
		Id:           s.Id,
		ShopDomain:   s.ShopDomain,
		Name:         s.Name,
		PublicKey:    s.PublicKey,
		SupportEmail: s.SupportEmail,
		Description:  s.Description,
		AiCredits:    s.AiCredits,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}
