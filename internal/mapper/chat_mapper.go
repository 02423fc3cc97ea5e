package mapper

import (
	"encoding/json"
	"time"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatSessionMapper struct{}

func NewChatSessionMapper() *ChatSessionMapper {
	return &ChatSessionMapper{}
}

func (m *ChatSessionMapper) ToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:             s.Id,
		StoreId:        s.StoreId,
		CustomerEmail:  s.CustomerEmail,
		GuestId:        s.GuestId,
		IsGuest:        s.IsGuest,
		IsHumanSupport: s.IsHumanSupport,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ChatSessionMapper) ToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:             s.Id,
		StoreId:        s.StoreId,
		CustomerEmail:  s.CustomerEmail,
		GuestId:        s.GuestId,
		IsGuest:        s.IsGuest,
		IsHumanSupport: s.IsHumanSupport,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var refs []entity.ProductRef
	if len(msg.RecommendedProducts) > 0 {
		_ = json.Unmarshal(msg.RecommendedProducts, &refs)
	}

	return &entity.ChatMessage{
		Id:                  msg.Id,
		ChatSessionId:       msg.ChatSessionId,
		Role:                msg.Role,
		Content:             msg.Content,
		RecommendedProducts: refs,
		CreatedAt:           msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var refs datatypes.JSON
	if len(msg.RecommendedProducts) > 0 {
		raw, _ := json.Marshal(msg.RecommendedProducts)
		refs = datatypes.JSON(raw)
	}

	return &model.ChatMessage{
		Id:                  msg.Id,
		ChatSessionId:       msg.ChatSessionId,
		Role:                msg.Role,
		Content:             msg.Content,
		RecommendedProducts: refs,
		CreatedAt:           msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
