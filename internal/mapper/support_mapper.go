package mapper

import (
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/model"
)

type SupportMapper struct{}

func NewSupportMapper() *SupportMapper {
	return &SupportMapper{}
}

func (m *SupportMapper) FaqToEntity(f *model.Faq) *entity.Faq {
	if f == nil {
		return nil
	}
	return &entity.Faq{
		Id:       f.Id,
		StoreId:  f.StoreId,
		Question: f.Question,
		Answer:   f.Answer,
	}
}

func (m *SupportMapper) PolicyToEntity(p *model.StorePolicy) *entity.StorePolicy {
	if p == nil {
		return nil
	}
	return &entity.StorePolicy{
		Id:         p.Id,
		StoreId:    p.StoreId,
		PolicyType: p.PolicyType,
		Content:    p.Content,
	}
}

func (m *SupportMapper) DiscountToEntity(d *model.Discount) *entity.Discount {
	if d == nil {
		return nil
	}
	return &entity.Discount{
		Id:          d.Id,
		StoreId:     d.StoreId,
		Code:        d.Code,
		Description: d.Description,
		Value:       d.Value,
		IsActive:    d.IsActive,
		ExpiresAt:   d.ExpiresAt,
	}
}

func (m *SupportMapper) UsageEventToModel(e *entity.UsageEvent) *model.UsageEvent {
	if e == nil {
		return nil
	}
	return &model.UsageEvent{
		Id:             e.Id,
		StoreId:        e.StoreId,
		ChatSessionId:  e.ChatSessionId,
		RequestType:    e.RequestType,
		CreditsUsed:    e.CreditsUsed,
		WasSuccessful:  e.WasSuccessful,
		ResponseTimeMs: e.ResponseTimeMs,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *SupportMapper) UsageEventToEntity(e *model.UsageEvent) *entity.UsageEvent {
	if e == nil {
		return nil
	}
	return &entity.UsageEvent{
		Id:             e.Id,
		StoreId:        e.StoreId,
		ChatSessionId:  e.ChatSessionId,
		RequestType:    e.RequestType,
		CreditsUsed:    e.CreditsUsed,
		WasSuccessful:  e.WasSuccessful,
		ResponseTimeMs: e.ResponseTimeMs,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *SupportMapper) TopupToEntity(t *model.CreditTopup) *entity.CreditTopup {
	if t == nil {
		return nil
	}
	return &entity.CreditTopup{
		Id:        t.Id,
		StoreId:   t.StoreId,
		OrderRef:  t.OrderRef,
		Credits:   t.Credits,
		Amount:    t.Amount,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}

func (m *SupportMapper) TopupToModel(t *entity.CreditTopup) *model.CreditTopup {
	if t == nil {
		return nil
	}
	return &model.CreditTopup{
		Id:        t.Id,
		StoreId:   t.StoreId,
		OrderRef:  t.OrderRef,
		Credits:   t.Credits,
		Amount:    t.Amount,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}
