package service

import (
	"context"
	"time"

	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/pkg/logger"
	"ai-commerce-chat-be/internal/repository/specification"
	"ai-commerce-chat-be/internal/repository/unitofwork"
	"ai-commerce-chat-be/internal/websocket"

	"github.com/google/uuid"
)

type IStoreService interface {
	GetProfile(ctx context.Context, storeId uuid.UUID) (*dto.StoreProfileResponse, error)
	GetUsageStats(ctx context.Context, storeId uuid.UUID, from, to time.Time) (*dto.UsageStatsResponse, error)
	ResumeSession(ctx context.Context, storeId uuid.UUID, req *dto.ResumeSessionRequest) error
}

type storeService struct {
	uowFactory unitofwork.RepositoryFactory
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewStoreService(uowFactory unitofwork.RepositoryFactory, hub *websocket.Hub, log logger.ILogger) IStoreService {
	return &storeService{
		uowFactory: uowFactory,
		hub:        hub,
		logger:     log,
	}
}

func (s *storeService) GetProfile(ctx context.Context, storeId uuid.UUID) (*dto.StoreProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	store, err := uow.StoreRepository().FindOne(ctx, specification.ByID{ID: storeId})
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, dto.ErrStoreNotFound
	}

	return &dto.StoreProfileResponse{
		Id:           store.Id,
		Name:         store.Name,
		ShopDomain:   store.ShopDomain,
		Description:  store.Description,
		SupportEmail: store.SupportEmail,
		AiCredits:    store.AiCredits,
		IsActive:     store.IsActive,
	}, nil
}

func (s *storeService) GetUsageStats(ctx context.Context, storeId uuid.UUID, from, to time.Time) (*dto.UsageStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	store, err := uow.StoreRepository().FindOne(ctx, specification.ByID{ID: storeId})
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, dto.ErrStoreNotFound
	}

	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}

	rows, err := uow.UsageEventRepository().Summarize(ctx, storeId, from)
	if err != nil {
		return nil, err
	}

	resp := &dto.UsageStatsResponse{
		From:             from,
		To:               to,
		RemainingCredits: store.AiCredits,
		Rows:             make([]dto.UsageStatsRow, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, dto.UsageStatsRow{
			RequestType: r.RequestType,
			Count:       r.Events,
			Credits:     r.CreditsUsed,
			Failures:    r.Failures,
			AvgTimeMs:   int64(r.AvgLatencyMs),
		})
	}
	return resp, nil
}

// ResumeSession hands a session back from a human agent to the assistant.
func (s *storeService) ResumeSession(ctx context.Context, storeId uuid.UUID, req *dto.ResumeSessionRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.SessionId},
		specification.StoreOwnedBy{StoreID: storeId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return dto.ErrSessionNotFound
	}

	if err := uow.ChatSessionRepository().SetHumanSupport(ctx, session.Id, false); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.NotifyStore(storeId, websocket.AgentEvent{
			Type:      "session_resumed",
			SessionId: session.Id,
		})
	}

	s.logger.Info("StoreService", "Session returned to assistant", map[string]interface{}{
		"store_id":   storeId,
		"session_id": session.Id,
	})
	return nil
}
