package service

import (
	"context"
	"strings"

	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/repository/specification"
	"ai-commerce-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICampaignService interface {
	Create(ctx context.Context, storeId uuid.UUID, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error)
	Update(ctx context.Context, storeId, campaignId uuid.UUID, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error)
	Delete(ctx context.Context, storeId, campaignId uuid.UUID) error
	GetById(ctx context.Context, storeId, campaignId uuid.UUID) (*dto.CampaignResponse, error)
	List(ctx context.Context, storeId uuid.UUID) ([]dto.CampaignResponse, error)
}

type campaignService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCampaignService(uowFactory unitofwork.RepositoryFactory) ICampaignService {
	return &campaignService{uowFactory: uowFactory}
}

func (s *campaignService) Create(ctx context.Context, storeId uuid.UUID, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.verifyProducts(ctx, uow, storeId, req.ProductIds); err != nil {
		return nil, err
	}

	campaign := &entity.Campaign{
		Id:              uuid.New(),
		StoreId:         storeId,
		Name:            req.Name,
		TriggerKeywords: normalizeKeywords(req.TriggerKeywords),
		ResponseMessage: req.ResponseMessage,
		ProductIds:      req.ProductIds,
		IsActive:        req.IsActive,
	}
	if err := uow.CampaignRepository().Create(ctx, campaign); err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign), nil
}

func (s *campaignService) Update(ctx context.Context, storeId, campaignId uuid.UUID, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	campaign, err := s.findOwned(ctx, uow, storeId, campaignId)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.TriggerKeywords != nil {
		campaign.TriggerKeywords = normalizeKeywords(req.TriggerKeywords)
	}
	if req.ResponseMessage != nil {
		campaign.ResponseMessage = *req.ResponseMessage
	}
	if req.ProductIds != nil {
		if err := s.verifyProducts(ctx, uow, storeId, req.ProductIds); err != nil {
			return nil, err
		}
		campaign.ProductIds = req.ProductIds
	}
	if req.IsActive != nil {
		campaign.IsActive = *req.IsActive
	}

	if err := uow.CampaignRepository().Update(ctx, campaign); err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign), nil
}

func (s *campaignService) Delete(ctx context.Context, storeId, campaignId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwned(ctx, uow, storeId, campaignId); err != nil {
		return err
	}
	return uow.CampaignRepository().Delete(ctx, campaignId)
}

func (s *campaignService) GetById(ctx context.Context, storeId, campaignId uuid.UUID) (*dto.CampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	campaign, err := s.findOwned(ctx, uow, storeId, campaignId)
	if err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign), nil
}

func (s *campaignService) List(ctx context.Context, storeId uuid.UUID) ([]dto.CampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	campaigns, err := uow.CampaignRepository().FindAll(ctx,
		specification.StoreOwnedBy{StoreID: storeId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, *toCampaignResponse(c))
	}
	return out, nil
}

func (s *campaignService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, storeId, campaignId uuid.UUID) (*entity.Campaign, error) {
	campaign, err := uow.CampaignRepository().FindOne(ctx,
		specification.ByID{ID: campaignId},
		specification.StoreOwnedBy{StoreID: storeId},
	)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, dto.ErrCampaignNotFound
	}
	return campaign, nil
}

// verifyProducts rejects campaign product links pointing outside the store's
// own catalog.
func (s *campaignService) verifyProducts(ctx context.Context, uow unitofwork.UnitOfWork, storeId uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := uow.ProductRepository().Count(ctx,
		specification.ByIDs{IDs: ids},
		specification.StoreOwnedBy{StoreID: storeId},
	)
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return dto.ErrProductNotFound
	}
	return nil
}

// normalizeKeywords lowercases, trims and deduplicates trigger phrases so the
// matcher's fingerprinting and word-boundary compilation stay stable.
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func toCampaignResponse(c *entity.Campaign) *dto.CampaignResponse {
	return &dto.CampaignResponse{
		Id:              c.Id,
		Name:            c.Name,
		TriggerKeywords: c.TriggerKeywords,
		ResponseMessage: c.ResponseMessage,
		ProductIds:      c.ProductIds,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
