package service

import (
	"context"

	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/pkg/logger"
	"ai-commerce-chat-be/internal/repository/specification"
	"ai-commerce-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProductService interface {
	Upsert(ctx context.Context, storeId uuid.UUID, req *dto.UpsertProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, storeId, productId uuid.UUID) error
	GetById(ctx context.Context, storeId, productId uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, storeId uuid.UUID, page, pageSize int) ([]dto.ProductResponse, int64, error)
	Reindex(ctx context.Context, storeId uuid.UUID) (int, error)
}

type productService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewProductService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, log logger.ILogger) IProductService {
	return &productService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// Upsert creates or replaces a product keyed by its handle, then queues it
// for embedding. Re-syncing a storefront feed hits this repeatedly, so the
// handle is the identity, not the id.
func (s *productService) Upsert(ctx context.Context, storeId uuid.UUID, req *dto.UpsertProductRequest) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ProductRepository().FindOne(ctx,
		specification.StoreOwnedBy{StoreID: storeId},
		specification.ByHandle{Handle: req.Handle},
	)
	if err != nil {
		return nil, err
	}

	product := existing
	if product == nil {
		product = &entity.Product{
			Id:      uuid.New(),
			StoreId: storeId,
			Handle:  req.Handle,
		}
	}
	product.Title = req.Title
	product.Description = req.Description
	product.ProductType = req.ProductType
	product.Tags = req.Tags
	product.Price = req.Price
	product.ImageURL = req.ImageURL

	if existing == nil {
		err = uow.ProductRepository().Create(ctx, product)
	} else {
		err = uow.ProductRepository().Update(ctx, product)
	}
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishEmbedProduct(ctx, product.Id); err != nil {
		s.logger.Warn("ProductService", "Embed enqueue failed", map[string]interface{}{
			"product_id": product.Id,
			"error":      err.Error(),
		})
	}

	return toProductResponse(product), nil
}

func (s *productService) Delete(ctx context.Context, storeId, productId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := s.findOwned(ctx, uow, storeId, productId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ProductEmbeddingRepository().DeleteByProductId(ctx, product.Id); err != nil {
		return err
	}
	if err := uow.ProductRepository().Delete(ctx, product.Id); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *productService) GetById(ctx context.Context, storeId, productId uuid.UUID) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := s.findOwned(ctx, uow, storeId, productId)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (s *productService) List(ctx context.Context, storeId uuid.UUID, page, pageSize int) ([]dto.ProductResponse, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total, err := uow.ProductRepository().Count(ctx, specification.StoreOwnedBy{StoreID: storeId})
	if err != nil {
		return nil, 0, err
	}

	products, err := uow.ProductRepository().FindAll(ctx,
		specification.StoreOwnedBy{StoreID: storeId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, total, nil
}

// Reindex queues every product of the store for re-embedding. Used after
// changing the embedding model or fixing a bad sync.
func (s *productService) Reindex(ctx context.Context, storeId uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	products, err := uow.ProductRepository().FindAll(ctx, specification.StoreOwnedBy{StoreID: storeId})
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, p := range products {
		if err := s.publisher.PublishEmbedProduct(ctx, p.Id); err != nil {
			s.logger.Warn("ProductService", "Embed enqueue failed", map[string]interface{}{
				"product_id": p.Id,
				"error":      err.Error(),
			})
			continue
		}
		queued++
	}
	return queued, nil
}

func (s *productService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, storeId, productId uuid.UUID) (*entity.Product, error) {
	product, err := uow.ProductRepository().FindOne(ctx,
		specification.ByID{ID: productId},
		specification.StoreOwnedBy{StoreID: storeId},
	)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, dto.ErrProductNotFound
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Id:          p.Id,
		Title:       p.Title,
		Handle:      p.Handle,
		Description: p.Description,
		ProductType: p.ProductType,
		Tags:        p.Tags,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
