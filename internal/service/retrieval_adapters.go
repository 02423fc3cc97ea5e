package service

import (
	"context"
	"fmt"
	"time"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/repository/specification"
	"ai-commerce-chat-be/internal/repository/unitofwork"
	"ai-commerce-chat-be/pkg/embedding"
	"ai-commerce-chat-be/pkg/retrieval"

	"github.com/google/uuid"
)

// Adapters binding the retrieval engine's narrow interfaces to the
// embedding provider and the repositories. Each infra call carries its own
// deadline so a slow provider degrades one turn instead of hanging it.

type queryEmbedder struct {
	provider embedding.Provider
	timeout  time.Duration
}

func NewQueryEmbedder(provider embedding.Provider, timeout time.Duration) retrieval.Embedder {
	return &queryEmbedder{provider: provider, timeout: timeout}
}

func (e *queryEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	res, err := e.provider.Generate(ctx, text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	return res.Embedding.Values, nil
}

type pgVectorIndex struct {
	uowFactory unitofwork.RepositoryFactory
	timeout    time.Duration
}

func NewPgVectorIndex(uowFactory unitofwork.RepositoryFactory, timeout time.Duration) retrieval.VectorIndex {
	return &pgVectorIndex{uowFactory: uowFactory, timeout: timeout}
}

// Search runs the tenant-scoped cosine search and hydrates the matched
// products into candidates.
func (v *pgVectorIndex) Search(ctx context.Context, storeId string, vector []float32, limit int) ([]retrieval.Candidate, error) {
	sid, err := uuid.Parse(storeId)
	if err != nil {
		return nil, fmt.Errorf("invalid store id: %w", err)
	}

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	uow := v.uowFactory.NewUnitOfWork(ctx)

	scored, err := uow.ProductEmbeddingRepository().SearchSimilarWithScore(ctx, vector, limit, sid)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, nil
	}

	productIds := make([]uuid.UUID, 0, len(scored))
	similarity := make(map[uuid.UUID]float64, len(scored))
	for _, s := range scored {
		pid := s.Embedding.ProductId
		if _, dup := similarity[pid]; dup {
			continue
		}
		similarity[pid] = s.Similarity
		productIds = append(productIds, pid)
	}

	products, err := uow.ProductRepository().FindAll(ctx, specification.ByIDs{IDs: productIds})
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Product, len(products))
	for _, p := range products {
		byId[p.Id] = p
	}

	// Preserve similarity order from the index.
	candidates := make([]retrieval.Candidate, 0, len(productIds))
	for _, pid := range productIds {
		p, ok := byId[pid]
		if !ok {
			continue
		}
		c := productToCandidate(p)
		c.Score = similarity[pid]
		candidates = append(candidates, c)
	}
	return candidates, nil
}

type relationalCatalog struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRelationalCatalog(uowFactory unitofwork.RepositoryFactory) retrieval.Catalog {
	return &relationalCatalog{uowFactory: uowFactory}
}

func (c *relationalCatalog) Newest(ctx context.Context, storeId string, limit int) ([]retrieval.Candidate, error) {
	sid, err := uuid.Parse(storeId)
	if err != nil {
		return nil, fmt.Errorf("invalid store id: %w", err)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindNewest(ctx, sid, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]retrieval.Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, productToCandidate(p))
	}
	return candidates, nil
}

func (c *relationalCatalog) BestSelling(ctx context.Context, storeId string, limit int) ([]retrieval.Candidate, error) {
	sid, err := uuid.Parse(storeId)
	if err != nil {
		return nil, fmt.Errorf("invalid store id: %w", err)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	sales, err := uow.ProductRepository().FindBestSelling(ctx, sid, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]retrieval.Candidate, 0, len(sales))
	for _, s := range sales {
		candidate := productToCandidate(s.Product)
		candidate.Score = float64(s.TotalSold)
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func productToCandidate(p *entity.Product) retrieval.Candidate {
	return retrieval.Candidate{
		Id:          p.Id.String(),
		Title:       p.Title,
		Handle:      p.Handle,
		Price:       p.Price,
		Image:       p.ImageURL,
		Tags:        p.Tags,
		ProductType: p.ProductType,
		Description: p.Description,
	}
}
