package mapper

import (
	"encoding/json"
	"time"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var tags []string
	if len(p.Tags) > 0 {
		// Malformed tag payloads degrade to no tags, not an error
		_ = json.Unmarshal(p.Tags, &tags)
	}

	return &entity.Product{
		Id:          p.Id,
		StoreId:     p.StoreId,
		Title:       p.Title,
		Handle:      p.Handle,
		Description: p.Description,
		ProductType: p.ProductType,
		Tags:        tags,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	var tags datatypes.JSON
	if len(p.Tags) > 0 {
		raw, _ := json.Marshal(p.Tags)
		tags = datatypes.JSON(raw)
	}

	return &model.Product{
		Id:          p.Id,
		StoreId:     p.StoreId,
		Title:       p.Title,
		Handle:      p.Handle,
		Description: p.Description,
		ProductType: p.ProductType,
		Tags:        tags,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

type ProductEmbeddingMapper struct{}

func NewProductEmbeddingMapper() *ProductEmbeddingMapper {
	return &ProductEmbeddingMapper{}
}

func (m *ProductEmbeddingMapper) ToEntity(e *model.ProductEmbedding) *entity.ProductEmbedding {
	if e == nil {
		return nil
	}
	return &entity.ProductEmbedding{
		Id:             e.Id,
		ProductId:      e.ProductId,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *ProductEmbeddingMapper) ToModel(e *entity.ProductEmbedding) *model.ProductEmbedding {
	if e == nil {
		return nil
	}
	return &model.ProductEmbedding{
		Id:             e.Id,
		ProductId:      e.ProductId,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
	}
}
