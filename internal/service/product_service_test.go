package service

import (
	"context"
	"testing"

	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturePublisher records which products get queued for embedding.
type capturePublisher struct {
	published []uuid.UUID
	err       error
}

func (p *capturePublisher) PublishEmbedProduct(ctx context.Context, productId uuid.UUID) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, productId)
	return nil
}

func TestUpsertCreatesAndQueuesEmbedding(t *testing.T) {
	state := newMemState(testStore())
	publisher := &capturePublisher{}
	svc := NewProductService(&memFactory{state: state}, publisher, noopLogger{})

	resp, err := svc.Upsert(context.Background(), state.store.Id, &dto.UpsertProductRequest{
		Title:  "Trail Sneakers",
		Handle: "trail-sneakers",
		Price:  "$85.00",
	})
	require.NoError(t, err)

	require.Len(t, state.products, 1)
	assert.Equal(t, "trail-sneakers", state.products[0].Handle)
	assert.Equal(t, state.store.Id, state.products[0].StoreId)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, resp.Id, publisher.published[0])
}

func TestUpsertByHandleReplacesExisting(t *testing.T) {
	state := newMemState(testStore())
	existing := &entity.Product{
		Id:      uuid.New(),
		StoreId: state.store.Id,
		Title:   "Trail Sneakers",
		Handle:  "trail-sneakers",
		Price:   "$85.00",
	}
	state.products = append(state.products, existing)

	publisher := &capturePublisher{}
	svc := NewProductService(&memFactory{state: state}, publisher, noopLogger{})

	resp, err := svc.Upsert(context.Background(), state.store.Id, &dto.UpsertProductRequest{
		Title:  "Trail Sneakers v2",
		Handle: "trail-sneakers",
		Price:  "$95.00",
	})
	require.NoError(t, err)

	// Same identity, updated fields, re-queued for embedding.
	assert.Equal(t, existing.Id, resp.Id)
	require.Len(t, state.products, 1)
	assert.Equal(t, "Trail Sneakers v2", state.products[0].Title)
	assert.Equal(t, []uuid.UUID{existing.Id}, publisher.published)
}

func TestReindexQueuesEveryProduct(t *testing.T) {
	state := newMemState(testStore())
	p1 := &entity.Product{Id: uuid.New(), StoreId: state.store.Id, Handle: "one"}
	p2 := &entity.Product{Id: uuid.New(), StoreId: state.store.Id, Handle: "two"}
	state.products = append(state.products, p1, p2)

	publisher := &capturePublisher{}
	svc := NewProductService(&memFactory{state: state}, publisher, noopLogger{})

	queued, err := svc.Reindex(context.Background(), state.store.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, queued)
	assert.ElementsMatch(t, []uuid.UUID{p1.Id, p2.Id}, publisher.published)
}
