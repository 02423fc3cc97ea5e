package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/repository/specification"
	"ai-commerce-chat-be/internal/repository/unitofwork"
	"ai-commerce-chat-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedProductMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for ProductId: %s", payload.ProductId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: payload.ProductId})
	if err != nil {
		log.Printf("[ERROR] Failed to get product %s: %v", payload.ProductId, err)
		msg.Nack()
		return
	}
	if product == nil {
		// Deleted between publish and consume. Nothing to index.
		log.Printf("[WARN] Product not found: %s", payload.ProductId)
		msg.Ack()
		return
	}

	document := buildProductDocument(product)

	res, err := cs.embeddingProvider.Generate(ctx, document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for product %s: %v", payload.ProductId, err)
		msg.Nack()
		return
	}
	if len(res.Embedding.Values) == 0 {
		log.Printf("[WARN] Empty embedding for product %s, skipping", payload.ProductId)
		msg.Ack()
		return
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ProductEmbeddingRepository().Upsert(ctx, &entity.ProductEmbedding{
		Id:             uuid.New(),
		ProductId:      product.Id,
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		CreatedAt:      time.Now(),
	}); err != nil {
		log.Printf("[ERROR] Failed to upsert embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Product indexed: %s", payload.ProductId)
	msg.Ack()
}

// buildProductDocument flattens a product into the text that gets embedded.
// Products are small enough to index as a single document.
func buildProductDocument(p *entity.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n", p.Title)
	if p.ProductType != "" {
		fmt.Fprintf(&b, "Type: %s\n", p.ProductType)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	if p.Price != "" {
		fmt.Fprintf(&b, "Price: %s\n", p.Price)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Description)
	}
	return b.String()
}
