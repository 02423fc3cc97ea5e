package service

import (
	"context"
	"encoding/json"

	"ai-commerce-chat-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPublisherService interface {
	PublishEmbedProduct(ctx context.Context, productId uuid.UUID) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

// PublishEmbedProduct enqueues a product for asynchronous (re)embedding so
// catalog writes return without waiting on the embedding provider.
func (p *publisherService) PublishEmbedProduct(ctx context.Context, productId uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishEmbedProductMessage{ProductId: productId})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topicName, msg)
}
