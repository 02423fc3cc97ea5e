package service

import (
	"context"
	"strings"

	"ai-commerce-chat-be/internal/pkg/logger"
	"ai-commerce-chat-be/internal/websocket"
	"ai-commerce-chat-be/pkg/events"
	pktNats "ai-commerce-chat-be/pkg/nats"

	"github.com/google/uuid"
)

// AgentDelivery pushes real-time updates to a store's connected agents.
// Implemented by the WebSocket hub.
type AgentDelivery interface {
	NotifyStore(storeId uuid.UUID, event websocket.AgentEvent)
}

// NotificationService bridges the durable event bus to the agent desk so
// dashboards opened on any replica see billing and usage updates produced
// elsewhere.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   AgentDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery AgentDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event bus connection, agent desk updates disabled", nil)
		return
	}
	err := s.subscriber.Subscribe("commerce.>", "agent-desk-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start event subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Listening to commerce.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	storeId, err := storeIdFrom(payload)
	if err != nil {
		s.logger.Warn("NotificationService", "Event without a usable store_id", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return nil
	}

	// Handoff alerts are pushed by the chat turn itself; replaying them
	// here would double-notify the desk.
	switch event.EventType() {
	case "CREDIT_TOPUP_SETTLED":
		s.deliver(storeId, websocket.AgentEvent{
			Type:    "credits_updated",
			Payload: payload,
		})
	case "USAGE_RECORDED":
		evt := websocket.AgentEvent{
			Type:    "usage_recorded",
			Payload: payload,
		}
		if sid, ok := payload["session_id"].(string); ok {
			if parsed, perr := uuid.Parse(sid); perr == nil {
				evt.SessionId = parsed
			}
		}
		s.deliver(storeId, evt)
	}
	return nil
}

func (s *NotificationService) deliver(storeId uuid.UUID, event websocket.AgentEvent) {
	if s.delivery == nil {
		return
	}
	s.delivery.NotifyStore(storeId, event)
}

func storeIdFrom(payload map[string]interface{}) (uuid.UUID, error) {
	raw, _ := payload["store_id"].(string)
	return uuid.Parse(strings.TrimSpace(raw))
}
