package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-commerce-chat-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const fanoutChannel = "agent_desk_events"

// AgentEvent is one message pushed to a store's agent desk: a handoff
// alert or a live transcript update.
type AgentEvent struct {
	Type      string      `json:"type"`
	SessionId uuid.UUID   `json:"session_id"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Hub fans agent-desk events out to the connected dashboard clients of a
// store. Redis pub/sub bridges instances so an agent connected to one
// replica still sees events produced on another.
type Hub struct {
	// Connected agents per store (a store can have several agents online).
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.StoreID] = append(h.clients[client.StoreID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Agent connected", map[string]interface{}{"store_id": client.StoreID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.StoreID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.StoreID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.StoreID]) == 0 {
					delete(h.clients, client.StoreID)
					h.logger.Info("Hub", "Last agent disconnected", map[string]interface{}{"store_id": client.StoreID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyStore delivers an event to every agent of a store, locally and via
// Redis for other instances.
func (h *Hub) NotifyStore(storeId uuid.UUID, event AgentEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal agent event", map[string]interface{}{"error": err.Error()})
		return
	}

	h.sendLocal(storeId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_store_id": storeId.String(),
			"message":         json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), fanoutChannel, payload)
	}
}

func (h *Hub) sendLocal(storeId uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[storeId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Agent send buffer full, dropping", map[string]interface{}{"store_id": storeId})
			close(client.Send)
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, fanoutChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetStoreID string          `json:"target_store_id"`
			Message       json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		storeId, err := uuid.Parse(payload.TargetStoreID)
		if err != nil {
			continue
		}
		h.sendLocal(storeId, payload.Message)
	}
}
