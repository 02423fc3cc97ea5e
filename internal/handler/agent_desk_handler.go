package handler

import (
	"os"

	"ai-commerce-chat-be/internal/pkg/logger"
	internalWS "ai-commerce-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AgentDeskHandler upgrades dashboard connections to websockets so human
// agents see handoffs and live transcripts as they happen.
type AgentDeskHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewAgentDeskHandler(hub *internalWS.Hub, log logger.ILogger) *AgentDeskHandler {
	return &AgentDeskHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *AgentDeskHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on websocket handshakes, so the token
	// arrives as a query param; tooling may still use the header.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("AgentDeskHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	storeIdStr, ok := claims["store_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing store_id"})
	}
	storeId, err := uuid.Parse(storeIdStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid store ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("AgentDeskHandler", "Agent desk session started", map[string]interface{}{"store_id": storeId})
			internalWS.ServeWs(h.hub, conn, storeId)
			h.logger.Info("AgentDeskHandler", "Agent desk session ended", map[string]interface{}{"store_id": storeId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
