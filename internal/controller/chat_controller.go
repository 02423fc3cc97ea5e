package controller

import (
	"bufio"
	"encoding/json"
	"fmt"

	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/pkg/serverutils"
	"ai-commerce-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	StreamMessage(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	storeLookup serverutils.StoreLookup
}

func NewChatController(chatService service.IChatService, storeLookup serverutils.StoreLookup) IChatController {
	return &chatController{
		chatService: chatService,
		storeLookup: storeLookup,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.StoreKeyMiddleware(c.storeLookup))
	h.Post("message", c.SendMessage)
	h.Post("message/stream", c.StreamMessage)
	h.Post("session", c.CreateSession)
	h.Get("history/:session_id", c.GetHistory)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	store := ctx.Locals("store").(*entity.Store)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), store, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

// StreamMessage runs the same turn pipeline but delivers the assistant text
// as server-sent events: token deltas, then one final metadata event.
func (c *chatController) StreamMessage(ctx *fiber.Ctx) error {
	store := ctx.Locals("store").(*entity.Store)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	// The fiber context is recycled once the handler returns; everything the
	// stream writer needs must be captured before that.
	reqCtx := ctx.UserContext()
	svc := c.chatService

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		onDelta := func(delta string) {
			writeSSE(w, "delta", map[string]string{"text": delta})
		}

		res, err := svc.StreamMessage(reqCtx, store, &req, onDelta)
		if err != nil {
			writeSSE(w, "error", map[string]string{"message": "request failed"})
			return
		}

		writeSSE(w, "done", dto.StreamMetadata{
			SessionId:        res.SessionId,
			ResponseType:     res.ResponseType,
			Products:         res.Products,
			RemainingCredits: res.RemainingCredits,
			Performance:      res.Performance,
		})
	}))
	return nil
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	store := ctx.Locals("store").(*entity.Store)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), store, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	store := ctx.Locals("store").(*entity.Store)

	sessionId, err := uuid.Parse(ctx.Params("session_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.chatService.GetHistory(ctx.Context(), store, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func writeSSE(w *bufio.Writer, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	w.Flush()
}
