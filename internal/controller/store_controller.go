package controller

import (
	"time"

	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/pkg/serverutils"
	"ai-commerce-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IStoreController interface {
	RegisterRoutes(r fiber.Router)
	Profile(ctx *fiber.Ctx) error
	UsageStats(ctx *fiber.Ctx) error
	ResumeSession(ctx *fiber.Ctx) error
}

type storeController struct {
	storeService service.IStoreService
}

func NewStoreController(storeService service.IStoreService) IStoreController {
	return &storeController{storeService: storeService}
}

func (c *storeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/store/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("profile", c.Profile)
	h.Get("usage", c.UsageStats)
	h.Post("session/resume", c.ResumeSession)
}

func (c *storeController) Profile(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))

	res, err := c.storeService.GetProfile(ctx.Context(), storeId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *storeController) UsageStats(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))

	var from, to time.Time
	if v := ctx.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid from timestamp")
		}
		from = parsed
	}
	if v := ctx.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid to timestamp")
		}
		to = parsed
	}

	res, err := c.storeService.GetUsageStats(ctx.Context(), storeId, from, to)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get usage stats", res))
}

func (c *storeController) ResumeSession(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))

	var req dto.ResumeSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.storeService.ResumeSession(ctx.Context(), storeId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success resume session", fiber.Map{}))
}
