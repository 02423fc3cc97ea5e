package controller

import (
	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/pkg/serverutils"
	"ai-commerce-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICampaignController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type campaignController struct {
	campaignService service.ICampaignService
}

func NewCampaignController(campaignService service.ICampaignService) ICampaignController {
	return &campaignController{campaignService: campaignService}
}

func (c *campaignController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/campaign/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *campaignController) Create(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))

	var req dto.CreateCampaignRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.campaignService.Create(ctx.Context(), storeId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create campaign", res))
}

func (c *campaignController) Update(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))
	campaignId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid campaign id")
	}

	var req dto.UpdateCampaignRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.campaignService.Update(ctx.Context(), storeId, campaignId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update campaign", res))
}

func (c *campaignController) Delete(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))
	campaignId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid campaign id")
	}

	if err := c.campaignService.Delete(ctx.Context(), storeId, campaignId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete campaign", fiber.Map{}))
}

func (c *campaignController) Show(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))
	campaignId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid campaign id")
	}

	res, err := c.campaignService.GetById(ctx.Context(), storeId, campaignId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get campaign", res))
}

func (c *campaignController) List(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))

	res, err := c.campaignService.List(ctx.Context(), storeId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list campaigns", res))
}
