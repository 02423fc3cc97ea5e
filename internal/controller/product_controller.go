package controller

import (
	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/pkg/serverutils"
	"ai-commerce-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	Upsert(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
}

type productController struct {
	productService service.IProductService
}

func NewProductController(productService service.IProductService) IProductController {
	return &productController{productService: productService}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/product/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upsert)
	h.Post("reindex", c.Reindex)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *productController) Upsert(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))

	var req dto.UpsertProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.productService.Upsert(ctx.Context(), storeId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upsert product", res))
}

func (c *productController) Delete(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))
	productId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	if err := c.productService.Delete(ctx.Context(), storeId, productId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete product", fiber.Map{}))
}

func (c *productController) Show(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))
	productId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	res, err := c.productService.GetById(ctx.Context(), storeId, productId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get product", res))
}

func (c *productController) List(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))

	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("page_size", 20)

	items, total, err := c.productService.List(ctx.Context(), storeId, page, pageSize)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list products", fiber.Map{
		"items": items,
		"total": total,
		"page":  page,
	}))
}

func (c *productController) Reindex(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))

	queued, err := c.productService.Reindex(ctx.Context(), storeId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success queue reindex", fiber.Map{
		"queued": queued,
	}))
}
