package controller

import (
	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/pkg/serverutils"
	"ai-commerce-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Topup(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{paymentService: paymentService}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment/v1")

	// Midtrans calls this without auth; the SHA512 signature is the gate.
	h.Post("midtrans/notification", c.Webhook)

	h.Post("topup", serverutils.JwtMiddleware, c.Topup)
}

func (c *paymentController) Topup(ctx *fiber.Ctx) error {
	storeId, _ := uuid.Parse(ctx.Locals("store_id").(string))

	var req dto.TopupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.paymentService.CreateTopup(ctx.Context(), storeId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create topup", res))
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.paymentService.HandleNotification(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"status": "ok"})
}
