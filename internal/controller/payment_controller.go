package controller

import (
	"printmob-be/internal/dto"
	"printmob-be/internal/pkg/serverutils"
	"printmob-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	HandleWebhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{paymentService: paymentService}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment/v1")
	// Signature-verified, not JWT: the caller is the payment gateway.
	h.Post("webhook", c.HandleWebhook)
}

func (c *paymentController) HandleWebhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.paymentService.HandleNotification(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("OK", nil))
}
