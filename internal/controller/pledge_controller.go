package controller

import (
	"printmob-be/internal/dto"
	"printmob-be/internal/pkg/serverutils"
	"printmob-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPledgeController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	CreateWithPayment(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
}

type pledgeController struct {
	pledgeService service.IPledgeService
}

func NewPledgeController(pledgeService service.IPledgeService) IPledgeController {
	return &pledgeController{pledgeService: pledgeService}
}

func (c *pledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/pledge/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Post("with-payment", c.CreateWithPayment)
	h.Delete(":id", c.Cancel)
	h.Get("mine", c.ListMine)
}

func (c *pledgeController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreatePledgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.pledgeService.CreatePledge(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create pledge", res))
}

func (c *pledgeController) CreateWithPayment(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreatePledgeWithPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.pledgeService.CreatePledgeWithPayment(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create pledge", res))
}

func (c *pledgeController) Cancel(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid pledge id")
	}

	if err := c.pledgeService.CancelPledge(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Pledge cancelled", nil))
}

func (c *pledgeController) ListMine(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.pledgeService.ListByBuyer(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list pledges", res))
}
