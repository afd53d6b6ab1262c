package controller

import (
	"printmob-be/internal/dto"
	"printmob-be/internal/pkg/serverutils"
	"printmob-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICampaignController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	RequestCancellation(ctx *fiber.Ctx) error
	ListPledges(ctx *fiber.Ctx) error
}

type campaignController struct {
	campaignService service.ICampaignService
	pledgeService   service.IPledgeService
}

func NewCampaignController(campaignService service.ICampaignService, pledgeService service.IPledgeService) ICampaignController {
	return &campaignController{
		campaignService: campaignService,
		pledgeService:   pledgeService,
	}
}

func (c *campaignController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/campaign/v1")
	h.Get("", c.List)
	h.Get(":id", c.Show)

	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Post(":id/cancel", c.RequestCancellation)
	h.Get(":id/pledges", c.ListPledges)
}

func (c *campaignController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateCampaignRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.campaignService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create campaign", res))
}

func (c *campaignController) List(ctx *fiber.Ctx) error {
	var req dto.ListCampaignsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.campaignService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list campaigns", res))
}

func (c *campaignController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid campaign id")
	}

	res, err := c.campaignService.GetByID(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get campaign", res))
}

func (c *campaignController) RequestCancellation(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid campaign id")
	}

	if err := c.campaignService.RequestCancellation(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Campaign cancellation scheduled", nil))
}

func (c *campaignController) ListPledges(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid campaign id")
	}

	res, err := c.pledgeService.ListByCampaign(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list pledges", res))
}
