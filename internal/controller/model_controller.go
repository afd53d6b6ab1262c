package controller

import (
	"printmob-be/internal/dto"
	"printmob-be/internal/pkg/serverutils"
	"printmob-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IModelController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Purchase(ctx *fiber.Ctx) error
	Like(ctx *fiber.Ctx) error
	Unlike(ctx *fiber.Ctx) error
}

type modelController struct {
	modelService service.IModelService
}

func NewModelController(modelService service.IModelService) IModelController {
	return &modelController{modelService: modelService}
}

func (c *modelController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/model/v1")
	h.Get("", c.List)
	h.Get(":id", c.Show)

	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Post(":id/purchase", c.Purchase)
	h.Post(":id/like", c.Like)
	h.Delete(":id/like", c.Unlike)
}

func (c *modelController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateModelRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.modelService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create model", res))
}

func (c *modelController) List(ctx *fiber.Ctx) error {
	var req dto.ListModelsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.modelService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list models", res))
}

func (c *modelController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid model id")
	}

	res, err := c.modelService.GetByID(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get model", res))
}

func (c *modelController) Purchase(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid model id")
	}

	res, err := c.modelService.Purchase(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success purchase model", res))
}

func (c *modelController) Like(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid model id")
	}

	if err := c.modelService.Like(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Model liked", nil))
}

func (c *modelController) Unlike(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid model id")
	}

	if err := c.modelService.Unlike(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Model unliked", nil))
}
