package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/pkg/serverutils"
	"ai-classroom-be/internal/service"
)

type IInteractionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type interactionController struct {
	interactionService service.IInteractionService
}

func NewInteractionController(interactionService service.IInteractionService) IInteractionController {
	return &interactionController{
		interactionService: interactionService,
	}
}

func (c *interactionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interaction/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
}

func (c *interactionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateInteractionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interactionService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Interaction logged", res))
}

func (c *interactionController) List(ctx *fiber.Ctx) error {
	spaceId, err := uuid.Parse(ctx.Query("space_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid space ID"))
	}

	userId := ctx.Query("user_id")
	if userId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "user_id is required"))
	}

	res, err := c.interactionService.List(ctx.Context(), spaceId, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Interaction log", res))
}
