package controller

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/pkg/serverutils"
	"ai-classroom-be/internal/service"
)

type ISpaceController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateGem(ctx *fiber.Ctx) error
	ImportKnowledge(ctx *fiber.Ctx) error
}

type spaceController struct {
	spaceService    service.ISpaceService
	documentService service.IDocumentService
}

func NewSpaceController(spaceService service.ISpaceService, documentService service.IDocumentService) ISpaceController {
	return &spaceController{
		spaceService:    spaceService,
		documentService: documentService,
	}
}

func (c *spaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/space/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id/gem", c.UpdateGem)
	h.Post(":id/knowledge", c.ImportKnowledge)
}

func (c *spaceController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSpaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.spaceService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Space created", res))
}

func (c *spaceController) List(ctx *fiber.Ctx) error {
	teacherId := ctx.Query("teacher_id")
	if teacherId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "teacher_id is required"))
	}

	res, err := c.spaceService.List(ctx.Context(), teacherId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Teacher spaces", res))
}

func (c *spaceController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid space ID"))
	}

	res, err := c.spaceService.Show(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSpaceNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Space not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Space details", res))
}

func (c *spaceController) UpdateGem(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid space ID"))
	}

	var req dto.UpdateGemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req.Gem); err != nil {
		return err
	}

	if err := c.spaceService.UpdateGem(ctx.Context(), id, req.Gem); err != nil {
		if errors.Is(err, service.ErrSpaceNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Space not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Gem updated", nil))
}

func (c *spaceController) ImportKnowledge(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid space ID"))
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Document file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	doc, err := c.documentService.Extract(ctx.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}

	res, err := c.spaceService.AppendKnowledge(ctx.Context(), id, doc.Filename, doc.Text)
	if err != nil {
		if errors.Is(err, service.ErrSpaceNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Space not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Knowledge base updated", res))
}
