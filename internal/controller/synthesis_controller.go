package controller

import (
	"encoding/json"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/pkg/serverutils"
	"ai-classroom-be/internal/service"
)

type ISynthesisController interface {
	RegisterRoutes(r fiber.Router)
	Report(ctx *fiber.Ctx) error
	Voice(ctx *fiber.Ctx) error
}

type synthesisController struct {
	synthesisService service.ISynthesisService
}

func NewSynthesisController(synthesisService service.ISynthesisService) ISynthesisController {
	return &synthesisController{
		synthesisService: synthesisService,
	}
}

func (c *synthesisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/synthesis/v1")
	h.Post("report", c.Report)
	h.Post("voice", c.Voice)
}

func (c *synthesisController) Report(ctx *fiber.Ctx) error {
	var req dto.SynthesisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.synthesisService.Report(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.JSON(res)
}

func (c *synthesisController) Voice(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing audio or space_id"))
	}

	spaceIdStr := ctx.FormValue("space_id")
	if spaceIdStr == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing audio or space_id"))
	}
	spaceId, err := uuid.Parse(spaceIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid space ID"))
	}

	var gem *dto.GemPayload
	if gemJson := ctx.FormValue("gem"); gemJson != "" {
		var parsed dto.GemPayload
		if err := json.Unmarshal([]byte(gemJson), &parsed); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid gem payload"))
		}
		gem = &parsed
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.synthesisService.Voice(ctx.Context(), spaceId, gem, audio, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
