package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/mapper"
	"ai-classroom-be/internal/service"
)

type IAnalystController interface {
	RegisterRoutes(r fiber.Router)
	Tags(ctx *fiber.Ctx) error
}

type analystController struct {
	analystService service.IAnalystService
	gemMapper      *mapper.GemMapper
}

func NewAnalystController(analystService service.IAnalystService) IAnalystController {
	return &analystController{
		analystService: analystService,
		gemMapper:      mapper.NewGemMapper(),
	}
}

func (c *analystController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analyst/v1")
	h.Post("tags", c.Tags)
}

// Tags never returns an error shape. The worst a caller sees is an
// empty tag list with HTTP 200.
func (c *analystController) Tags(ctx *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.JSON(dto.AnalyzeResponse{Tags: []dto.TagPayload{}})
	}
	if req.LastInteraction.Content == "" {
		return ctx.JSON(dto.AnalyzeResponse{Tags: []dto.TagPayload{}})
	}

	var gem *entity.Gem
	if req.Gem != nil {
		g := c.gemMapper.ToEntity(*req.Gem)
		gem = &g
	}

	tags := c.analystService.Analyze(ctx.Context(), req.LastInteraction.Content, gem)

	payloads := make([]dto.TagPayload, 0, len(tags))
	for _, tag := range tags {
		payloads = append(payloads, dto.TagPayload{
			Type:       tag.Type,
			Value:      tag.Value,
			Confidence: tag.Confidence,
		})
	}

	return ctx.JSON(dto.AnalyzeResponse{Tags: payloads})
}
