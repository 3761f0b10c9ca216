package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-classroom-be/internal/constant"
	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/pkg/logger"
	"ai-classroom-be/pkg/generation"
	"ai-classroom-be/pkg/utils"
)

type IAnalystService interface {
	// Analyze classifies a student message into tags. It never fails:
	// any provider or parse problem degrades to the fixed placeholder
	// tag pair.
	Analyze(ctx context.Context, content string, gem *entity.Gem) []entity.Tag
}

type analystService struct {
	provider generation.Provider
	logger   logger.ILogger
}

func NewAnalystService(provider generation.Provider, log logger.ILogger) IAnalystService {
	return &analystService{
		provider: provider,
		logger:   log,
	}
}

// analystModelOutput is the strict JSON shape the prompt demands.
type analystModelOutput struct {
	Tags []entity.Tag `json:"tags"`
}

func (s *analystService) Analyze(ctx context.Context, content string, gem *entity.Gem) []entity.Tag {
	if s.provider == nil {
		return fallbackTags()
	}

	instructions := ""
	if gem != nil {
		instructions = gem.SystemInstructions
	}

	prompt := fmt.Sprintf(constant.AnalystPromptTemplate, content, instructions)

	raw, err := s.provider.CompleteText(ctx, prompt)
	if err != nil {
		s.logger.Warn("analyst", "Generation failed, using placeholder tags", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackTags()
	}

	var out analystModelOutput
	if err := json.Unmarshal([]byte(utils.StripCodeFences(raw)), &out); err != nil {
		s.logger.Warn("analyst", "Model returned malformed JSON, using placeholder tags", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackTags()
	}

	if len(out.Tags) == 0 {
		return fallbackTags()
	}
	return out.Tags
}

func fallbackTags() []entity.Tag {
	return []entity.Tag{
		{Type: constant.TagTypeConceptMastery, Value: "Emerging Analysis (Simulated)", Confidence: 0.8},
		{Type: constant.TagTypeEmotionalState, Value: "Curious", Confidence: 0.9},
	}
}
