package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ai-classroom-be/internal/constant"
	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/mapper"
	"ai-classroom-be/internal/pkg/logger"
	"ai-classroom-be/internal/repository/specification"
	"ai-classroom-be/internal/repository/unitofwork"
	"ai-classroom-be/pkg/generation"
	"ai-classroom-be/pkg/utils"
)

type ISynthesisService interface {
	// Report builds a Pulse Report from the space's recent interactions.
	// AI and storage failures degrade to a canned report; only a bad
	// request surfaces as an error.
	Report(ctx context.Context, req *dto.SynthesisRequest) (*dto.PulseReportResponse, error)

	// Voice answers a spoken teacher question grounded in recent logs.
	Voice(ctx context.Context, spaceId uuid.UUID, gem *dto.GemPayload, audio []byte, mimeType string) (*dto.VoiceResponse, error)
}

type synthesisService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   generation.Provider
	gemMapper  *mapper.GemMapper
	logger     logger.ILogger
}

func NewSynthesisService(
	uowFactory unitofwork.RepositoryFactory,
	provider generation.Provider,
	log logger.ILogger,
) ISynthesisService {
	return &synthesisService{
		uowFactory: uowFactory,
		provider:   provider,
		gemMapper:  mapper.NewGemMapper(),
		logger:     log,
	}
}

func (s *synthesisService) Report(ctx context.Context, req *dto.SynthesisRequest) (*dto.PulseReportResponse, error) {
	spaceId, err := uuid.Parse(req.SpaceId)
	if err != nil {
		return nil, fmt.Errorf("invalid space id: %w", err)
	}

	title, gem := s.resolveContext(ctx, spaceId, req.Gem)

	if s.provider == nil {
		return fallbackReport(), nil
	}

	transcript, err := s.transcript(ctx, spaceId, constant.SynthesisReportWindow, reportLine)
	if err != nil {
		s.logger.Warn("synthesis", "Interaction fetch failed, serving canned report", map[string]interface{}{
			"space_id": spaceId.String(),
			"error":    err.Error(),
		})
		return fallbackReport(), nil
	}

	var prompt string
	if len(transcript) > constant.MinTranscriptLength {
		prompt = fmt.Sprintf(constant.SynthesisRealDataPromptTemplate,
			title, gem.PersonaName, gem.SystemInstructions, transcript)
	} else {
		prompt = fmt.Sprintf(constant.SynthesisSimulationPromptTemplate,
			title, gem.SystemInstructions)
	}

	raw, err := s.provider.CompleteText(ctx, prompt)
	if err != nil {
		s.logger.Warn("synthesis", "Generation failed, serving canned report", map[string]interface{}{
			"space_id": spaceId.String(),
			"error":    err.Error(),
		})
		return fallbackReport(), nil
	}

	var report dto.PulseReportResponse
	if err := json.Unmarshal([]byte(utils.StripCodeFences(raw)), &report); err != nil {
		s.logger.Warn("synthesis", "Model returned malformed report JSON", map[string]interface{}{
			"space_id": spaceId.String(),
			"error":    err.Error(),
		})
		return fallbackReport(), nil
	}

	return &report, nil
}

func (s *synthesisService) Voice(ctx context.Context, spaceId uuid.UUID, gem *dto.GemPayload, audio []byte, mimeType string) (*dto.VoiceResponse, error) {
	title, resolved := s.resolveContext(ctx, spaceId, gem)

	transcript, err := s.transcript(ctx, spaceId, constant.SynthesisVoiceWindow, voiceLine)
	if err != nil {
		s.logger.Warn("synthesis", "Interaction fetch failed for voice, simulating context", map[string]interface{}{
			"space_id": spaceId.String(),
			"error":    err.Error(),
		})
		transcript = constant.VoiceMissingLogsNote
	}

	if mimeType == "" {
		mimeType = constant.DefaultAudioMimeType
	}

	if s.provider == nil {
		return &dto.VoiceResponse{Text: constant.VoiceFallbackResponse}, nil
	}

	prompt := fmt.Sprintf(constant.VoicePromptTemplate, title, resolved.PersonaName, transcript)

	text, err := s.provider.CompleteWithAudio(ctx, prompt, audio, mimeType)
	if err != nil {
		s.logger.Warn("synthesis", "Voice generation failed, serving canned answer", map[string]interface{}{
			"space_id": spaceId.String(),
			"error":    err.Error(),
		})
		return &dto.VoiceResponse{Text: constant.VoiceFallbackResponse}, nil
	}

	return &dto.VoiceResponse{Text: text}, nil
}

// resolveContext picks the space title and the effective Gem. A request
// Gem wins; otherwise the stored one is used. A missing space falls
// back to the default title so synthesis still runs.
func (s *synthesisService) resolveContext(ctx context.Context, spaceId uuid.UUID, override *dto.GemPayload) (string, entity.Gem) {
	title := constant.DefaultSpaceTitle
	var gem entity.Gem
	if override != nil {
		gem = s.gemMapper.ToEntity(*override)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	space, err := uow.SpaceRepository().FindOne(ctx, specification.ByID{ID: spaceId})
	if err == nil && space != nil {
		if space.Title != "" {
			title = space.Title
		}
		if override == nil {
			gem = space.Gem
		}
	}
	return title, gem
}

// transcript renders the most recent interactions in chronological
// order, one line per turn.
func (s *synthesisService) transcript(ctx context.Context, spaceId uuid.UUID, window int, line func(*entity.Interaction) string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	interactions, err := uow.InteractionRepository().FindAll(ctx,
		specification.BySpaceID{SpaceID: spaceId},
		specification.RecentFirst{},
		specification.Limit{N: window},
	)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(interactions))
	for i := len(interactions) - 1; i >= 0; i-- {
		lines = append(lines, line(interactions[i]))
	}
	return strings.Join(lines, "\n"), nil
}

func reportLine(in *entity.Interaction) string {
	return fmt.Sprintf("[User %s] (%s): %s", in.UserId, in.Role, in.Content)
}

func voiceLine(in *entity.Interaction) string {
	speaker := "AI TUTOR"
	if in.Role == constant.InteractionRoleUser {
		speaker = "STUDENT"
	}
	return fmt.Sprintf("%s: %s", speaker, in.Content)
}

func fallbackReport() *dto.PulseReportResponse {
	return &dto.PulseReportResponse{
		Summary:               constant.SimulatedReportPrefix + " The classroom is generally engaged, with most students grasping the core protagonist motivations. However, there is a divergence in understanding the historical context.",
		TopMisconception:      "Students are conflating the narrator's bias with objective truth.",
		Shoutouts:             []string{"Student A: Noted the color symbolism", "Student B: Questioned the narrator's reliability"},
		SuggestedIntervention: "Ask the class: 'How might Nick's own background color his description of Gatsby?'",
	}
}
