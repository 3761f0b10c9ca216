package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-classroom-be/internal/constant"
	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/entity"
)

func newSynthesisFixture(provider *fakeProvider) (ISynthesisService, *fakeUowFactory) {
	factory := newFakeUowFactory()
	// A nil *fakeProvider must become a nil interface, not a typed nil.
	if provider == nil {
		return NewSynthesisService(factory, nil, testLogger{}), factory
	}
	return NewSynthesisService(factory, provider, testLogger{}), factory
}

func TestSynthesisFallbackWhenGenerationUnavailable(t *testing.T) {
	svc, _ := newSynthesisFixture(nil)

	report, err := svc.Report(context.Background(), &dto.SynthesisRequest{SpaceId: uuid.NewString()})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(report.Summary, constant.SimulatedReportPrefix))
	assert.NotEmpty(t, report.TopMisconception)
	assert.NotEmpty(t, report.Shoutouts)
	assert.NotEmpty(t, report.SuggestedIntervention)
}

func TestSynthesisEmptySpaceUsesSimulationPrompt(t *testing.T) {
	provider := &fakeProvider{
		textFn: func(_ context.Context, prompt string) (string, error) {
			return `{"summary":"[SIMULATION MODE] No student data detected. The simulated class is warming up.","top_misconception":"None","shoutouts":[],"suggested_intervention":"Ask an opening question."}`, nil
		},
	}
	svc, _ := newSynthesisFixture(provider)

	report, err := svc.Report(context.Background(), &dto.SynthesisRequest{SpaceId: uuid.NewString()})
	require.NoError(t, err)

	assert.Contains(t, provider.lastPrompt, "SIMULATION MODE")
	assert.True(t, strings.HasPrefix(report.Summary, "[SIMULATION MODE] No student data detected."))
}

func TestSynthesisRealDataPromptCarriesTranscript(t *testing.T) {
	provider := &fakeProvider{
		textFn: func(_ context.Context, prompt string) (string, error) {
			return "```json\n{\"summary\":\"Students are engaged.\",\"top_misconception\":\"None\",\"shoutouts\":[\"student-1 found the irony\"],\"suggested_intervention\":\"Push on symbolism.\",\"student_breakdown\":[{\"user_id\":\"student-1\",\"status\":\"On Track\",\"needs_help\":false}]}\n```", nil
		},
	}
	svc, factory := newSynthesisFixture(provider)

	spaceId := uuid.New()
	now := time.Now()
	factory.uow.interactionRepo.findAllSet = []*entity.Interaction{
		{Id: uuid.New(), SpaceId: spaceId, UserId: "student-1", Role: constant.InteractionRoleAssistant, Content: "What evidence supports that?", CreatedAt: now},
		{Id: uuid.New(), SpaceId: spaceId, UserId: "student-1", Role: constant.InteractionRoleUser, Content: "The green light means hope", CreatedAt: now.Add(-time.Minute)},
	}

	report, err := svc.Report(context.Background(), &dto.SynthesisRequest{SpaceId: spaceId.String()})
	require.NoError(t, err)

	// Transcript lines are chronological and keyed by user id.
	idx1 := strings.Index(provider.lastPrompt, "[User student-1] (user): The green light means hope")
	idx2 := strings.Index(provider.lastPrompt, "[User student-1] (assistant): What evidence supports that?")
	require.GreaterOrEqual(t, idx1, 0)
	require.GreaterOrEqual(t, idx2, 0)
	assert.Less(t, idx1, idx2)

	assert.NotContains(t, report.Summary, "[SIMULATION MODE]")
	require.Len(t, report.StudentBreakdown, 1)
	assert.Equal(t, "student-1", report.StudentBreakdown[0].UserId)
	assert.Equal(t, constant.StudentStatusOnTrack, report.StudentBreakdown[0].Status)
}

func TestSynthesisFallbackOnMalformedModelOutput(t *testing.T) {
	provider := &fakeProvider{
		textFn: func(context.Context, string) (string, error) {
			return "not json at all", nil
		},
	}
	svc, _ := newSynthesisFixture(provider)

	report, err := svc.Report(context.Background(), &dto.SynthesisRequest{SpaceId: uuid.NewString()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report.Summary, constant.SimulatedReportPrefix))
}

func TestSynthesisFallbackOnStoreFailure(t *testing.T) {
	provider := &fakeProvider{}
	svc, factory := newSynthesisFixture(provider)
	factory.uow.interactionRepo.findAllErr = errors.New("db down")

	report, err := svc.Report(context.Background(), &dto.SynthesisRequest{SpaceId: uuid.NewString()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report.Summary, constant.SimulatedReportPrefix))
}

func TestSynthesisRejectsMalformedSpaceId(t *testing.T) {
	svc, _ := newSynthesisFixture(nil)

	_, err := svc.Report(context.Background(), &dto.SynthesisRequest{SpaceId: "not-a-uuid"})
	assert.Error(t, err)
}

func TestVoiceFallbackWhenGenerationUnavailable(t *testing.T) {
	svc, _ := newSynthesisFixture(nil)

	res, err := svc.Voice(context.Background(), uuid.New(), nil, []byte{1, 2, 3}, "")
	require.NoError(t, err)
	assert.Equal(t, constant.VoiceFallbackResponse, res.Text)
}

func TestVoiceGroundsPromptInRecentLogs(t *testing.T) {
	provider := &fakeProvider{
		audioFn: func(_ context.Context, prompt string, audio []byte, mime string) (string, error) {
			assert.Equal(t, []byte{1, 2, 3}, audio)
			assert.Equal(t, constant.DefaultAudioMimeType, mime)
			return "Two students are circling the same misreading.", nil
		},
	}
	svc, factory := newSynthesisFixture(provider)

	spaceId := uuid.New()
	factory.uow.interactionRepo.findAllSet = []*entity.Interaction{
		{Id: uuid.New(), SpaceId: spaceId, UserId: "student-1", Role: constant.InteractionRoleUser, Content: "I am stuck on the symbolism", CreatedAt: time.Now()},
	}

	res, err := svc.Voice(context.Background(), spaceId, &dto.GemPayload{PersonaName: "The Literary Analyst"}, []byte{1, 2, 3}, "")
	require.NoError(t, err)

	assert.Contains(t, provider.lastPrompt, "STUDENT: I am stuck on the symbolism")
	assert.Contains(t, provider.lastPrompt, "The Literary Analyst")
	assert.Equal(t, "Two students are circling the same misreading.", res.Text)
}

func TestVoiceDegradesToSimulatedLogsOnStoreFailure(t *testing.T) {
	provider := &fakeProvider{
		audioFn: func(_ context.Context, prompt string, _ []byte, _ string) (string, error) {
			return "answer", nil
		},
	}
	svc, factory := newSynthesisFixture(provider)
	factory.uow.interactionRepo.findAllErr = errors.New("db down")

	res, err := svc.Voice(context.Background(), uuid.New(), nil, []byte{9}, "audio/ogg")
	require.NoError(t, err)
	assert.Equal(t, "answer", res.Text)
	assert.Contains(t, provider.lastPrompt, constant.VoiceMissingLogsNote)
}

func TestVoiceFallbackOnProviderError(t *testing.T) {
	provider := &fakeProvider{
		audioFn: func(context.Context, string, []byte, string) (string, error) {
			return "", errors.New("no multimodal access")
		},
	}
	svc, _ := newSynthesisFixture(provider)

	res, err := svc.Voice(context.Background(), uuid.New(), nil, []byte{9}, "audio/webm")
	require.NoError(t, err)
	assert.Equal(t, constant.VoiceFallbackResponse, res.Text)
}
