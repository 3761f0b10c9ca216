package dto

type SynthesisRequest struct {
	SpaceId string      `json:"space_id" validate:"required,uuid"`
	Gem     *GemPayload `json:"gem"`
}

// StudentBreakdown is one per-student row of a Pulse Report.
type StudentBreakdown struct {
	UserId      string `json:"user_id"`
	Name        string `json:"name,omitempty"`
	Status      string `json:"status"`
	LastThought string `json:"last_thought,omitempty"`
	NeedsHelp   bool   `json:"needs_help"`
}

// PulseReportResponse is ephemeral: synthesized on demand, never stored.
type PulseReportResponse struct {
	Summary               string             `json:"summary"`
	TopMisconception      string             `json:"top_misconception"`
	Shoutouts             []string           `json:"shoutouts"`
	SuggestedIntervention string             `json:"suggested_intervention"`
	StudentBreakdown      []StudentBreakdown `json:"student_breakdown,omitempty"`
}

type VoiceResponse struct {
	Text string `json:"text"`
}
