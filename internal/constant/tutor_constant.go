package constant

const (
	InteractionRoleUser      = "user"
	InteractionRoleAssistant = "assistant"

	// Wire role used by the generation API for assistant turns.
	GenerationRoleModel = "model"

	TagTypeConceptMastery  = "CONCEPT_MASTERY"
	TagTypeEmotionalState  = "EMOTIONAL_STATE"
	TagTypeRubricProgress  = "RUBRIC_PROGRESS"

	StudentStatusOnTrack = "On Track"
	StudentStatusStuck   = "Stuck"
	StudentStatusIdle    = "Idle"

	// Internal bookkeeping marker. Must never reach the student-facing
	// transcript; see utils.StripSimulationMarker.
	SimulationMarkerPrefix = "[SIMULATED"

	SimulationModeSummaryPrefix = "[SIMULATION MODE] No student data detected."
	SimulatedReportPrefix       = "SIMULATED REPORT:"

	// Window sizes for reading back stored interactions.
	ChatHistoryWindow      = 10
	SynthesisReportWindow  = 100
	SynthesisVoiceWindow   = 30

	// A transcript at or below this length is treated as "no usable data"
	// and synthesis switches to the simulation prompt.
	MinTranscriptLength = 5

	DefaultAudioMimeType = "audio/webm"

	// Default Gem assigned to a newly created Space.
	DefaultPersonaName        = "The Literary Analyst"
	DefaultSystemInstructions = "You are a Socratic tutor. Guide the student to find evidence."
	DefaultOpeningLine        = "Welcome. What is your initial reading of the text?"
)

// DefaultGemConstraints is copied into every new Space's Gem.
var DefaultGemConstraints = []string{"No full essays", "Require evidence"}

// ChatFallbackResponses is the canned Socratic rotation used when the
// generation service is unreachable or misconfigured. The caller cannot
// distinguish these from a real generation.
var ChatFallbackResponses = []string{
	"That is an interesting point. Can you find a specific quote to back that up?",
	"I see where you are going. But what does the text say specifically about this?",
	"Hold on. Let's look closer at the second paragraph. What do you see there?",
}

// VoiceFallbackResponse is returned when the multimodal call fails.
const VoiceFallbackResponse = "I am having trouble processing your audio (likely missing API Key). However, based on the class logs, I suggest asking the student about the 'green light' metaphor again."

// VoiceMissingLogsNote replaces the transcript when the store read fails;
// the request still proceeds with this note as grounding context.
const VoiceMissingLogsNote = "([System: Could not fetch live logs. Simulate based on persona.])"
