package utils

import (
	"regexp"
	"strings"
)

// simulationMarker matches internal bookkeeping markers such as
// "[SIMULATED] " or "[SIMULATED FALLBACK] " that older fallback paths
// prepended to canned replies. The model was observed echoing them back
// from conversation history, so both history and fresh output are
// scrubbed before anything reaches the student-facing transcript.
var simulationMarker = regexp.MustCompile(`\[SIMULATED[^\]]*\] ?`)

// StripSimulationMarker removes internal bookkeeping markers from text.
func StripSimulationMarker(s string) string {
	return simulationMarker.ReplaceAllString(s, "")
}

// StripCodeFences unwraps a model response from markdown code fences so
// the payload can be fed to a JSON decoder.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
