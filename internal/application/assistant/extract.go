package assistant

import (
	"regexp"
	"strings"

	"github.com/culina/v2/internal/ports/outbound"
	"github.com/culina/v2/pkg/jsonfix"
)

var (
	openingFence = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	closingFence = regexp.MustCompile("\\s*```\\s*$")
	controlChars = regexp.MustCompile(`[\x00-\x1f]+`)
	firstObject  = regexp.MustCompile(`(?s)\{.*?\}`)
)

// extractCandidate walks the provider envelope down to the first part
// and returns a parsed JSON object, or nil when nothing usable is
// there. Structured function-call arguments bypass text parsing; text
// payloads are cleaned and handed to the tolerant parser, with a
// narrower first-object retry when the full payload will not parse.
func extractCandidate(env *outbound.AIEnvelope) map[string]any {
	if env == nil || len(env.Candidates) == 0 {
		return nil
	}
	content := env.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil
	}
	part := content.Parts[0]

	if part.FunctionCall != nil && part.FunctionCall.Args != nil {
		return part.FunctionCall.Args
	}
	if part.Text == "" {
		return nil
	}

	text := cleanPayload(part.Text)
	if obj := jsonfix.ParseObject(text); obj != nil {
		return obj
	}

	// Prose around the object defeats the whole-payload parse; retry on
	// the first balanced-looking brace span alone.
	if match := firstObject.FindString(text); match != "" {
		return jsonfix.ParseObject(match)
	}
	return nil
}

// cleanPayload strips markdown fences and control characters, then
// truncates a truncated-looking payload back to its last closing brace.
func cleanPayload(text string) string {
	text = openingFence.ReplaceAllString(strings.TrimSpace(text), "")
	text = closingFence.ReplaceAllString(text, "")
	text = controlChars.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if idx := strings.LastIndex(text, "}"); idx >= 0 && idx < len(text)-1 {
		text = text[:idx+1]
	}
	return text
}
