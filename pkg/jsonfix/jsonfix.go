// Package jsonfix provides tolerant parsing of near-valid JSON text.
// Generative models frequently return JSON with minor syntactic damage
// (single quotes, literal newlines inside strings, trailing commas); this
// package applies a fixed, ordered list of repairs and retries strict
// parsing exactly once. It never invents missing fields.
package jsonfix

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	trailingObjectComma = regexp.MustCompile(`,\s*}`)
	trailingArrayComma  = regexp.MustCompile(`,\s*]`)
)

// repair applies the bounded repair list to damaged JSON text.
// The order matches the documented repair pipeline and is deliberately
// not extended into a lenient grammar: quote normalization first, then
// newline escaping, then trailing-comma removal. The order can mask
// different malformations with the same fix; that is a known limitation.
func repair(text string) string {
	fixed := strings.ReplaceAll(text, "'", `"`)
	fixed = strings.ReplaceAll(fixed, "\r", `\r`)
	fixed = strings.ReplaceAll(fixed, "\n", `\n`)
	fixed = trailingObjectComma.ReplaceAllString(fixed, "}")
	fixed = trailingArrayComma.ReplaceAllString(fixed, "]")
	return fixed
}

// Parse attempts strict JSON parsing of text, falling back to a single
// repair-and-retry pass. It returns nil on unrecoverable input rather
// than an error so callers can apply their own fallback policy.
// Already-valid text round-trips unchanged.
func Parse(text string) any {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var value any
	if err := json.Unmarshal([]byte(text), &value); err == nil {
		return value
	}

	if err := json.Unmarshal([]byte(repair(text)), &value); err != nil {
		return nil
	}
	return value
}

// ParseObject is Parse restricted to a top-level JSON object, which is
// the only shape the model contract permits.
func ParseObject(text string) map[string]any {
	value, ok := Parse(text).(map[string]any)
	if !ok {
		return nil
	}
	return value
}
