package ai

import (
	"encoding/json"
	"strings"
)

// StripJSONFences removes markdown code fences the model often wraps JSON in.
func StripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseStringArray parses a model response expected to be a JSON string array.
// Returns nil when the response is not usable.
func ParseStringArray(raw string) []string {
	cleaned := StripJSONFences(raw)
	var out []string
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil
	}
	filtered := out[:0]
	for _, s := range out {
		s = strings.TrimSpace(s)
		if s != "" {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

// ParseJSONObject parses a model response expected to be a JSON object into v.
func ParseJSONObject(raw string, v interface{}) error {
	return json.Unmarshal([]byte(StripJSONFences(raw)), v)
}
