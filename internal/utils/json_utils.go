package utils

import (
	"encoding/json"
	"fmt"
)

// ExtractJSON unmarshals an LLM reply into v. Models occasionally wrap the
// JSON object in prose despite a JSON-only contract, so on a parse failure
// the reply is rescanned for the outermost brace pair before giving up.
func ExtractJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}

	jsonStart := -1
	for i := 0; i < len(raw); i++ {
		if raw[i] == '{' {
			jsonStart = i
			break
		}
	}

	jsonEnd := -1
	for i := len(raw) - 1; i >= 0; i-- {
		if raw[i] == '}' {
			jsonEnd = i + 1
			break
		}
	}

	if jsonStart < 0 || jsonEnd <= jsonStart {
		return fmt.Errorf("no JSON object in LLM response")
	}

	if err := json.Unmarshal([]byte(raw[jsonStart:jsonEnd]), v); err != nil {
		return fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}
	return nil
}
