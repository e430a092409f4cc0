package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalLenient decodes JSON from model output. When the text is not
// pure JSON it retries on the span between the first '{' and the last '}'.
func UnmarshalLenient(text string, v any) error {
	err := json.Unmarshal([]byte(text), v)
	if err == nil {
		return nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("failed to extract JSON from model response: %w", err)
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("failed to parse model response as JSON: %w", err)
	}
	return nil
}
