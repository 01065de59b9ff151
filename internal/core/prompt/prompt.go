// Package prompt builds the instructions sent to the language model and
// parses the JSON it returns for plan generation and plan adaptation.
package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoJSON = errors.New("model reply contains no JSON object")

// ExtractJSON returns the outermost JSON object in a model reply, tolerating
// markdown fences and prose around it.
func ExtractJSON(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSON
	}
	candidate := reply[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", fmt.Errorf("%w: malformed object", ErrNoJSON)
	}
	return candidate, nil
}

func decode(reply string, v any) error {
	raw, err := ExtractJSON(reply)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("prompt: decode model reply: %w", err)
	}
	return nil
}
