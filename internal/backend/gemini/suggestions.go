package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"taskminder/internal/task"
)

// ParseSuggestions decodes a JSON array of {title, priority} objects.
// Entries without a title are dropped and unknown priorities become Medium.
// Anything that is not an array of objects, or an array with no usable
// entry, is ErrMalformedResponse.
func ParseSuggestions(data []byte) ([]task.Suggestion, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedResponse)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	out := make([]task.Suggestion, 0, len(items))
	for i, raw := range items {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: item %d is not an object", ErrMalformedResponse, i)
		}
		title, _ := fields["title"].(string)
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		priority, _ := fields["priority"].(string)
		out = append(out, task.Suggestion{Title: title, Priority: task.CoercePriority(priority)})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no sub-tasks", ErrMalformedResponse)
	}
	return out, nil
}
