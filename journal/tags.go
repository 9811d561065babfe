package journal

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DecodeTags parses a JSON-encoded tag list. Anything that is not a JSON
// array yields an empty slice; it never returns an error. Elements are
// stringified and trimmed, and empty or null elements are dropped. Numbers
// and booleans use their JSON spelling, so 1.0 reads as "1" and true as
// "true", and null is never counted as a tag.
func DecodeTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	var arr []any
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(arr))
	for _, v := range arr {
		var label string
		switch x := v.(type) {
		case nil:
			continue
		case string:
			label = x
		case float64:
			label = strconv.FormatFloat(x, 'f', -1, 64)
		case bool:
			label = strconv.FormatBool(x)
		default:
			b, err := json.Marshal(x)
			if err != nil {
				continue
			}
			label = string(b)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		out = append(out, label)
	}
	return out
}

// EncodeTags renders tags as a JSON list. A nil slice encodes as "[]".
func EncodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// ToJSONList normalises free-form user input into a JSON list string.
// Empty input becomes "[]", a JSON array is re-encoded as is, and anything
// else is treated as a comma separated list.
func ToJSONList(raw string) string {
	if raw == "" {
		return "[]"
	}

	var arr []any
	if err := json.Unmarshal([]byte(raw), &arr); err == nil && arr != nil {
		b, err := json.Marshal(arr)
		if err == nil {
			return string(b)
		}
	}

	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return EncodeTags(parts)
}
