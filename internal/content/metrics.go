package content

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Metric is the canonical shape of one metric entry.
type Metric struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Metric inputs arrive in several historical shapes: plain strings (legacy
// "description only"), objects with title/description in either case, or
// whole sets as JSON text. CoerceMetrics normalizes all of them.
//
// Strict mode is for interactive single-record saves: the first bad entry
// rejects the whole set with an error naming the offending key. Lenient mode
// is for bulk imports: bad entries are dropped so one malformed record does
// not sink the batch.
func CoerceMetrics(input any, strict bool) (map[string]Metric, error) {
	switch v := input.(type) {
	case nil:
		return map[string]Metric{}, nil
	case string:
		return ParseMetricsJSON(v, strict)
	case map[string]Metric:
		out := make(map[string]Metric, len(v))
		for key, m := range v {
			coerced, err := coerceEntry(key, map[string]any{"title": m.Title, "description": m.Description}, strict)
			if err != nil {
				return nil, err
			}
			if coerced != nil {
				out[key] = *coerced
			}
		}
		return out, nil
	case map[string]any:
		return coerceMetricMap(v, strict)
	default:
		return nil, fmt.Errorf("metrics: unsupported input type %T", input)
	}
}

// ParseMetricsJSON decodes JSON text and normalizes it. Empty text yields an
// empty set.
func ParseMetricsJSON(text string, strict bool) (map[string]Metric, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return map[string]Metric{}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("metrics: invalid JSON: %w", err)
	}
	return coerceMetricMap(raw, strict)
}

// MetricsToJSON serializes a normalized set. Output is deterministic:
// encoding/json sorts map keys.
func MetricsToJSON(metrics map[string]Metric) (string, error) {
	if len(metrics) == 0 {
		return "", nil
	}
	data, err := json.Marshal(metrics)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func coerceMetricMap(raw map[string]any, strict bool) (map[string]Metric, error) {
	out := make(map[string]Metric, len(raw))
	for key, value := range raw {
		metric, err := coerceEntry(key, value, strict)
		if err != nil {
			return nil, err
		}
		if metric != nil {
			out[key] = *metric
		}
	}
	return out, nil
}

// coerceEntry normalizes one entry. A nil result with nil error means the
// entry was dropped (lenient mode only).
func coerceEntry(key string, value any, strict bool) (*Metric, error) {
	if strings.TrimSpace(key) == "" {
		if strict {
			return nil, fmt.Errorf("metric with empty key")
		}
		return nil, nil
	}

	switch v := value.(type) {
	case string:
		// Legacy shorthand: the value is the description, the title is
		// derived from the key.
		if strings.TrimSpace(v) == "" {
			if strict {
				return nil, fmt.Errorf("metric %q: empty value", key)
			}
			return nil, nil
		}
		return &Metric{Title: DeriveMetricTitle(key), Description: v}, nil

	case map[string]any:
		title := stringField(v, "title", "Title")
		description := stringField(v, "description", "Description")

		if title == "" {
			title = DeriveMetricTitle(key)
		}
		if description == "" {
			if strict {
				return nil, fmt.Errorf("metric %q: missing description", key)
			}
			return nil, nil
		}
		return &Metric{Title: title, Description: description}, nil

	default:
		if strict {
			return nil, fmt.Errorf("metric %q: unsupported value type %T", key, value)
		}
		return nil, nil
	}
}

func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// DeriveMetricTitle produces a display title from a metric key when the
// entry carries none. All-caps alphanumeric keys are treated as acronyms and
// kept; short lowercase keys are uppercased; anything else is humanized.
func DeriveMetricTitle(key string) string {
	if isUpperAlnum(key) {
		return key
	}
	if len(key) <= 4 && isLowerAlnum(key) {
		return strings.ToUpper(key)
	}
	return humanize(key)
}

func isUpperAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isLowerAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// humanize replaces separators with spaces and title-cases each word.
func humanize(s string) string {
	replacer := strings.NewReplacer("_", " ", "-", " ", ".", " ")
	words := strings.Fields(replacer.Replace(s))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
