package content

import "strings"

// ParseCSV splits comma-separated admin input into trimmed, non-empty items.
func ParseCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinCSV is the inverse of ParseCSV, used when rendering edit forms.
func JoinCSV(items []string) string {
	return strings.Join(items, ", ")
}

// ParseKeyValueLines parses "key|value" lines into an ordered slice of
// pairs. Blank lines, lines without a value after the first "|", and lines
// with an empty key are dropped; well-formed lines keep their input order.
func ParseKeyValueLines(raw string) []KeyValue {
	var out []KeyValue
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "|")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out = append(out, KeyValue{Key: key, Value: value})
	}
	return out
}

// KeyValue is one parsed "key|value" line.
type KeyValue struct {
	Key   string
	Value string
}
