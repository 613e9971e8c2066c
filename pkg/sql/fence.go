package sql

import (
	"strings"
)

// StripCodeFence removes markdown code fences from model-generated SQL.
//
// Models frequently wrap statements in ```sql ... ``` or bare ``` ... ```
// blocks even when told not to. The fence markers and the optional language
// tag are removed; the statement text inside is returned trimmed.
//
// Text without fences is returned trimmed and otherwise unchanged.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.Contains(trimmed, "```") {
		return trimmed
	}

	// Opening fence with optional language tag, e.g. ```sql
	opened := false
	if strings.HasPrefix(trimmed, "```") {
		opened = true
		rest := trimmed[3:]
		if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
			tag := strings.TrimSpace(rest[:idx])
			if tag == "" || isFenceTag(tag) {
				trimmed = rest[idx+1:]
			} else {
				trimmed = rest
			}
		} else {
			// Single-line fence, e.g. ```sql SELECT 1```
			trimmed = strings.TrimPrefix(rest, "sql")
		}
	}

	// Strip the closing fence only for text that opened with one;
	// backticks inside an unfenced statement are statement text.
	if opened {
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}

	return strings.TrimSpace(trimmed)
}

func isFenceTag(tag string) bool {
	switch strings.ToLower(tag) {
	case "sql", "postgresql", "postgres", "psql":
		return true
	}
	return false
}
