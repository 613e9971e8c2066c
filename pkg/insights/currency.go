// Package insights produces the precomputed textual reports (the Insight
// Report) injected into chat prompts, aggregated from bounded samples of the
// fact and projection tables.
package insights

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatBRL renders a monetary value as "R$ 1,234,567.89": thousands
// separator, exactly two decimal places. Matches the formatting the answer
// prompts instruct the model to use.
func FormatBRL(value float64) string {
	sign := ""
	if math.Signbit(value) {
		sign = "-"
		value = math.Abs(value)
	}

	fixed := strconv.FormatFloat(value, 'f', 2, 64)
	intPart, decPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return fmt.Sprintf("R$ %s%s.%s", sign, grouped.String(), decPart)
}

// ParseBRL reads a value produced by FormatBRL back into a float64.
// Re-formatting a parsed value yields the identical string, so formatting
// never double-applies separators.
func ParseBRL(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "R$")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse currency %q: %w", s, err)
	}
	return value, nil
}
