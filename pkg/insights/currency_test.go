package insights

import (
	"testing"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"zero", 0, "R$ 0.00"},
		{"small", 12.5, "R$ 12.50"},
		{"hundreds", 123.456, "R$ 123.46"},
		{"thousands", 1234.5, "R$ 1,234.50"},
		{"millions", 1234567.89, "R$ 1,234,567.89"},
		{"billions", 9876543210.01, "R$ 9,876,543,210.01"},
		{"exact thousand", 1000, "R$ 1,000.00"},
		{"negative", -1234.5, "R$ -1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatBRL(tt.input)
			if result != tt.expected {
				t.Errorf("FormatBRL(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseBRL(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"R$ 0.00", 0},
		{"R$ 1,234.50", 1234.5},
		{"R$ 1,234,567.89", 1234567.89},
		{"R$ -1,234.50", -1234.5},
		{"1234.50", 1234.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseBRL(tt.input)
			if err != nil {
				t.Fatalf("ParseBRL(%q): %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseBRL(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseBRL_Invalid(t *testing.T) {
	if _, err := ParseBRL("R$ abc"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}

func TestFormatBRL_RoundTripIdempotent(t *testing.T) {
	// format(parse(format(x))) == format(x): separators never double-apply
	for _, value := range []float64{0, 0.005, 12.34, 999.999, 1234.5, 1234567.89, 98765432.1, -45678.9} {
		formatted := FormatBRL(value)
		parsed, err := ParseBRL(formatted)
		if err != nil {
			t.Fatalf("ParseBRL(%q): %v", formatted, err)
		}
		again := FormatBRL(parsed)
		if again != formatted {
			t.Errorf("round trip changed value: %q -> %q", formatted, again)
		}
	}
}
