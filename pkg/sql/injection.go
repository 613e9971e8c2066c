package sql

import (
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
)

// InjectionCheckResult describes a string literal that tripped the
// libinjection detector.
type InjectionCheckResult struct {
	IsSQLi      bool   // True if SQL injection pattern detected
	Fingerprint string // libinjection fingerprint of the detected pattern
	Literal     string // The literal text that was checked
}

// CheckLiteralForInjection runs libinjection over a single string value.
//
// Returns nil if no injection is detected. Non-string content (numbers,
// identifiers) should not be passed here; the detector is built for
// data values.
func CheckLiteralForInjection(value string) *InjectionCheckResult {
	isSQLi, fingerprint := libinjection.IsSQLi(value)
	if !isSQLi {
		return nil
	}
	return &InjectionCheckResult{
		IsSQLi:      true,
		Fingerprint: string(fingerprint),
		Literal:     value,
	}
}

// CheckStatementLiterals extracts every single-quoted literal from a
// statement and runs the injection detector over each one.
//
// The statement itself is model-generated SQL, so scanning the whole text
// would flag every legitimate query. Literals are where user-influenced
// content ends up (the model copies names, states, and free text from
// the question into WHERE clauses), so they are what gets checked.
//
// Returns one result per flagged literal, or an empty slice when all
// literals are clean.
func CheckStatementLiterals(sqlQuery string) []*InjectionCheckResult {
	var results []*InjectionCheckResult
	for _, lit := range extractStringLiterals(sqlQuery) {
		if result := CheckLiteralForInjection(lit); result != nil {
			results = append(results, result)
		}
	}
	return results
}

// extractStringLiterals returns the contents of every single-quoted string
// in the statement, with SQL doubled-quote escapes ('') collapsed.
func extractStringLiterals(sqlQuery string) []string {
	var (
		literals []string
		current  strings.Builder
		inString bool
	)

	runes := []rune(sqlQuery)
	for i := 0; i < len(runes); i++ {
		char := runes[i]
		if !inString {
			if char == '\'' {
				inString = true
				current.Reset()
			}
			continue
		}
		if char == '\'' {
			// Doubled quote is an escaped quote inside the literal
			if i+1 < len(runes) && runes[i+1] == '\'' {
				current.WriteRune('\'')
				i++
				continue
			}
			inString = false
			literals = append(literals, current.String())
			continue
		}
		current.WriteRune(char)
	}

	return literals
}
