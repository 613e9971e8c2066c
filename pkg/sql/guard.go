package sql

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNotReadOnly indicates the statement does not start with SELECT or WITH.
	ErrNotReadOnly = errors.New("only SELECT statements are permitted")

	// ErrForbiddenKeyword indicates the statement contains a data-modifying
	// or administrative keyword.
	ErrForbiddenKeyword = errors.New("statement contains a forbidden keyword")
)

// forbiddenKeywords are write, DDL, and administrative verbs that a
// model-generated analytics query has no business containing. Matched as
// whole words, case-insensitively, outside string literals.
var forbiddenKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE",
	"TRUNCATE", "GRANT", "REVOKE", "COPY", "VACUUM", "REINDEX",
	"EXECUTE", "DO",
}

var forbiddenPattern = regexp.MustCompile(
	`(?i)\b(` + strings.Join(forbiddenKeywords, "|") + `)\b`,
)

// EnsureReadOnly verifies that a normalized statement is a plain read.
//
// The statement must start with SELECT or WITH, ignoring leading comments
// and parentheses, and must not contain any forbidden keyword outside of
// string literals. Call ValidateAndNormalize first; this function assumes a
// single trimmed statement.
func EnsureReadOnly(sqlQuery string) error {
	upper := strings.ToUpper(skipLeadingTrivia(sqlQuery))
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return ErrNotReadOnly
	}

	if kw := findForbiddenKeyword(sqlQuery); kw != "" {
		return fmt.Errorf("%w: %s", ErrForbiddenKeyword, kw)
	}

	return nil
}

// skipLeadingTrivia advances past whitespace, line and block comments, and
// opening parentheses so the statement-kind check sees the first keyword.
// Models regularly prefix generated SQL with an explanatory comment.
func skipLeadingTrivia(sqlQuery string) string {
	s := sqlQuery
	for {
		s = strings.TrimLeft(s, " \t\r\n(")
		switch {
		case strings.HasPrefix(s, "--"):
			idx := strings.IndexByte(s, '\n')
			if idx < 0 {
				return ""
			}
			s = s[idx+1:]
		case strings.HasPrefix(s, "/*"):
			idx := strings.Index(s, "*/")
			if idx < 0 {
				return ""
			}
			s = s[idx+2:]
		default:
			return s
		}
	}
}

// findForbiddenKeyword returns the first forbidden keyword appearing outside
// string literals, or "" if none is present.
func findForbiddenKeyword(sqlQuery string) string {
	masked := maskStringLiterals(sqlQuery)
	match := forbiddenPattern.FindString(masked)
	return strings.ToUpper(match)
}

// maskStringLiterals replaces the contents of single- and double-quoted
// literals with spaces so keyword and literal scans do not fire on quoted
// data values.
func maskStringLiterals(sqlQuery string) string {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prevChar := rune(0)
	out := []rune(sqlQuery)

	for i, char := range sqlQuery {
		switch state {
		case stateNormal:
			switch char {
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			if char == '\'' && prevChar != '\\' {
				state = stateNormal
			} else {
				out[i] = ' '
			}
		case stateDoubleQuote:
			if char == '"' && prevChar != '\\' {
				state = stateNormal
			} else {
				out[i] = ' '
			}
		}
		prevChar = char
	}

	return string(out)
}
