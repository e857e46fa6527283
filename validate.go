package main

import (
	"fmt"
	"regexp"
)

// maxInputSize caps input blobs at 10 MB. Enforced by the CLI layer before
// conversion starts; the core itself never does I/O.
const maxInputSize = 10 << 20

// suspiciousPatterns screens for statements that have no business in a
// schema dump handed to a diagramming tool.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i);\s*DROP\s+TABLE`),
	regexp.MustCompile(`(?i);\s*DELETE\s+FROM`),
	regexp.MustCompile(`(?i);\s*UPDATE\s+\S+\s+SET`),
	regexp.MustCompile(`(?i);\s*INSERT\s+INTO`),
	regexp.MustCompile(`(?i)UNION\s+SELECT`),
}

// validateInput performs the pre-parse checks on raw SQL text: size ceiling,
// pattern screening, and a quote-aware balanced-parenthesis sanity check.
// These run before the pipeline so obviously broken or hostile input fails
// with a clear message instead of a parse error deep in some statement.
func validateInput(sql string) error {
	if len(sql) > maxInputSize {
		return fmt.Errorf("input is %d bytes, exceeding the %d byte limit", len(sql), maxInputSize)
	}
	for _, pat := range suspiciousPatterns {
		if pat.MatchString(sql) {
			return fmt.Errorf("input contains a disallowed statement pattern (%s)", pat.String())
		}
	}
	if !balancedParens(sql) {
		return fmt.Errorf("input has unbalanced parentheses")
	}
	return nil
}

// balancedParens counts parenthesis depth outside string literals, backtick
// identifiers, and comments.
func balancedParens(sql string) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if quote != 0 {
			switch {
			case c == '\\' && quote != '`' && i+1 < len(sql):
				i++
			case c == quote && i+1 < len(sql) && sql[i+1] == quote:
				i++
			case c == quote:
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			i += 2
			for i+1 < len(sql) && !(sql[i] == '*' && sql[i+1] == '/') {
				i++
			}
			i++
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
