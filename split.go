package main

import (
	"regexp"
	"strings"
)

var createTableRe = regexp.MustCompile(`(?i)^\s*CREATE\s+(TEMPORARY\s+)?TABLE\b`)

// splitStatements splits a DDL blob into individual CREATE TABLE statement
// texts. A semicolon terminates a statement only at the top level: semicolons
// inside string literals, backtick identifiers, -- line comments, and
// /* */ block comments are data, not terminators. Comments are replaced by a
// single space in the emitted text so the parser never sees them. Statements
// of any other kind (CREATE INDEX, INSERT, ...) are dropped. An input with no
// CREATE TABLE statements yields an empty slice, not an error.
func splitStatements(sql string) []string {
	const (
		stateCode = iota
		stateSingle
		stateDouble
		stateBacktick
		stateLineComment
		stateBlockComment
	)

	var stmts []string
	var b strings.Builder
	state := stateCode

	flush := func() {
		text := strings.TrimSpace(b.String())
		b.Reset()
		if createTableRe.MatchString(text) {
			stmts = append(stmts, text)
		}
	}

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch state {
		case stateCode:
			switch {
			case c == ';':
				flush()
				continue
			case c == '\'':
				state = stateSingle
			case c == '"':
				state = stateDouble
			case c == '`':
				state = stateBacktick
			case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
				state = stateLineComment
				i++
				continue
			case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
				state = stateBlockComment
				i++
				continue
			}
			b.WriteByte(c)
		case stateSingle, stateDouble:
			quote := byte('\'')
			if state == stateDouble {
				quote = '"'
			}
			b.WriteByte(c)
			switch {
			case c == '\\' && i+1 < len(sql):
				i++
				b.WriteByte(sql[i])
			case c == quote && i+1 < len(sql) && sql[i+1] == quote:
				i++
				b.WriteByte(sql[i])
			case c == quote:
				state = stateCode
			}
		case stateBacktick:
			b.WriteByte(c)
			if c == '`' {
				state = stateCode
			}
		case stateLineComment:
			if c == '\n' {
				state = stateCode
				b.WriteByte(' ')
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(sql) && sql[i+1] == '/' {
				i++
				state = stateCode
				b.WriteByte(' ')
			}
		}
	}
	flush()

	return stmts
}
