package main

import "strings"

// Low-level lexical scanning shared by the statement splitter and the table
// parser. Everything here is quote-aware: parentheses and commas inside
// string literals or backtick identifiers never count as structure.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '$' || c == '.'
}

// equalIdent compares two SQL identifiers the way MySQL resolves column
// names: case-insensitively.
func equalIdent(a, b string) bool {
	return strings.EqualFold(a, b)
}

// matchParen returns the index of the closing parenthesis matching the
// opening one at s[open], skipping parens inside quoted strings and backtick
// identifiers. ok is false when the input runs out first.
func matchParen(s string, open int) (close int, ok bool) {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch {
			case c == '\\' && quote != '`' && i+1 < len(s):
				i++
			case c == quote && i+1 < len(s) && s[i+1] == quote:
				i++
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// splitTopLevel splits s on commas at parenthesis depth zero, outside any
// quoted region. Used for the column/constraint list and for value lists.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch {
			case c == '\\' && quote != '`' && i+1 < len(s):
				i++
			case c == quote && i+1 < len(s) && s[i+1] == quote:
				i++
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// itemScanner walks one clause item token by token, preserving raw spans so
// literal payloads (enum value lists, CHECK expressions) survive verbatim.
type itemScanner struct {
	src string
	pos int
}

func (s *itemScanner) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *itemScanner) done() bool {
	s.skipSpace()
	return s.pos >= len(s.src)
}

func (s *itemScanner) peek() byte {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

// word consumes a bare word (identifier, keyword, or number).
func (s *itemScanner) word() (string, bool) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.src) && isWordByte(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", false
	}
	return s.src[start:s.pos], true
}

// peekWord returns the next bare word without consuming it.
func (s *itemScanner) peekWord() string {
	save := s.pos
	w, _ := s.word()
	s.pos = save
	return w
}

// ident consumes an identifier, either backtick-quoted (with doubled
// backtick escaping) or bare, and returns the unquoted text.
func (s *itemScanner) ident() (string, bool) {
	if s.peek() != '`' {
		return s.word()
	}
	s.pos++
	var b strings.Builder
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '`' {
			if s.pos+1 < len(s.src) && s.src[s.pos+1] == '`' {
				b.WriteByte('`')
				s.pos += 2
				continue
			}
			s.pos++
			return b.String(), true
		}
		b.WriteByte(c)
		s.pos++
	}
	return "", false // unterminated backtick
}

// quoted consumes a single- or double-quoted string literal and returns the
// decoded text. Both backslash escapes and doubled-quote escapes apply.
func (s *itemScanner) quoted() (string, bool) {
	q := s.peek()
	if q != '\'' && q != '"' {
		return "", false
	}
	save := s.pos
	s.pos++
	var b strings.Builder
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\\' && s.pos+1 < len(s.src):
			b.WriteByte(s.src[s.pos+1])
			s.pos += 2
		case c == q && s.pos+1 < len(s.src) && s.src[s.pos+1] == q:
			b.WriteByte(q)
			s.pos += 2
		case c == q:
			s.pos++
			return b.String(), true
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	s.pos = save
	return "", false // unterminated literal
}

// parenGroup consumes a balanced parenthesized group and returns the raw
// text between the parentheses.
func (s *itemScanner) parenGroup() (string, bool) {
	if s.peek() != '(' {
		return "", false
	}
	close, ok := matchParen(s.src, s.pos)
	if !ok {
		return "", false
	}
	inside := s.src[s.pos+1 : close]
	s.pos = close + 1
	return inside, true
}

// isNumericLiteral reports whether s is a plain signed decimal literal.
func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}
	hasDot := false
	start := 0
	if s[0] == '-' || s[0] == '+' {
		start = 1
	}
	if start >= len(s) {
		return false
	}
	for i := start; i < len(s); i++ {
		if s[i] == '.' {
			if hasDot {
				return false
			}
			hasDot = true
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
