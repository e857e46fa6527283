package main

import (
	"strings"
	"testing"
)

func TestValidateInput_CleanDDL(t *testing.T) {
	if err := validateInput(sampleDDL); err != nil {
		t.Errorf("validateInput() rejected clean DDL: %v", err)
	}
}

func TestValidateInput_SuspiciousPatterns(t *testing.T) {
	cases := []string{
		"CREATE TABLE t (a INT); DROP TABLE users;",
		"CREATE TABLE t (a INT); DELETE FROM users;",
		"CREATE TABLE t (a INT); INSERT INTO users VALUES (1);",
		"CREATE TABLE t (a INT); UPDATE users SET admin = 1;",
		"CREATE TABLE t (a INT) UNION SELECT * FROM secrets",
	}
	for _, sql := range cases {
		err := validateInput(sql)
		if err == nil {
			t.Errorf("validateInput(%q) should reject", sql)
			continue
		}
		if !strings.Contains(err.Error(), "disallowed statement pattern") {
			t.Errorf("unexpected error for %q: %v", sql, err)
		}
	}
}

func TestValidateInput_SizeLimit(t *testing.T) {
	big := strings.Repeat("x", maxInputSize+1)
	err := validateInput(big)
	if err == nil || !strings.Contains(err.Error(), "byte limit") {
		t.Errorf("oversized input error = %v", err)
	}
}

func TestValidateInput_UnbalancedParens(t *testing.T) {
	err := validateInput("CREATE TABLE t (a INT;")
	if err == nil || !strings.Contains(err.Error(), "unbalanced parentheses") {
		t.Errorf("unbalanced input error = %v", err)
	}
}

func TestBalancedParens(t *testing.T) {
	cases := []struct {
		sql  string
		want bool
	}{
		{"()", true},
		{"(()", false},
		{"())", false},
		{"(a VARCHAR(5) DEFAULT ')')", true},
		{"(a VARCHAR(5) DEFAULT '(')", true},
		{"-- (\nCREATE TABLE t (a INT)", true},
		{"/* ( */ (a INT)", true},
		{"`odd)name` (a INT)", true},
	}
	for _, tc := range cases {
		if got := balancedParens(tc.sql); got != tc.want {
			t.Errorf("balancedParens(%q) = %v, want %v", tc.sql, got, tc.want)
		}
	}
}
