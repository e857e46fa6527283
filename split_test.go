package main

import (
	"strings"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	sql := `
CREATE TABLE users (id INT PRIMARY KEY);
CREATE TABLE posts (id INT PRIMARY KEY, title VARCHAR(100));
`
	stmts := splitStatements(sql)
	if len(stmts) != 2 {
		t.Fatalf("splitStatements() returned %d statements, want 2", len(stmts))
	}
	if !strings.Contains(stmts[0], "users") {
		t.Errorf("first statement should be users, got %q", stmts[0])
	}
	if !strings.Contains(stmts[1], "posts") {
		t.Errorf("second statement should be posts, got %q", stmts[1])
	}
}

func TestSplitStatements_SemicolonInString(t *testing.T) {
	sql := `CREATE TABLE t (a VARCHAR(10) DEFAULT 'x;y', b INT);`
	stmts := splitStatements(sql)
	if len(stmts) != 1 {
		t.Fatalf("semicolon inside a string literal split the statement: %d parts", len(stmts))
	}
	if !strings.Contains(stmts[0], "'x;y'") {
		t.Errorf("string literal was mangled: %q", stmts[0])
	}
}

func TestSplitStatements_SemicolonInBacktick(t *testing.T) {
	sql := "CREATE TABLE `odd;name` (a INT);"
	stmts := splitStatements(sql)
	if len(stmts) != 1 {
		t.Fatalf("semicolon inside a backtick identifier split the statement: %d parts", len(stmts))
	}
}

func TestSplitStatements_Comments(t *testing.T) {
	sql := `
-- leading comment; with a semicolon
CREATE TABLE t (
  a INT, /* block; comment */
  b INT -- trailing; comment
);
`
	stmts := splitStatements(sql)
	if len(stmts) != 1 {
		t.Fatalf("comments broke statement splitting: got %d statements", len(stmts))
	}
	if strings.Contains(stmts[0], "comment") {
		t.Errorf("comments should be stripped from the emitted statement: %q", stmts[0])
	}
}

func TestSplitStatements_SkipsOtherStatements(t *testing.T) {
	sql := `
CREATE INDEX idx_a ON t (a);
CREATE TABLE t (a INT);
INSERT INTO t VALUES (1);
`
	stmts := splitStatements(sql)
	if len(stmts) != 1 {
		t.Fatalf("non-CREATE TABLE statements should be skipped: got %d", len(stmts))
	}
	if !strings.HasPrefix(stmts[0], "CREATE TABLE") {
		t.Errorf("unexpected statement kept: %q", stmts[0])
	}
}

func TestSplitStatements_Empty(t *testing.T) {
	for _, sql := range []string{"", "   \n", "SELECT 1;", "-- only a comment\n"} {
		if stmts := splitStatements(sql); len(stmts) != 0 {
			t.Errorf("splitStatements(%q) = %d statements, want 0", sql, len(stmts))
		}
	}
}

func TestSplitStatements_NoTrailingSemicolon(t *testing.T) {
	stmts := splitStatements("CREATE TABLE t (a INT)")
	if len(stmts) != 1 {
		t.Fatalf("statement at EOF without semicolon should still be emitted")
	}
}

func TestSplitStatements_EscapedQuote(t *testing.T) {
	sql := `CREATE TABLE t (a VARCHAR(20) DEFAULT 'it\'s;fine');`
	stmts := splitStatements(sql)
	if len(stmts) != 1 {
		t.Fatalf("backslash-escaped quote confused the splitter: %d parts", len(stmts))
	}
}
