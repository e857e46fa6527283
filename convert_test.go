package main

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const sampleDDL = `
CREATE TABLE users (
  id INT PRIMARY KEY AUTO_INCREMENT,
  username VARCHAR(50) NOT NULL,
  email VARCHAR(255) NOT NULL,
  status ENUM('active', 'inactive', 'banned') NOT NULL DEFAULT 'active',
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  UNIQUE KEY uq_users_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE posts (
  id INT PRIMARY KEY AUTO_INCREMENT,
  user_id INT NOT NULL,
  title VARCHAR(200) NOT NULL,
  body TEXT,
  CONSTRAINT fk_posts_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
);
`

func TestConvert(t *testing.T) {
	out, err := Convert(sampleDDL, defaultConfig())
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	for _, want := range []string{
		"Project database {",
		"  database_type: 'MySQL'",
		"Table users {",
		"  id int [pk, increment, not null]",
		"  username varchar(50) [not null]",
		"    email [unique, name: 'uq_users_email']",
		"  Note: 'ENGINE: InnoDB; CHARSET: utf8mb4'",
		"Table posts {",
		"Ref: posts.user_id > users.id [delete: cascade]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConvert_EnumBecomesVarcharWithNote(t *testing.T) {
	out, err := Convert(sampleDDL, defaultConfig())
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !strings.Contains(out, "status varchar [not null, default: 'active', note: 'ENUM:") {
		t.Errorf("enum column should map to varchar with a value-list note:\n%s", out)
	}
	if strings.Contains(out, "varchar('active'") {
		t.Errorf("enum values leaked into the type:\n%s", out)
	}
}

func TestConvert_Deterministic(t *testing.T) {
	cfg := defaultConfig()
	a, err := Convert(sampleDDL, cfg)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	b, err := Convert(sampleDDL, cfg)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if a != b {
		t.Error("two conversions of the same input differ")
	}
}

func TestConvert_DeclarationOrderPreserved(t *testing.T) {
	sql := `
CREATE TABLE zoo (zebra INT, apple INT, mango INT);
CREATE TABLE aquarium (fish INT);
`
	out, err := Convert(sql, defaultConfig())
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	zebra := strings.Index(out, "zebra")
	apple := strings.Index(out, "apple")
	mango := strings.Index(out, "mango")
	if !(zebra < apple && apple < mango) {
		t.Errorf("columns re-ordered (zebra=%d apple=%d mango=%d):\n%s", zebra, apple, mango, out)
	}
	if strings.Index(out, "Table zoo") > strings.Index(out, "Table aquarium") {
		t.Errorf("tables re-ordered:\n%s", out)
	}
}

func TestConvert_SelfReference(t *testing.T) {
	sql := `
CREATE TABLE categories (
  id INT PRIMARY KEY AUTO_INCREMENT,
  name VARCHAR(100) NOT NULL,
  parent_id INT,
  FOREIGN KEY (parent_id) REFERENCES categories (id) ON DELETE SET NULL
);
`
	out, err := Convert(sql, defaultConfig())
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !strings.Contains(out, "Ref: categories.parent_id > categories.id [delete: set null]") {
		t.Errorf("self-reference not rendered:\n%s", out)
	}
}

func TestConvert_CheckNote(t *testing.T) {
	sql := `
CREATE TABLE reviews (
  id INT PRIMARY KEY,
  rating INT NOT NULL,
  CHECK (rating >= 1 AND rating <= 5)
);
`
	out, err := Convert(sql, defaultConfig())
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !strings.Contains(out, "rating int [not null, note: 'CHECK: rating >= 1 AND rating <= 5']") {
		t.Errorf("check constraint not folded into the column note:\n%s", out)
	}
}

func TestConvert_EmptyInput(t *testing.T) {
	for _, sql := range []string{"", "   ", "SELECT 1;", "-- comments only\n"} {
		_, err := Convert(sql, defaultConfig())
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Convert(%q) error = %v, want ErrEmptyInput", sql, err)
		}
	}
}

func TestConvert_MalformedStatement(t *testing.T) {
	_, err := Convert("CREATE TABLE broken (a INT;", defaultConfig())
	if !errors.Is(err, ErrMalformedStatement) {
		t.Fatalf("error = %v, want ErrMalformedStatement", err)
	}
	if !strings.Contains(err.Error(), `"broken"`) {
		t.Errorf("error should name the table: %v", err)
	}
}

func TestConvert_DuplicateTable(t *testing.T) {
	sql := "CREATE TABLE t (a INT); CREATE TABLE t (b INT);"
	_, err := Convert(sql, defaultConfig())
	if !errors.Is(err, ErrDuplicateTableName) {
		t.Errorf("error = %v, want ErrDuplicateTableName", err)
	}
}

func TestConvert_ForwardReference(t *testing.T) {
	sql := `
CREATE TABLE posts (
  id INT PRIMARY KEY,
  user_id INT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users (id)
);
CREATE TABLE users (id INT PRIMARY KEY);
`
	out, err := Convert(sql, defaultConfig())
	if err != nil {
		t.Fatalf("forward references must not fail: %v", err)
	}
	if !strings.Contains(out, "Ref: posts.user_id > users.id") {
		t.Errorf("forward reference not rendered:\n%s", out)
	}
}

func TestConvert_QuotedIdentifiers(t *testing.T) {
	sql := "CREATE TABLE `order items` (\n" +
		"  `item id` INT NOT NULL,\n" +
		"  `order ref` INT,\n" +
		"  KEY `by order` (`order ref`),\n" +
		"  FOREIGN KEY (`order ref`) REFERENCES `sales orders` (id)\n" +
		");"
	out, err := Convert(sql, defaultConfig())
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	for _, want := range []string{
		"Table \"order items\" {",
		"  \"item id\" int [not null]",
		"    \"order ref\" [name: 'by order']",
		"Ref: \"order items\".\"order ref\" > \"sales orders\".id",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Table order items {") {
		t.Errorf("spaced table name emitted unquoted:\n%s", out)
	}
}

func TestConvert_CustomProject(t *testing.T) {
	cfg := defaultConfig()
	cfg.ProjectName = "shop"
	cfg.GenerationNote = "nightly schema export"
	out, err := Convert("CREATE TABLE t (a INT);", cfg)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !strings.Contains(out, "Project shop {") {
		t.Errorf("project name not applied:\n%s", out)
	}
	if !strings.Contains(out, "Note: 'nightly schema export'") {
		t.Errorf("generation note not applied:\n%s", out)
	}
}
