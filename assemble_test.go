package main

import (
	"errors"
	"strings"
	"testing"
)

func TestAssembleSchema_RelationshipOrder(t *testing.T) {
	tables := []Table{
		{
			Name:    "posts",
			Columns: []Column{{Name: "id"}, {Name: "user_id"}, {Name: "editor_id"}},
			ForeignKeys: []ForeignKey{
				{Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}},
				{Columns: []string{"editor_id"}, RefTable: "users", RefColumns: []string{"id"}},
			},
		},
		{
			Name:    "users",
			Columns: []Column{{Name: "id"}},
		},
	}
	schema, err := assembleSchema(tables)
	if err != nil {
		t.Fatalf("assembleSchema() error: %v", err)
	}
	if len(schema.Relationships) != 2 {
		t.Fatalf("got %d relationships, want 2", len(schema.Relationships))
	}
	if schema.Relationships[0].FromColumns[0] != "user_id" ||
		schema.Relationships[1].FromColumns[0] != "editor_id" {
		t.Errorf("relationships out of declaration order: %+v", schema.Relationships)
	}
}

func TestAssembleSchema_ForwardReferencePasses(t *testing.T) {
	// a foreign key may point at a table declared later, or not present at
	// all; neither is an assembly error
	tables := []Table{
		{
			Name:    "posts",
			Columns: []Column{{Name: "user_id"}},
			ForeignKeys: []ForeignKey{
				{Columns: []string{"user_id"}, RefTable: "external_users", RefColumns: []string{"id"}},
			},
		},
	}
	schema, err := assembleSchema(tables)
	if err != nil {
		t.Fatalf("assembleSchema() error: %v", err)
	}
	if len(schema.Relationships) != 1 {
		t.Errorf("external reference should still produce a relationship")
	}
}

func TestAssembleSchema_DuplicateTable(t *testing.T) {
	tables := []Table{
		{Name: "users", Columns: []Column{{Name: "id"}}},
		{Name: "users", Columns: []Column{{Name: "id"}}},
	}
	_, err := assembleSchema(tables)
	if !errors.Is(err, ErrDuplicateTableName) {
		t.Fatalf("error = %v, want ErrDuplicateTableName", err)
	}
	if !strings.Contains(err.Error(), "statement 1") {
		t.Errorf("error should locate the first declaration: %v", err)
	}
}

func TestAssembleSchema_ArityMismatch(t *testing.T) {
	tables := []Table{
		{
			Name:    "t",
			Columns: []Column{{Name: "a"}, {Name: "b"}},
			ForeignKeys: []ForeignKey{
				{Name: "fk_bad", Columns: []string{"a", "b"}, RefTable: "u", RefColumns: []string{"x"}},
			},
		},
	}
	_, err := assembleSchema(tables)
	if !errors.Is(err, ErrStructuralMismatch) {
		t.Fatalf("error = %v, want ErrStructuralMismatch", err)
	}
	if !strings.Contains(err.Error(), "fk_bad") {
		t.Errorf("error should name the foreign key: %v", err)
	}
}

func TestAssembleSchema_UnknownLocalColumn(t *testing.T) {
	tables := []Table{
		{
			Name:    "t",
			Columns: []Column{{Name: "a"}},
			ForeignKeys: []ForeignKey{
				{Columns: []string{"missing"}, RefTable: "u", RefColumns: []string{"x"}},
			},
		},
	}
	_, err := assembleSchema(tables)
	if !errors.Is(err, ErrStructuralMismatch) {
		t.Fatalf("error = %v, want ErrStructuralMismatch", err)
	}
}
