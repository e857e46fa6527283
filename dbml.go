package main

import (
	"fmt"
	"regexp"
	"strings"
)

// renderDBML emits the DBML document for a schema: a Project header, one
// Table block per table in schema order, then one Ref line per relationship.
// Column and index order is whatever the model captured — declaration
// order — and is never re-sorted.
func renderDBML(schema *Schema, cfg *Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project %s {\n", cfg.ProjectName)
	fmt.Fprintf(&b, "  database_type: '%s'\n", escapeDBMLString(cfg.DatabaseType))
	fmt.Fprintf(&b, "  Note: '%s'\n", escapeDBMLString(cfg.GenerationNote))
	b.WriteString("}\n")

	for i := range schema.Tables {
		b.WriteByte('\n')
		renderTable(&b, &schema.Tables[i], cfg)
	}

	if len(schema.Relationships) > 0 {
		b.WriteByte('\n')
		for _, rel := range schema.Relationships {
			b.WriteString(renderRef(rel))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var plainIdentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// dbmlIdent emits an identifier, double-quoting it when it is not a plain
// word. MySQL backtick names may contain spaces or punctuation, which DBML
// readers only accept in quoted form.
func dbmlIdent(name string) string {
	if plainIdentRe.MatchString(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `\"`) + `"`
}

func dbmlIdentList(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = dbmlIdent(c)
	}
	return out
}

func renderTable(b *strings.Builder, t *Table, cfg *Config) {
	fmt.Fprintf(b, "Table %s {\n", dbmlIdent(t.Name))
	for i := range t.Columns {
		fmt.Fprintf(b, "  %s\n", renderColumn(&t.Columns[i], cfg))
	}
	if len(t.Indexes) > 0 {
		b.WriteString("\n  indexes {\n")
		for _, idx := range t.Indexes {
			fmt.Fprintf(b, "    %s\n", renderIndex(idx, t.Name, cfg))
		}
		b.WriteString("  }\n")
	}
	if note := tableNote(t, cfg); note != "" {
		fmt.Fprintf(b, "\n  Note: '%s'\n", escapeDBMLString(note))
	}
	b.WriteString("}\n")
}

// renderColumn emits "name type [attrs]" with the attribute list in the
// canonical order: pk, increment, not null, unique, default, note.
func renderColumn(col *Column, cfg *Config) string {
	parts := []string{dbmlIdent(col.Name), mapDataType(col.Type, cfg)}

	var attrs []string
	if col.PrimaryKey {
		attrs = append(attrs, "pk")
	}
	if col.AutoIncrement {
		attrs = append(attrs, "increment")
	}
	if !col.Nullable {
		attrs = append(attrs, "not null")
	}
	if col.Unique && !col.PrimaryKey {
		attrs = append(attrs, "unique")
	}
	if col.Default != nil {
		attrs = append(attrs, "default: "+formatDefault(col.Default))
	}
	if note := columnNote(col); note != "" {
		attrs = append(attrs, "note: '"+escapeDBMLString(note)+"'")
	}
	if len(attrs) > 0 {
		parts = append(parts, "["+strings.Join(attrs, ", ")+"]")
	}
	return strings.Join(parts, " ")
}

// columnNote folds everything DBML has no construct for — the column
// comment, ENUM/SET value lists, CHECK expressions — into one note payload
// instead of dropping it.
func columnNote(col *Column) string {
	var parts []string
	if col.Comment != "" {
		parts = append(parts, col.Comment)
	}
	if (col.Type.Name == "enum" || col.Type.Name == "set") && col.Type.Params != "" {
		parts = append(parts, strings.ToUpper(col.Type.Name)+": "+col.Type.Params)
	}
	if col.Check != "" {
		parts = append(parts, "CHECK: "+col.Check)
	}
	return strings.Join(parts, "; ")
}

// formatDefault renders a default for the attribute list: string literals
// single-quoted, numbers and booleans bare, keyword/function expressions
// inside backtick raw-expression markers.
func formatDefault(d *Default) string {
	switch d.Kind {
	case DefaultLiteral:
		return "'" + escapeDBMLString(d.Value) + "'"
	case DefaultNumber:
		return d.Value
	case DefaultBool, DefaultNull:
		return strings.ToLower(d.Value)
	default:
		return "`" + d.Value + "`"
	}
}

func renderIndex(idx Index, tableName string, cfg *Config) string {
	cols := dbmlIdent(idx.Columns[0])
	if len(idx.Columns) > 1 {
		cols = "(" + strings.Join(dbmlIdentList(idx.Columns), ", ") + ")"
	}

	var settings []string
	switch idx.Kind {
	case IndexPrimary:
		settings = append(settings, "pk")
	case IndexUnique:
		settings = append(settings, "unique")
	}
	name := idx.Name
	if name == "" {
		name = synthesizeIndexName(tableName, idx, cfg)
	}
	settings = append(settings, "name: '"+escapeDBMLString(name)+"'")
	return cols + " [" + strings.Join(settings, ", ") + "]"
}

// synthesizeIndexName names an unnamed index after its table and columns so
// every index entry carries a name.
func synthesizeIndexName(tableName string, idx Index, cfg *Config) string {
	if idx.Kind == IndexPrimary {
		return "PRIMARY"
	}
	return cfg.IndexNamePrefix + "_" + tableName + "_" + strings.Join(idx.Columns, "_")
}

func tableNote(t *Table, cfg *Config) string {
	var parts []string
	if t.Comment != "" {
		parts = append(parts, t.Comment)
	}
	if t.Check != "" {
		parts = append(parts, "CHECK: "+t.Check)
	}
	if cfg.TableOptionNotes {
		if t.Engine != "" {
			parts = append(parts, "ENGINE: "+t.Engine)
		}
		if t.Charset != "" {
			parts = append(parts, "CHARSET: "+t.Charset)
		}
	}
	return strings.Join(parts, "; ")
}

// renderRef emits one relationship line, e.g.
// "Ref: posts.user_id > users.id [delete: cascade]". The settings bracket is
// omitted entirely when both actions are unspecified.
func renderRef(rel Relationship) string {
	line := "Ref: " + dbmlIdent(rel.FromTable) + "." + refColumns(rel.FromColumns) +
		" > " + dbmlIdent(rel.ToTable) + "." + refColumns(rel.ToColumns)

	var settings []string
	if rel.OnDelete != "" {
		settings = append(settings, "delete: "+rel.OnDelete)
	}
	if rel.OnUpdate != "" {
		settings = append(settings, "update: "+rel.OnUpdate)
	}
	if len(settings) > 0 {
		line += " [" + strings.Join(settings, ", ") + "]"
	}
	return line
}

func refColumns(cols []string) string {
	if len(cols) == 1 {
		return dbmlIdent(cols[0])
	}
	return "(" + strings.Join(dbmlIdentList(cols), ", ") + ")"
}

func escapeDBMLString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
