package main

// DefaultKind classifies how a column default is rendered in DBML.
type DefaultKind int

const (
	// DefaultLiteral is a quoted string literal; Value holds the unquoted text.
	DefaultLiteral DefaultKind = iota
	// DefaultNumber is a bare numeric literal.
	DefaultNumber
	// DefaultBool is true/false.
	DefaultBool
	// DefaultNull is an explicit DEFAULT NULL.
	DefaultNull
	// DefaultExpr is a keyword or function expression, rendered as a raw
	// backtick expression (e.g. CURRENT_TIMESTAMP, uuid()).
	DefaultExpr
)

// Default is a parsed column default value.
type Default struct {
	Kind  DefaultKind
	Value string
}

// DataType is a column type split into its base name and raw parameter text.
type DataType struct {
	Name   string // lowercased base type, e.g. "varchar", "decimal", "enum"
	Params string // raw text inside parentheses, e.g. "10,2" or "'a','b'"
}

// Column represents a single parsed column definition. Flags are a set: a
// flag declared twice (or in mixed case) is recorded once.
type Column struct {
	Name          string
	Type          DataType
	Nullable      bool
	PrimaryKey    bool
	Unique        bool
	AutoIncrement bool
	Default       *Default
	Comment       string
	Check         string // raw CHECK expression text, surfaced as a note
}

// IndexKind distinguishes plain, unique, and primary-key indexes.
type IndexKind int

const (
	IndexPlain IndexKind = iota
	IndexUnique
	IndexPrimary
)

// Index represents a MySQL index (may span multiple columns).
type Index struct {
	Name    string // empty when unnamed; the renderer synthesizes one
	Columns []string
	Kind    IndexKind
}

// ForeignKey represents a foreign key constraint. Referential actions are
// stored normalized to lower case ("cascade", "set null", ...); empty means
// unspecified.
type ForeignKey struct {
	Name       string
	Columns    []string // local column names, in declaration order
	RefTable   string
	RefColumns []string // same arity as Columns
	OnDelete   string
	OnUpdate   string
}

// Table holds the full parsed definition of one CREATE TABLE statement.
// Column and index order is declaration order and is significant for output.
type Table struct {
	Name        string
	Columns     []Column
	Indexes     []Index
	ForeignKeys []ForeignKey
	Comment     string
	Engine      string // informational only, surfaced as a note when enabled
	Charset     string
	Check       string // table-level CHECK text that matched no column
}

// Relationship is the schema-level view of one foreign key, emitted as a
// DBML Ref line.
type Relationship struct {
	FromTable   string
	FromColumns []string
	ToTable     string
	ToColumns   []string
	OnDelete    string
	OnUpdate    string
}

// Schema holds all parsed tables plus the relationships extracted from
// their foreign keys, both in declaration order.
type Schema struct {
	Tables        []Table
	Relationships []Relationship
}

// column returns the table's column with the given name, matched
// case-insensitively the way MySQL resolves column identifiers.
func (t *Table) column(name string) *Column {
	for i := range t.Columns {
		if equalIdent(t.Columns[i].Name, name) {
			return &t.Columns[i]
		}
	}
	return nil
}
