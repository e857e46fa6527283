package main

import (
	"regexp"
	"strings"
)

var tableHeaderRe = regexp.MustCompile(
	"(?is)^\\s*CREATE\\s+(?:TEMPORARY\\s+)?TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?(`(?:[^`]|``)+`|[A-Za-z0-9_$.]+)")

// clauseKind is the closed set of top-level items a CREATE TABLE body can
// contain. Every item is classified exactly once and handled exhaustively.
type clauseKind int

const (
	clauseColumn clauseKind = iota
	clausePrimaryKey
	clauseUnique
	clauseIndex
	clauseForeignKey
	clauseCheck
)

// parseCreateTable parses one CREATE TABLE statement into a Table.
// stmtIndex is 1-based and used only for error context.
func parseCreateTable(stmt string, stmtIndex int) (Table, error) {
	m := tableHeaderRe.FindStringSubmatch(stmt)
	if m == nil {
		return Table{}, convErr(ErrMalformedStatement, stmtIndex, "", "cannot read table name")
	}
	t := Table{Name: unquoteIdent(m[1])}

	open := strings.IndexByte(stmt[len(m[0]):], '(')
	if open < 0 {
		return t, convErr(ErrMalformedStatement, stmtIndex, t.Name, "missing column list")
	}
	open += len(m[0])
	close, ok := matchParen(stmt, open)
	if !ok {
		return t, convErr(ErrMalformedStatement, stmtIndex, t.Name, "unbalanced parenthesis in column list")
	}

	// Key and index clauses are parsed in place but resolved against the
	// column set only after the whole item list has been walked: MySQL
	// allows a constraint to be declared before the columns it names.
	type pendingKey struct {
		kind clauseKind
		cols []string // primary-key column list
		idx  Index    // unique/plain index
	}
	var pendingKeys []pendingKey
	var pendingChecks []string

	for _, item := range splitTopLevel(stmt[open+1 : close]) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		rest, consName := stripConstraintName(item)
		switch kind := classifyClause(rest); kind {
		case clausePrimaryKey:
			cols, err := parseKeyColumns(rest)
			if err != nil {
				return t, convErr(ErrMalformedStatement, stmtIndex, t.Name, "%v", err)
			}
			pendingKeys = append(pendingKeys, pendingKey{kind: kind, cols: cols})
		case clauseUnique, clauseIndex:
			idxKind := IndexPlain
			if kind == clauseUnique {
				idxKind = IndexUnique
			}
			idx, err := parseIndexClause(rest, idxKind)
			if err != nil {
				return t, convErr(ErrMalformedStatement, stmtIndex, t.Name, "%v", err)
			}
			if idx.Name == "" {
				idx.Name = consName
			}
			pendingKeys = append(pendingKeys, pendingKey{kind: kind, idx: idx})
		case clauseForeignKey:
			fk, err := parseForeignKeyClause(rest)
			if err != nil {
				return t, convErr(ErrMalformedStatement, stmtIndex, t.Name, "%v", err)
			}
			if fk.Name == "" {
				fk.Name = consName
			}
			t.ForeignKeys = append(t.ForeignKeys, fk)
		case clauseCheck:
			expr, err := parseCheckClause(rest)
			if err != nil {
				return t, convErr(ErrMalformedStatement, stmtIndex, t.Name, "%v", err)
			}
			pendingChecks = append(pendingChecks, expr)
		case clauseColumn:
			col, fk, err := parseColumnClause(item)
			if err != nil {
				return t, convErr(ErrMalformedStatement, stmtIndex, t.Name, "%v", err)
			}
			t.Columns = append(t.Columns, col)
			if fk != nil {
				t.ForeignKeys = append(t.ForeignKeys, *fk)
			}
		}
	}

	if len(t.Columns) == 0 {
		return t, convErr(ErrMalformedStatement, stmtIndex, t.Name, "no column definitions")
	}

	for _, pk := range pendingKeys {
		var err error
		if pk.kind == clausePrimaryKey {
			err = t.applyPrimaryKey(pk.cols)
		} else {
			err = t.addIndex(pk.idx)
		}
		if err != nil {
			return t, convErr(ErrMalformedStatement, stmtIndex, t.Name, "%v", err)
		}
	}

	autoIncr := 0
	for i := range t.Columns {
		if t.Columns[i].AutoIncrement {
			autoIncr++
		}
	}
	if autoIncr > 1 {
		return t, convErr(ErrMalformedStatement, stmtIndex, t.Name,
			"%d auto_increment columns (at most one allowed)", autoIncr)
	}

	// Table-level CHECKs attach to the first column mentioned in the
	// expression, or to the table itself when none matches.
	for _, expr := range pendingChecks {
		t.attachCheck(expr)
	}

	parseTableOptions(&t, stmt[close+1:])
	return t, nil
}

// classifyClause decides which clause kind a body item is, after the
// optional CONSTRAINT prefix has been stripped. Classification keys on the
// first whole word, so a column named index_no is still a column. Anything
// not starting with a constraint keyword is a column definition.
func classifyClause(item string) clauseKind {
	s := &itemScanner{src: item}
	first, _ := s.word()
	second := s.peekWord()
	switch strings.ToUpper(first) {
	case "PRIMARY":
		if strings.EqualFold(second, "KEY") {
			return clausePrimaryKey
		}
	case "UNIQUE":
		return clauseUnique
	case "FOREIGN":
		if strings.EqualFold(second, "KEY") {
			return clauseForeignKey
		}
	case "CHECK":
		return clauseCheck
	case "KEY", "INDEX", "FULLTEXT", "SPATIAL":
		return clauseIndex
	}
	return clauseColumn
}

// stripConstraintName removes a leading "CONSTRAINT [name]" and returns the
// remainder plus the constraint name, when one was given.
func stripConstraintName(item string) (rest, name string) {
	s := &itemScanner{src: item}
	if !strings.EqualFold(s.peekWord(), "CONSTRAINT") {
		return item, ""
	}
	s.word()
	// The name is optional: CONSTRAINT may be immediately followed by the
	// constraint keyword itself.
	switch strings.ToUpper(s.peekWord()) {
	case "PRIMARY", "UNIQUE", "FOREIGN", "CHECK":
		return strings.TrimSpace(item[s.pos:]), ""
	}
	name, _ = s.ident()
	return strings.TrimSpace(item[s.pos:]), name
}

// parseColumnClause parses one column definition item. An inline
// REFERENCES clause produces a single-column ForeignKey as well.
func parseColumnClause(item string) (Column, *ForeignKey, error) {
	s := &itemScanner{src: item}

	name, ok := s.ident()
	if !ok {
		return Column{}, nil, errf("invalid column definition %q", item)
	}
	typeName, ok := s.word()
	if !ok {
		return Column{}, nil, errf("column %s has no data type", name)
	}
	if strings.EqualFold(typeName, "DOUBLE") && strings.EqualFold(s.peekWord(), "PRECISION") {
		s.word()
	}

	col := Column{Name: name, Nullable: true, Type: DataType{Name: strings.ToLower(typeName)}}
	if params, ok := s.parenGroup(); ok {
		col.Type.Params = strings.TrimSpace(params)
	}

	var fk *ForeignKey
	for !s.done() {
		kw, ok := s.word()
		if !ok {
			return col, nil, errf("unexpected %q in column %s", s.src[s.pos:], name)
		}
		switch strings.ToUpper(kw) {
		case "NOT":
			switch strings.ToUpper(s.peekWord()) {
			case "NULL":
				s.word()
				col.Nullable = false
			case "ENFORCED":
				s.word()
			default:
				return col, nil, errf("column %s: NOT must be followed by NULL", name)
			}
		case "NULL":
			col.Nullable = true
		case "PRIMARY":
			if strings.EqualFold(s.peekWord(), "KEY") {
				s.word()
			}
			col.PrimaryKey = true
			col.Nullable = false
		case "KEY":
			// a bare KEY on a column definition means PRIMARY KEY in MySQL
			col.PrimaryKey = true
			col.Nullable = false
		case "UNIQUE":
			if strings.EqualFold(s.peekWord(), "KEY") {
				s.word()
			}
			col.Unique = true
		case "AUTO_INCREMENT":
			col.AutoIncrement = true
		case "DEFAULT":
			d, err := parseDefaultValue(s)
			if err != nil {
				return col, nil, errf("column %s: %v", name, err)
			}
			col.Default = &d
		case "ON":
			// TIMESTAMP ... ON UPDATE CURRENT_TIMESTAMP: kept as one
			// composite default expression, never split in two.
			if !strings.EqualFold(s.peekWord(), "UPDATE") {
				return col, nil, errf("column %s: unexpected ON clause", name)
			}
			s.word()
			expr, ok := s.word()
			if !ok {
				return col, nil, errf("column %s: ON UPDATE missing expression", name)
			}
			expr = strings.ToUpper(expr)
			if g, ok := s.parenGroup(); ok {
				expr += "(" + strings.TrimSpace(g) + ")"
			}
			if col.Default != nil {
				col.Default.Kind = DefaultExpr
				col.Default.Value = formatBare(col.Default) + " ON UPDATE " + expr
			} else {
				col.Default = &Default{Kind: DefaultExpr, Value: "ON UPDATE " + expr}
			}
		case "COMMENT":
			v, ok := s.quoted()
			if !ok {
				return col, nil, errf("column %s: COMMENT requires a quoted string", name)
			}
			col.Comment = v
		case "CHECK":
			g, ok := s.parenGroup()
			if !ok {
				return col, nil, errf("column %s: CHECK requires a parenthesized expression", name)
			}
			col.Check = strings.TrimSpace(g)
		case "REFERENCES":
			ref, err := parseReferences(s)
			if err != nil {
				return col, nil, errf("column %s: %v", name, err)
			}
			ref.Columns = []string{name}
			fk = &ref
		case "UNSIGNED", "ZEROFILL", "BINARY", "VISIBLE", "INVISIBLE":
			// storage/display attributes with no DBML equivalent
		case "CHARACTER":
			if strings.EqualFold(s.peekWord(), "SET") {
				s.word()
				s.ident()
			}
		case "COLLATE":
			s.ident()
		case "GENERATED":
			// GENERATED ALWAYS AS (expr) [STORED|VIRTUAL]
			for strings.EqualFold(s.peekWord(), "ALWAYS") || strings.EqualFold(s.peekWord(), "AS") {
				s.word()
			}
			s.parenGroup()
		case "AS":
			s.parenGroup()
		case "ENFORCED":
		default:
			// unrecognized attribute: skipped permissively, like unknown
			// table options
		}
	}
	return col, fk, nil
}

// parseDefaultValue reads the value after DEFAULT and classifies it for
// rendering: string literal, number, boolean, NULL, or raw expression.
func parseDefaultValue(s *itemScanner) (Default, error) {
	if v, ok := s.quoted(); ok {
		return Default{Kind: DefaultLiteral, Value: v}, nil
	}
	if g, ok := s.parenGroup(); ok {
		return Default{Kind: DefaultExpr, Value: "(" + strings.TrimSpace(g) + ")"}, nil
	}

	sign := ""
	if c := s.peek(); c == '-' || c == '+' {
		sign = string(c)
		s.pos++
	}
	w, ok := s.word()
	if !ok {
		return Default{}, errf("DEFAULT is missing a value")
	}
	w = sign + w

	// bit/hex literals: b'0', x'1F'
	if strings.EqualFold(w, "b") || strings.EqualFold(w, "x") {
		if v, ok := s.quoted(); ok {
			return Default{Kind: DefaultExpr, Value: w + "'" + v + "'"}, nil
		}
	}

	switch strings.ToUpper(w) {
	case "NULL":
		return Default{Kind: DefaultNull, Value: "null"}, nil
	case "TRUE", "FALSE":
		return Default{Kind: DefaultBool, Value: strings.ToLower(w)}, nil
	}
	if g, ok := s.parenGroup(); ok {
		// function-call default, e.g. uuid(), CURRENT_TIMESTAMP(6)
		return Default{Kind: DefaultExpr, Value: w + "(" + strings.TrimSpace(g) + ")"}, nil
	}
	if isNumericLiteral(w) {
		return Default{Kind: DefaultNumber, Value: w}, nil
	}
	if isTimeKeyword(w) {
		return Default{Kind: DefaultExpr, Value: strings.ToUpper(w)}, nil
	}
	return Default{Kind: DefaultExpr, Value: w}, nil
}

func isTimeKeyword(w string) bool {
	switch strings.ToUpper(w) {
	case "CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME", "NOW",
		"LOCALTIME", "LOCALTIMESTAMP", "UTC_TIMESTAMP":
		return true
	}
	return false
}

// parseKeyColumns parses "PRIMARY KEY [USING ...] (col, ...)".
func parseKeyColumns(item string) ([]string, error) {
	s := &itemScanner{src: item}
	for s.peek() != '(' {
		w, ok := s.word()
		if !ok {
			return nil, errf("invalid PRIMARY KEY definition %q", item)
		}
		switch strings.ToUpper(w) {
		case "PRIMARY", "KEY", "USING", "BTREE", "HASH":
		default:
			return nil, errf("unexpected %q in PRIMARY KEY definition", w)
		}
	}
	raw, ok := s.parenGroup()
	if !ok {
		return nil, errf("PRIMARY KEY is missing its column list")
	}
	return parseIdentList(raw)
}

// parseIndexClause parses "[UNIQUE] [INDEX|KEY] [name] [USING ...] (cols)".
// FULLTEXT/SPATIAL markers are index-type hints and are dropped.
func parseIndexClause(item string, kind IndexKind) (Index, error) {
	s := &itemScanner{src: item}
	idx := Index{Kind: kind}
	for s.peek() != '(' {
		w, ok := s.ident()
		if !ok {
			return idx, errf("invalid index definition %q", item)
		}
		switch strings.ToUpper(w) {
		case "UNIQUE", "INDEX", "KEY", "FULLTEXT", "SPATIAL":
		case "USING":
			s.word()
		default:
			idx.Name = w
		}
	}
	raw, ok := s.parenGroup()
	if !ok {
		return idx, errf("index %s is missing its column list", idx.Name)
	}
	cols, err := parseIdentList(raw)
	if err != nil {
		return idx, err
	}
	idx.Columns = cols
	return idx, nil
}

// parseForeignKeyClause parses
// "FOREIGN KEY [name] (cols) REFERENCES table (cols) [ON DELETE ...] [ON UPDATE ...]".
func parseForeignKeyClause(item string) (ForeignKey, error) {
	s := &itemScanner{src: item}
	var fk ForeignKey
	for s.peek() != '(' {
		w, ok := s.ident()
		if !ok {
			return fk, errf("invalid foreign key definition %q", item)
		}
		switch strings.ToUpper(w) {
		case "FOREIGN", "KEY":
		default:
			fk.Name = w
		}
	}
	raw, ok := s.parenGroup()
	if !ok {
		return fk, errf("foreign key is missing its column list")
	}
	cols, err := parseIdentList(raw)
	if err != nil {
		return fk, err
	}
	fk.Columns = cols

	if !strings.EqualFold(s.peekWord(), "REFERENCES") {
		return fk, errf("foreign key is missing REFERENCES")
	}
	s.word()
	ref, err := parseReferences(s)
	if err != nil {
		return fk, err
	}
	fk.RefTable = ref.RefTable
	fk.RefColumns = ref.RefColumns
	fk.OnDelete = ref.OnDelete
	fk.OnUpdate = ref.OnUpdate
	return fk, nil
}

// parseReferences reads "table (cols) [MATCH ...] [ON DELETE|UPDATE action]"
// with the REFERENCES keyword already consumed.
func parseReferences(s *itemScanner) (ForeignKey, error) {
	var fk ForeignKey
	table, ok := s.ident()
	if !ok {
		return fk, errf("REFERENCES is missing a table name")
	}
	// schema-qualified names keep only the table part
	if i := strings.LastIndexByte(table, '.'); i >= 0 {
		table = table[i+1:]
	}
	if s.peek() == '.' {
		s.pos++
		if table, ok = s.ident(); !ok {
			return fk, errf("REFERENCES has a dangling qualifier")
		}
	}
	fk.RefTable = table

	raw, ok := s.parenGroup()
	if !ok {
		return fk, errf("REFERENCES %s is missing its column list", table)
	}
	cols, err := parseIdentList(raw)
	if err != nil {
		return fk, err
	}
	fk.RefColumns = cols

	for !s.done() {
		w, ok := s.word()
		if !ok {
			return fk, errf("unexpected %q after REFERENCES", s.src[s.pos:])
		}
		switch strings.ToUpper(w) {
		case "MATCH":
			s.word()
		case "ON":
			event, _ := s.word()
			action, err := parseReferentialAction(s)
			if err != nil {
				return fk, err
			}
			switch strings.ToUpper(event) {
			case "DELETE":
				fk.OnDelete = action
			case "UPDATE":
				fk.OnUpdate = action
			default:
				return fk, errf("unexpected ON %s in foreign key", event)
			}
		default:
			return fk, errf("unexpected %q after REFERENCES", w)
		}
	}
	return fk, nil
}

// parseReferentialAction normalizes CASCADE | SET NULL | SET DEFAULT |
// RESTRICT | NO ACTION to lower case.
func parseReferentialAction(s *itemScanner) (string, error) {
	w, ok := s.word()
	if !ok {
		return "", errf("missing referential action")
	}
	switch strings.ToUpper(w) {
	case "CASCADE":
		return "cascade", nil
	case "RESTRICT":
		return "restrict", nil
	case "SET":
		next, _ := s.word()
		switch strings.ToUpper(next) {
		case "NULL":
			return "set null", nil
		case "DEFAULT":
			return "set default", nil
		}
		return "", errf("invalid referential action SET %s", next)
	case "NO":
		next, _ := s.word()
		if strings.EqualFold(next, "ACTION") {
			return "no action", nil
		}
		return "", errf("invalid referential action NO %s", next)
	}
	return "", errf("invalid referential action %s", w)
}

// parseCheckClause extracts the raw expression from "CHECK (expr)".
func parseCheckClause(item string) (string, error) {
	s := &itemScanner{src: item}
	if !strings.EqualFold(s.peekWord(), "CHECK") {
		return "", errf("invalid check constraint %q", item)
	}
	s.word()
	g, ok := s.parenGroup()
	if !ok {
		return "", errf("CHECK requires a parenthesized expression")
	}
	return strings.TrimSpace(g), nil
}

// parseIdentList parses a comma-separated column name list, dropping key
// length prefixes (col(10)) and ASC/DESC markers.
func parseIdentList(raw string) ([]string, error) {
	var cols []string
	for _, part := range splitTopLevel(raw) {
		s := &itemScanner{src: part}
		name, ok := s.ident()
		if !ok {
			return nil, errf("invalid column list %q", raw)
		}
		s.parenGroup() // MySQL prefix length, e.g. name(10)
		switch strings.ToUpper(s.peekWord()) {
		case "ASC", "DESC":
			s.word()
		}
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		return nil, errf("empty column list")
	}
	return cols, nil
}

// applyPrimaryKey merges an out-of-line PRIMARY KEY into the column flags.
// A key declared both inline and out-of-line is not a conflict: both
// contribute to the same set. Composite keys also get an indexes entry so
// DBML shows the full key.
func (t *Table) applyPrimaryKey(cols []string) error {
	for _, name := range cols {
		col := t.column(name)
		if col == nil {
			return errf("primary key references unknown column %q", name)
		}
		col.PrimaryKey = true
		col.Nullable = false
	}
	if len(cols) > 1 {
		t.Indexes = append(t.Indexes, Index{Kind: IndexPrimary, Columns: cols})
	}
	return nil
}

// addIndex validates that the index only names existing columns.
func (t *Table) addIndex(idx Index) error {
	for _, name := range idx.Columns {
		if t.column(name) == nil {
			return errf("index %s references unknown column %q", idx.Name, name)
		}
	}
	t.Indexes = append(t.Indexes, idx)
	return nil
}

// attachCheck pins a table-level CHECK expression to the first column whose
// name appears in it, falling back to the table when none does.
func (t *Table) attachCheck(expr string) {
	s := &itemScanner{src: expr}
	for !s.done() {
		if w, ok := s.ident(); ok {
			if col := t.column(w); col != nil {
				if col.Check != "" {
					col.Check += "; " + expr
				} else {
					col.Check = expr
				}
				return
			}
			continue
		}
		s.pos++
	}
	if t.Check != "" {
		t.Check += "; " + expr
	} else {
		t.Check = expr
	}
}

// parseTableOptions reads the options after the closing parenthesis
// (ENGINE=, DEFAULT CHARSET=, COMMENT=, ...). Unrecognized options are
// skipped, not rejected: they never affect DBML fidelity.
func parseTableOptions(t *Table, opts string) {
	s := &itemScanner{src: opts}
	for !s.done() {
		w, ok := s.word()
		if !ok {
			s.pos++
			continue
		}
		switch strings.ToUpper(w) {
		case "DEFAULT":
			// DEFAULT CHARSET / DEFAULT COLLATE: the next keyword carries it
		case "ENGINE":
			t.Engine = optionValue(s)
		case "CHARSET":
			t.Charset = optionValue(s)
		case "CHARACTER":
			if strings.EqualFold(s.peekWord(), "SET") {
				s.word()
				t.Charset = optionValue(s)
			}
		case "COMMENT":
			t.Comment = optionValue(s)
		default:
			optionValue(s)
		}
	}
}

func optionValue(s *itemScanner) string {
	if s.peek() == '=' {
		s.pos++
	}
	if v, ok := s.quoted(); ok {
		return v
	}
	v, _ := s.word()
	return v
}

// formatBare rebuilds the SQL-ish source text of a default so it can be
// folded into a composite ON UPDATE expression.
func formatBare(d *Default) string {
	if d.Kind == DefaultLiteral {
		return "'" + strings.ReplaceAll(d.Value, "'", "''") + "'"
	}
	return d.Value
}

func unquoteIdent(name string) string {
	if len(name) >= 2 && name[0] == '`' && name[len(name)-1] == '`' {
		return strings.ReplaceAll(name[1:len(name)-1], "``", "`")
	}
	return name
}
