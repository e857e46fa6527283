package main

import "log"

// Convert runs the full pipeline on a DDL blob: split into CREATE TABLE
// statements, parse each into a table, assemble the schema, render DBML.
// It is a pure function of its inputs — no state survives the call — so
// independent conversions may run concurrently.
func Convert(sqlText string, cfg *Config) (string, error) {
	stmts := splitStatements(sqlText)
	if len(stmts) == 0 {
		return "", &ConvertError{Kind: ErrEmptyInput}
	}
	log.Printf("found %d CREATE TABLE statements", len(stmts))

	tables := make([]Table, 0, len(stmts))
	for i, stmt := range stmts {
		t, err := parseCreateTable(stmt, i+1)
		if err != nil {
			return "", err
		}
		log.Printf("  parsed %s: %d columns, %d indexes, %d foreign keys",
			t.Name, len(t.Columns), len(t.Indexes), len(t.ForeignKeys))
		tables = append(tables, t)
	}

	schema, err := assembleSchema(tables)
	if err != nil {
		return "", err
	}
	return renderDBML(schema, cfg), nil
}
