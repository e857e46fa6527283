package main

import "log"

// assembleSchema collects parsed tables into a Schema. Table names must be
// unique; relationships are extracted in per-table foreign-key declaration
// order, then overall table order. No topological sort happens here: a
// foreign key may reference a table declared later (or not at all), which
// DBML tooling tolerates, so forward and external references pass through.
func assembleSchema(tables []Table) (*Schema, error) {
	seen := make(map[string]int, len(tables))
	for i, t := range tables {
		if prev, dup := seen[t.Name]; dup {
			return nil, convErr(ErrDuplicateTableName, i+1, t.Name,
				"already declared as statement %d", prev)
		}
		seen[t.Name] = i + 1
	}

	schema := &Schema{Tables: tables}
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			if len(fk.Columns) != len(fk.RefColumns) {
				return nil, convErr(ErrStructuralMismatch, 0, t.Name,
					"foreign key %s has %d local columns but %d referenced columns",
					fkLabel(fk), len(fk.Columns), len(fk.RefColumns))
			}
			for _, name := range fk.Columns {
				if t.column(name) == nil {
					return nil, convErr(ErrStructuralMismatch, 0, t.Name,
						"foreign key %s uses unknown local column %q", fkLabel(fk), name)
				}
			}
			schema.Relationships = append(schema.Relationships, Relationship{
				FromTable:   t.Name,
				FromColumns: fk.Columns,
				ToTable:     fk.RefTable,
				ToColumns:   fk.RefColumns,
				OnDelete:    fk.OnDelete,
				OnUpdate:    fk.OnUpdate,
			})
		}
	}
	log.Printf("assembled %d tables, %d relationships", len(schema.Tables), len(schema.Relationships))
	return schema, nil
}

func fkLabel(fk ForeignKey) string {
	if fk.Name != "" {
		return fk.Name
	}
	return "(unnamed)"
}
