package main

import "strings"

// dbmlTypes maps MySQL base types to the DBML type vocabulary. Types not
// listed fall through lowercased, which the DBML tooling treats as a custom
// type name.
var dbmlTypes = map[string]string{
	"tinyint":   "int",
	"smallint":  "int",
	"mediumint": "int",
	"int":       "int",
	"integer":   "int",
	"bigint":    "bigint",

	"decimal": "decimal",
	"numeric": "decimal",
	"float":   "float",
	"double":  "double",
	"real":    "double",

	"char":       "varchar",
	"varchar":    "varchar",
	"tinytext":   "text",
	"text":       "text",
	"mediumtext": "text",
	"longtext":   "text",

	"binary":     "varchar",
	"varbinary":  "varchar",
	"tinyblob":   "text",
	"blob":       "text",
	"mediumblob": "text",
	"longblob":   "text",

	"date":      "date",
	"time":      "time",
	"datetime":  "datetime",
	"timestamp": "timestamp",
	"year":      "int",

	"boolean": "boolean",
	"bool":    "boolean",
	"json":    "json",
	"enum":    "varchar",
	"set":     "varchar",

	// spatial types have no DBML construct
	"geometry":           "text",
	"point":              "text",
	"linestring":         "text",
	"polygon":            "text",
	"multipoint":         "text",
	"multilinestring":    "text",
	"multipolygon":       "text",
	"geometrycollection": "text",
}

// mapDataType returns the DBML type for a parsed MySQL column type.
// Parameters are kept only where DBML readers expect them (varchar and
// decimal); integer display widths and ENUM/SET value lists are dropped
// here — the value list is preserved separately as a note.
func mapDataType(dt DataType, cfg *Config) string {
	name, ok := dbmlTypes[dt.Name]
	if !ok {
		name = strings.ToLower(dt.Name)
	}

	if dt.Params == "" {
		return name
	}
	switch name {
	case "varchar", "decimal":
		if dt.Name == "enum" || dt.Name == "set" {
			return name
		}
		return name + "(" + dt.Params + ")"
	case "int", "bigint":
		if cfg != nil && cfg.KeepIntWidths && isNumericLiteral(dt.Params) {
			return name + "(" + dt.Params + ")"
		}
	}
	return name
}
