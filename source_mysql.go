package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// collectMySQLDDL connects to a MySQL server and gathers the CREATE TABLE
// text of every base table in the DSN's database, in name order. The result
// goes through the exact same pipeline as file input, so the parser stays
// the single source of truth for what a table means. Nothing here executes
// or modifies anything on the server.
func collectMySQLDDL(dsn string) (string, error) {
	readDSN, dbName, err := mysqlDSNWithReadOptions(dsn)
	if err != nil {
		return "", err
	}

	db, err := sql.Open("mysql", readDSN)
	if err != nil {
		return "", fmt.Errorf("open mysql: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return "", fmt.Errorf("connect to mysql: %w", err)
	}

	names, err := listMySQLTables(db, dbName)
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	log.Printf("found %d base tables in %s", len(names), dbName)

	var b strings.Builder
	for _, name := range names {
		ddl, err := showCreateTable(db, name)
		if err != nil {
			return "", fmt.Errorf("show create table %s: %w", name, err)
		}
		b.WriteString(ddl)
		b.WriteString(";\n\n")
	}
	return b.String(), nil
}

func listMySQLTables(db *sql.DB, dbName string) ([]string, error) {
	rows, err := db.Query(
		`SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
		 WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		 ORDER BY TABLE_NAME`,
		dbName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func showCreateTable(db *sql.DB, table string) (string, error) {
	quoted := fmt.Sprintf("`%s`", strings.ReplaceAll(table, "`", "``"))
	var name, ddl string
	if err := db.QueryRow("SHOW CREATE TABLE " + quoted).Scan(&name, &ddl); err != nil {
		return "", err
	}
	return ddl, nil
}
