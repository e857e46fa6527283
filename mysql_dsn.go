package main

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// mysqlDSNWithReadOptions normalizes a DSN for read-only DDL collection and
// returns it together with the database name it targets.
func mysqlDSNWithReadOptions(baseDSN string) (string, string, error) {
	cfg, err := mysql.ParseDSN(baseDSN)
	if err != nil {
		return "", "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	if cfg.DBName == "" {
		return "", "", fmt.Errorf("mysql dsn must name a database")
	}
	cfg.ParseTime = true
	cfg.InterpolateParams = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), cfg.DBName, nil
}
