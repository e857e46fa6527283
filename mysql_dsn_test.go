package main

import (
	"strings"
	"testing"
)

func TestMySQLDSNWithReadOptions(t *testing.T) {
	dsn, dbName, err := mysqlDSNWithReadOptions("user:pass@tcp(localhost:3306)/shop")
	if err != nil {
		t.Fatalf("mysqlDSNWithReadOptions() error: %v", err)
	}
	if dbName != "shop" {
		t.Errorf("database name = %q, want shop", dbName)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("parseTime not enabled in %q", dsn)
	}
	if !strings.Contains(dsn, "interpolateParams=true") {
		t.Errorf("interpolateParams not enabled in %q", dsn)
	}
}

func TestMySQLDSNWithReadOptions_NoDatabase(t *testing.T) {
	_, _, err := mysqlDSNWithReadOptions("user:pass@tcp(localhost:3306)/")
	if err == nil || !strings.Contains(err.Error(), "must name a database") {
		t.Errorf("error = %v", err)
	}
}

func TestMySQLDSNWithReadOptions_Invalid(t *testing.T) {
	if _, _, err := mysqlDSNWithReadOptions("://not-a-dsn"); err == nil {
		t.Error("invalid dsn should be rejected")
	}
}
