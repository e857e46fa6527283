package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the TOML-driven rendering options. Every field has a usable
// default so the config file is optional.
type Config struct {
	ProjectName      string `toml:"project_name"`
	DatabaseType     string `toml:"database_type"`
	GenerationNote   string `toml:"generation_note"`
	TableOptionNotes bool   `toml:"table_option_notes"`      // surface ENGINE/CHARSET in table notes
	IndexNamePrefix  string `toml:"index_name_prefix"`       // prefix for synthesized index names
	KeepIntWidths    bool   `toml:"keep_int_display_widths"` // keep int(11)-style display widths
}

func defaultConfig() *Config {
	return &Config{
		ProjectName:      "database",
		DatabaseType:     "MySQL",
		GenerationNote:   "Generated from MySQL CREATE TABLE statements",
		TableOptionNotes: true,
		IndexNamePrefix:  "idx",
	}
}

// loadConfig reads a TOML config file and returns a Config with defaults
// applied. Unknown keys are an error, not a silent no-op.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	cfg.ProjectName = strings.TrimSpace(cfg.ProjectName)
	if cfg.ProjectName == "" {
		return nil, fmt.Errorf("project_name must not be empty")
	}
	if strings.ContainsAny(cfg.ProjectName, " \t{}") {
		return nil, fmt.Errorf("project_name %q is not a valid DBML identifier", cfg.ProjectName)
	}
	if cfg.IndexNamePrefix == "" {
		return nil, fmt.Errorf("index_name_prefix must not be empty")
	}
	return cfg, nil
}
