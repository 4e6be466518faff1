// Package config loads the process-level configuration cmd/dlsqld needs
// at startup: where the engine lives, which DDL statements bootstrap the
// catalog and compiled program, and how verbosely to log. Uses
// gopkg.in/yaml.v3, the standard way to unmarshal a YAML document into a
// config struct.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level document cmd/dlsqld reads before it can build a
// catalog, a compiler.Context, or a runtime.Dispatcher.
type Config struct {
	// Engine names the deductive engine process this instance dispatches
	// against. This core never dials it directly (engine.Engine is a
	// caller-supplied collaborator) — the address is here purely so
	// operators have one place to configure it and so it can be logged.
	Engine EngineConfig `yaml:"engine"`

	// DDLPath points at a file of semicolon-separated CREATE TABLE/CREATE
	// VIEW statements, replayed in order to build both the catalog and the
	// compiled program.
	DDLPath string `yaml:"ddl_path"`

	// LogLevel is one of debug, info, warn, error; empty defaults to info.
	LogLevel string `yaml:"log_level"`

	// ListenName is the name this instance registers its dispatcher under
	// via client.Register, and the name callers pass to sql.Open.
	ListenName string `yaml:"listen_name"`
}

// EngineConfig identifies the deductive engine collaborator.
type EngineConfig struct {
	Address string `yaml:"address"`
}

// Load reads and validates the YAML document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DDLPath == "" {
		return fmt.Errorf("config: ddl_path is required")
	}
	if c.ListenName == "" {
		return fmt.Errorf("config: listen_name is required")
	}
	if c.LogLevel != "" {
		if _, err := c.SlogLevel(); err != nil {
			return err
		}
	}
	return nil
}

// SlogLevel parses LogLevel into a slog.Level, defaulting to slog.LevelInfo
// when unset.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unrecognized log_level %q", c.LogLevel)
	}
}

// LoadDDL reads DDLPath and splits it into individual statements on ';',
// discarding blank entries — the ordered []string form both catalog.Load
// and compiler.TranslateDDL consume.
func (c *Config) LoadDDL() ([]string, error) {
	data, err := os.ReadFile(c.DDLPath)
	if err != nil {
		return nil, fmt.Errorf("config: reading ddl file %s: %w", c.DDLPath, err)
	}

	var stmts []string
	for _, raw := range strings.Split(string(data), ";") {
		stmt := strings.TrimSpace(raw)
		if stmt == "" {
			continue
		}
		stmts = append(stmts, stmt)
	}
	if len(stmts) == 0 {
		return nil, fmt.Errorf("config: ddl file %s contains no statements", c.DDLPath)
	}
	return stmts, nil
}
