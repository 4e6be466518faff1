package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlsql/dlsql/config"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadParsesValidDocument(t *testing.T) {
	t.Parallel()

	ddlPath := writeTemp(t, "schema.sql", "CREATE TABLE hosts (id integer, PRIMARY KEY (id));")
	cfgPath := writeTemp(t, "config.yaml", `
engine:
  address: "engine.local:9000"
ddl_path: `+ddlPath+`
log_level: debug
listen_name: primary
`)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "engine.local:9000", cfg.Engine.Address)
	assert.Equal(t, "primary", cfg.ListenName)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadRejectsMissingDDLPath(t *testing.T) {
	t.Parallel()

	cfgPath := writeTemp(t, "config.yaml", "listen_name: primary\n")
	_, err := config.Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadRejectsMissingListenName(t *testing.T) {
	t.Parallel()

	ddlPath := writeTemp(t, "schema.sql", "CREATE TABLE hosts (id integer, PRIMARY KEY (id));")
	cfgPath := writeTemp(t, "config.yaml", "ddl_path: "+ddlPath+"\n")
	_, err := config.Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadRejectsUnrecognizedLogLevel(t *testing.T) {
	t.Parallel()

	ddlPath := writeTemp(t, "schema.sql", "CREATE TABLE hosts (id integer, PRIMARY KEY (id));")
	cfgPath := writeTemp(t, "config.yaml", "ddl_path: "+ddlPath+"\nlisten_name: primary\nlog_level: verbose\n")
	_, err := config.Load(cfgPath)
	assert.Error(t, err)
}

func TestSlogLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadDDLSplitsOnSemicolonAndTrimsBlanks(t *testing.T) {
	t.Parallel()

	ddlPath := writeTemp(t, "schema.sql", `
CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id));

CREATE VIEW active_hosts AS SELECT DISTINCT * FROM hosts;
`)
	cfg := &config.Config{DDLPath: ddlPath}
	stmts, err := cfg.LoadDDL()
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "CREATE TABLE hosts")
	assert.Contains(t, stmts[1], "CREATE VIEW active_hosts")
}

func TestLoadDDLRejectsEmptyFile(t *testing.T) {
	t.Parallel()

	ddlPath := writeTemp(t, "schema.sql", "   \n  ")
	cfg := &config.Config{DDLPath: ddlPath}
	_, err := cfg.LoadDDL()
	assert.Error(t, err)
}
