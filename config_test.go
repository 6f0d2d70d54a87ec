package cahn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.False(t, cfg.GetBool("driver.dump_source"))
	assert.False(t, cfg.GetBool("driver.dump_tokens"))
	assert.False(t, cfg.GetBool("driver.dump_ast"))
	assert.False(t, cfg.GetBool("driver.dump_bytecode"))
	assert.False(t, cfg.GetBool("driver.gc_stats"))
	assert.True(t, cfg.GetBool("vm.collect_on_every_alloc"))
}

func TestConfigGetUnknownPathPanics(t *testing.T) {
	cfg := NewConfig()
	assert.Panics(t, func() { cfg.GetBool("driver.nonexistent") })
}

func TestConfigTypeMismatchPanics(t *testing.T) {
	cfg := NewConfig()
	assert.Panics(t, func() { cfg.GetInt("driver.dump_source") }, "reading a bool setting as an int must panic rather than coerce")
	assert.Panics(t, func() { cfg.SetInt("driver.dump_source", 1) }, "re-assigning a bool path to an int type must panic")
}

func TestConfigSetStringAndInt(t *testing.T) {
	cfg := NewConfig()
	cfg.SetString("app.name", "cahn")
	cfg.SetInt("app.version", 2)
	assert.Equal(t, "cahn", cfg.GetString("app.name"))
	assert.Equal(t, 2, cfg.GetInt("app.version"))
}

func TestConfigLoadFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cahn.toml")
	contents := `
[driver]
dump_tokens = true
gc_stats = true

[vm]
collect_on_every_alloc = false
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.GetBool("driver.dump_tokens"))
	assert.True(t, cfg.GetBool("driver.gc_stats"))
	assert.False(t, cfg.GetBool("vm.collect_on_every_alloc"))

	// fields absent from the file keep NewConfig's defaults
	assert.False(t, cfg.GetBool("driver.dump_source"))
	assert.False(t, cfg.GetBool("driver.dump_ast"))
}

func TestConfigLoadMissingFileErrors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}
