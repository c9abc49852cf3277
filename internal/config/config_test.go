package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	for _, key := range []string{"INSPECT_STORE", "INSPECT_DATA_DIR", "INSPECT_REPORT_DIR", "INSPECT_DEBUG", "DB_URI"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Store)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "./reports", cfg.ReportDir)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("INSPECT_STORE", "sqlite")
	t.Setenv("INSPECT_DEBUG", "true")
	t.Setenv("DB_NAME", "field")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "field", cfg.MongoDatabase)
}

func TestParseRejectsBadBool(t *testing.T) {
	t.Setenv("INSPECT_DEBUG", "sometimes")
	_, err := Parse()
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("INSPECT_REPORT_DIR", "")
	os.Unsetenv("INSPECT_REPORT_DIR")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("INSPECT_REPORT_DIR=/tmp/boiler-reports\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/boiler-reports", cfg.ReportDir)
	os.Unsetenv("INSPECT_REPORT_DIR")
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
