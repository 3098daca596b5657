package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "source", cfg.SourceDir)
	assert.Equal(t, "Master/AC_Master.xlsx", cfg.MasterPath)
	assert.Equal(t, "ocr_data.db", cfg.DBPath)
	assert.Equal(t, "tesseract", cfg.OCR.Engine)
	assert.Equal(t, "tha+eng", cfg.OCR.Language)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source_dir: /data/advices
ocr:
  engine: typhoon
  typhoon_api_key: test-key
server:
  port: "9090"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/advices", cfg.SourceDir)
	assert.Equal(t, "typhoon", cfg.OCR.Engine)
	assert.Equal(t, "test-key", cfg.OCR.TyphoonAPIKey)
	assert.Equal(t, "9090", cfg.Server.Port)

	// Untouched keys keep their defaults.
	assert.Equal(t, "Master/AC_Master.xlsx", cfg.MasterPath)
	assert.Equal(t, "ocr_data.db", cfg.DBPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source_dir: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
