package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.InDelta(t, 0.2, cfg.Selection.Threshold, 1e-12)
	assert.Equal(t, 15000, cfg.Selection.MaxEvaluations)
	assert.InDelta(t, 0.3, cfg.Selection.Sigma, 1e-12)
	assert.Equal(t, int64(1), cfg.Selection.Seed)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
selection:
  sigma: 0.5
  max_evaluations: 100
redis:
  enabled: true
  addr: "redis:6379"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden values.
	assert.InDelta(t, 0.5, cfg.Selection.Sigma, 1e-12)
	assert.Equal(t, 100, cfg.Selection.MaxEvaluations)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Defaults retained where the file is silent.
	assert.InDelta(t, 0.2, cfg.Selection.Threshold, 1e-12)
	assert.Equal(t, 8, cfg.Dataset.CacheSize)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad yaml", body: ":\n  - ["},
		{name: "zero sigma", body: "selection:\n  sigma: 0\n"},
		{name: "negative budget", body: "selection:\n  max_evaluations: -5\n"},
		{name: "threshold out of range", body: "selection:\n  threshold: 1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
