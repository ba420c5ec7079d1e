package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
log_level: debug
log_format: json
storage:
  type: gcs
  bucket: tracks
  object_prefix: library
triplets:
  per_anchor: 5
  allow_same: true
  seed: 7
labelling:
  backend: badger
  badger_dir: /tmp/matches
download:
  workers: 8
  timeout: 30s
`)

	cfg, err := Load(configPath)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "gcs", cfg.Storage.Type)
	assert.Equal(t, "tracks", cfg.Storage.Bucket)
	assert.Equal(t, "library", cfg.Storage.ObjectPrefix)
	assert.Equal(t, 5, cfg.Triplets.PerAnchor)
	assert.True(t, cfg.Triplets.AllowSame)
	require.NotNil(t, cfg.Triplets.Seed)
	assert.Equal(t, uint64(7), *cfg.Triplets.Seed)
	assert.Equal(t, "badger", cfg.Labelling.Backend)
	assert.Equal(t, "/tmp/matches", cfg.Labelling.BadgerDir)
	assert.Equal(t, 8, cfg.Download.Workers)
	assert.Equal(t, 30*time.Second, cfg.Download.Timeout)

	// untouched sections keep their defaults
	assert.Equal(t, 10, cfg.Ranker.TopK)
	assert.Equal(t, "discogs.db", cfg.Discogs.Database)
	assert.Equal(t, "output", cfg.Storage.OutputDir)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 3, cfg.Triplets.PerAnchor)
	assert.Nil(t, cfg.Triplets.Seed)
	assert.Equal(t, "csv", cfg.Labelling.Backend)
	require.NotNil(t, cfg.Labelling.Seed)
	assert.Equal(t, DefaultLabellingSeed, *cfg.Labelling.Seed)
	assert.Equal(t, 4, cfg.Download.Workers)
	assert.Equal(t, 2*time.Minute, cfg.Download.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadZeroLabellingSeed(t *testing.T) {
	cfg, err := Load(writeConfig(t, "labelling:\n  seed: 0\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Labelling.Seed)
	assert.Equal(t, uint64(0), *cfg.Labelling.Seed)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(DefaultPath)

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadNonExistentFile(t *testing.T) {
	// Test loading a non-existent config file
	cfg, err := Load("non_existent_file.yaml")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
log_level: debug
invalid_yaml: [this is not valid yaml
`))

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "unknown log level", content: "log_level: loud\n", field: "LogLevel"},
		{name: "unknown storage type", content: "storage:\n  type: s3\n", field: "Type"},
		{name: "gcs without bucket", content: "storage:\n  type: gcs\n", field: "Bucket"},
		{name: "negative per anchor", content: "triplets:\n  per_anchor: -1\n", field: "PerAnchor"},
		{name: "badger without dir", content: "labelling:\n  backend: badger\n", field: "BadgerDir"},
		{name: "unknown backend", content: "labelling:\n  backend: redis\n", field: "Backend"},
		{name: "too many workers", content: "download:\n  workers: 1000\n", field: "Workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
