// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pure-import/pkg/types"
)

const sampleConfig = `
pure:
  base_url: https://staging.research-portal.example.org/ws/api
  api_key: file-key
  timeout: 15s
directory:
  driver: sqlite3
  dsn: /var/lib/pure-import/persons.db
import:
  visibility_key: CAMPUS
log:
  level: debug
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pure-import.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.research-portal.example.org/ws/api/", cfg.Pure.BaseURL)
	assert.Equal(t, "file-key", cfg.Pure.APIKey)
	assert.Equal(t, 15*time.Second, cfg.Pure.Timeout)
	assert.Equal(t, "pure-import/0.1", cfg.Pure.UserAgent)
	assert.Equal(t, 5, cfg.Pure.MaxRetries)
	assert.Equal(t, "/var/lib/pure-import/persons.db", cfg.Directory.DSN)
	assert.Equal(t, "CAMPUS", cfg.Import.VisibilityKey)
	assert.Equal(t, "forApproval", cfg.Import.WorkflowStep)
	assert.Equal(t, time.Second, cfg.OpenAlex.Delay)
	assert.True(t, cfg.OpenAlex.PeerReview)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, Validate(cfg))
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pure-import.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	t.Setenv("PURE_IMPORT_PURE_API_KEY", "env-key")
	t.Setenv("PURE_IMPORT_DIRECTORY_DRIVER", "pgx")
	t.Setenv("PURE_IMPORT_DIRECTORY_DSN", "postgres://pure@localhost/persons")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Pure.APIKey)
	assert.Equal(t, "pgx", cfg.Directory.Driver)
	assert.Equal(t, "postgres://pure@localhost/persons", cfg.Directory.DSN)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	err := Validate(&types.Config{Directory: types.DirectoryConfig{Driver: "mysql"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pure.base_url is required")
	assert.Contains(t, err.Error(), "pure.api_key is required")
	assert.Contains(t, err.Error(), `directory.driver "mysql"`)
	assert.Contains(t, err.Error(), "directory.dsn is required")
}
