package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierlab/ranklist/internal/config"
)

func TestLoadDefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("RANKLIST_TOKEN_SECRET", "s3cret")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "ranklist.db", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.TokenSecret)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	t.Setenv("RANKLIST_ADDR", ":9999")
	t.Setenv("RANKLIST_TOKEN_SECRET", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"addr: \":3000\"\ndb_path: /tmp/list.db\ntoken_secret: filesecret\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr, "env wins over file")
	assert.Equal(t, "/tmp/list.db", cfg.DBPath)
	assert.Equal(t, "filesecret", cfg.TokenSecret)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("RANKLIST_TOKEN_SECRET", "")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	t.Setenv("RANKLIST_TOKEN_SECRET", "s3cret")

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
}
