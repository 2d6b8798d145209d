package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Session.Expiration)
	assert.Equal(t, time.Duration(0), cfg.Tiers.Premium)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Same(t, cfg, AppConfig)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifieds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 9000
store:
  driver: Badger
  badger:
    in_memory: true
tiers:
  premium: 48h
`), 0o600))
	t.Setenv("CLASSIFIEDS_SERVER_PORT", "9100")
	t.Setenv("CLASSIFIEDS_LOGGER_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port, "env wins over file")
	assert.Equal(t, "127.0.0.1:9100", cfg.Addr())
	assert.Equal(t, "badger", cfg.Store.Driver)
	assert.True(t, cfg.Store.Badger.InMemory)
	assert.Equal(t, 48*time.Hour, cfg.Tiers.Premium)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("CLASSIFIEDS_SERVER_PORT", "70000")
	_, err := LoadConfig("")
	assert.Error(t, err)

	t.Setenv("CLASSIFIEDS_SERVER_PORT", "8080")
	t.Setenv("CLASSIFIEDS_TIERS_VIP", "-1h")
	_, err = LoadConfig("")
	assert.Error(t, err)

	t.Setenv("CLASSIFIEDS_TIERS_VIP", "")
	t.Setenv("CLASSIFIEDS_TIERS_FREE", "-1h")
	_, err = LoadConfig("")
	assert.Error(t, err)
	t.Setenv("CLASSIFIEDS_TIERS_FREE", "")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")
}
