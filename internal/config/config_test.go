package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Addr)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "data/panel.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PANEL_SERVER_ADDR", "127.0.0.1:4000")
	t.Setenv("PANEL_API_BASEURL", "https://auth.example.test/")
	t.Setenv("PANEL_API_TIMEOUT", "3s")
	t.Setenv("PANEL_LOG_LEVEL", "debug")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:4000", cfg.Server.Addr)
	assert.Equal(t, "https://auth.example.test", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_LegacyAPIURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_URL", "http://10.0.0.5:8000")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000", cfg.API.BaseURL)
}

func TestLoad_RejectsNonPositiveTimeout(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PANEL_API_TIMEOUT", "0s")

	_, err := load(viper.New())
	require.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database:\n  path: /tmp/other.db\n"), 0o600))

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nPANEL_TEST_A=\"from-file\"\nexport PANEL_TEST_B=b\ninvalid\n"), 0o600))

	t.Setenv("PANEL_TEST_A", "from-env")
	t.Setenv("PANEL_TEST_B", "")
	require.NoError(t, os.Unsetenv("PANEL_TEST_B"))

	loadDotEnv(path)
	t.Cleanup(func() { _ = os.Unsetenv("PANEL_TEST_B") })

	assert.Equal(t, "from-env", os.Getenv("PANEL_TEST_A"))
	assert.Equal(t, "b", os.Getenv("PANEL_TEST_B"))
}

func TestLoad_DefaultLogLevelOption(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := load(viper.New(), WithDefaultLogLevel("warn"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ConfiguredLogLevelBeatsDefaultOption(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: debug\n"), 0o600))

	cfg, err := load(viper.New(), WithDefaultLogLevel("warn"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	t.Setenv("PANEL_LOG_LEVEL", "error")
	cfg, err = load(viper.New(), WithDefaultLogLevel("warn"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}
