package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("VITE_GEMINI_API_KEY", "")
	t.Setenv("AURA_LOCALE", "")
	t.Setenv("AURA_DATABASE", "")
	t.Setenv("AURA_MODEL", "")
	return dir
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	dir := isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Countdown)
	assert.Equal(t, 53, cfg.FanCards)
	assert.Equal(t, "gemini-2.0-flash-lite", cfg.Model)
	assert.Len(t, cfg.AuthSecret, 64)
	assert.Equal(t, filepath.Join(dir, "data", "aura", "saved.db"), cfg.Database)
	assert.FileExists(t, filepath.Join(dir, "config", "aura", "config.toml"))

	again, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg.AuthSecret, again.AuthSecret, "secret persists")
}

func TestLoadConfigAddsMissingSecret(t *testing.T) {
	isolate(t)
	path := GetConfigFilePath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("locale = \"es\"\ncountdown = 3\n"), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Locale)
	assert.Equal(t, 3, cfg.Countdown)
	assert.NotEmpty(t, cfg.AuthSecret)

	var onDisk Config
	_, err = toml.DecodeFile(path, &onDisk)
	require.NoError(t, err)
	assert.Equal(t, cfg.AuthSecret, onDisk.AuthSecret)
}

func TestBrokenConfig(t *testing.T) {
	isolate(t)
	path := GetConfigFilePath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("locale = "), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("GEMINI_API_KEY wins over the legacy name", func(t *testing.T) {
		isolate(t)
		t.Setenv("GEMINI_API_KEY", "new")
		t.Setenv("VITE_GEMINI_API_KEY", "old")

		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "new", cfg.APIKey)
	})

	t.Run("legacy key is accepted", func(t *testing.T) {
		isolate(t)
		t.Setenv("VITE_GEMINI_API_KEY", "old")

		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "old", cfg.APIKey)
	})

	t.Run("locale database and model", func(t *testing.T) {
		isolate(t)
		t.Setenv("AURA_LOCALE", "zh-TW")
		t.Setenv("AURA_DATABASE", "/tmp/x.db")
		t.Setenv("AURA_MODEL", "gemini-2.5-flash")

		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "zh-TW", cfg.Locale)
		assert.Equal(t, "/tmp/x.db", cfg.Database)
		assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	})
}

func TestLoadReadsEnvFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(GetEnvFilePath()), 0755))
	require.NoError(t, os.WriteFile(GetEnvFilePath(), []byte("GEMINI_API_KEY=from-dotenv\n"), 0600))
	// godotenv does not override variables that are set, even to ""
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))
	t.Cleanup(func() { os.Unsetenv("GEMINI_API_KEY") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.APIKey)
}

func TestSetLocale(t *testing.T) {
	isolate(t)
	require.NoError(t, SetLocale("zh_tw"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "zh-TW", cfg.Locale)
}

func TestResolvedLocale(t *testing.T) {
	isolate(t)
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "es_ES.UTF-8")

	assert.Equal(t, "es-ES", (&Config{}).ResolvedLocale())
	assert.Equal(t, "zh-TW", (&Config{Locale: "zh_TW"}).ResolvedLocale())

	t.Setenv("LANG", "C")
	assert.Equal(t, "en", (&Config{}).ResolvedLocale())
}

func TestRedacted(t *testing.T) {
	assert.Equal(t, "(not set)", Redacted(""))
	assert.Equal(t, "***", Redacted("abc"))
	assert.Equal(t, "*****6789", Redacted("123456789"))
}
