package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arcanaland/aura/internal/auth"
	"github.com/arcanaland/aura/internal/config"
	"github.com/arcanaland/aura/internal/explain"
	"github.com/arcanaland/aura/internal/store"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, key := range []string{"GEMINI_API_KEY", "VITE_GEMINI_API_KEY", "AURA_LOCALE", "AURA_DATABASE", "AURA_MODEL", "LC_ALL", "LC_MESSAGES"} {
		t.Setenv(key, "")
	}
	t.Setenv("LANG", "en_US.UTF-8")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)
	t.Cleanup(resetFlags)

	err := RootCmd.Execute()
	return out.String(), err
}

// resetFlags clears flag values that would otherwise leak between runs
func resetFlags() {
	catalogLocale = ""
	explainLocale = ""
	infoLocale = ""
	savedLocale = ""
	savedFull = false
	savedYes = false
	verbose = false
}

func TestInfoCommand(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "info", "how-to-ask")
	require.NoError(t, err)
	assert.Contains(t, out, "How to Ask")
	assert.NotContains(t, out, "How Aura Works")

	out, err = execute(t, "", "info", "--locale", "es")
	require.NoError(t, err)
	assert.Contains(t, out, "Cómo funciona Aura")

	_, err = execute(t, "", "info", "tarot")
	assert.ErrorContains(t, err, "unknown page")
}

func TestCatalogCommands(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "catalog", "ls", "--locale", "es")
	require.NoError(t, err)
	assert.Contains(t, out, "es (22 cards)")
	assert.Contains(t, out, "El Loco")

	out, err = execute(t, "", "catalog", "show", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "The Fool")
	assert.Contains(t, out, "Quote:")

	_, err = execute(t, "", "catalog", "show", "99")
	assert.ErrorContains(t, err, "out of range")

	out, err = execute(t, "", "catalog", "locales")
	require.NoError(t, err)
	assert.Contains(t, out, "* en (22 cards, bundled) [DEFAULT]")
	assert.Contains(t, out, "zh-TW (22 cards, bundled)")
}

func TestCatalogOverride(t *testing.T) {
	dir := setupEnv(t)
	catalogs := filepath.Join(dir, "data", "aura", "catalogs")
	require.NoError(t, os.MkdirAll(catalogs, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(catalogs, "en.toml"), []byte(`
[[cards]]
title = "The Garden"
quote = "Tend what you want to grow."
`), 0644))

	out, err := execute(t, "", "catalog", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "en (1 cards)")
	assert.Contains(t, out, "The Garden")

	out, err = execute(t, "", "catalog", "validate", filepath.Join(catalogs, "en.toml"))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestCatalogValidateFails(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "en.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[cards]]\ntitle = \"Empty\"\n"), 0644))

	out, err := execute(t, "", "catalog", "validate", path)
	assert.ErrorContains(t, err, "validation failed")
	assert.Contains(t, out, "quote is required")
}

func TestLoginWhoamiLogout(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	out, err = execute(t, "", "login", "reader@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as reader@example.com")

	out, err = execute(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as reader@example.com")
	assert.Contains(t, out, auth.UserID("reader@example.com"))

	out, err = execute(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	_, err = execute(t, "", "login", "nobody")
	assert.ErrorIs(t, err, auth.ErrInvalidEmail)
}

func TestSavedCommands(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "saved", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Please log in to see your saved cards.")

	_, err = execute(t, "", "login", "reader@example.com")
	require.NoError(t, err)

	out, err = execute(t, "", "saved", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "You have no saved cards.")

	s, err := store.Open(config.GetDefaultDatabasePath(), zap.NewNop())
	require.NoError(t, err)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	id, err := s.Save(context.Background(), auth.UserID("reader@example.com"), store.Snapshot{
		Title: "The Star", Quote: "Hope returns quietly.", Time: at,
		UserQuestion: "What should I trust?", AIReply: "Trust the small signs.",
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	out, err = execute(t, "", "saved", "ls", "--full")
	require.NoError(t, err)
	assert.Contains(t, out, "May 1, 2024")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "The Star")
	assert.Contains(t, out, "Trust the small signs.")

	out, err = execute(t, "n\n", "saved", "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, `Delete "The Star"?`)
	assert.NotContains(t, out, "Deleted")

	out, err = execute(t, "y\n", "saved", "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted The Star")

	_, err = execute(t, "", "saved", "rm", id, "--yes")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestConfigCommands(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "config", "set-locale", "zh_tw")
	require.NoError(t, err)
	assert.Contains(t, out, "Default locale set to: zh-TW")

	out, err = execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "zh-TW")
	assert.Contains(t, out, "(not set)")

	out, err = execute(t, "", "config", "set-locale", "fr")
	require.NoError(t, err)
	assert.Contains(t, out, "No catalog for fr")
}

func TestExplainWithoutKey(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "explain", "0", "What", "now?")
	assert.ErrorIs(t, err, explain.ErrNotConfigured)
	assert.Contains(t, out, "The Fool")
	assert.Contains(t, out, "API Key not found")

	_, err = execute(t, "", "explain", "x", "Why?")
	assert.ErrorContains(t, err, "invalid card index")
}
