package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigParse(t *testing.T) {
	home := t.TempDir()
	config := defaultConfig(home)
	err := config.parse(strings.NewReader(`
# comment
save_directory = ~/art
PaletteStore="Work"
palette_backend = REDIS # inline comment
redis_addr = cache:6379
redis_db = 3
default_emoji_size = 64
fetch_timeout = 30
log_level: DEBUG
import_directory = ~/Pictures
`), home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "art"), config.SaveDirectory)
	assert.Equal(t, "Work", config.PaletteStore)
	assert.Equal(t, "redis", config.PaletteBackend)
	assert.Equal(t, "cache:6379", config.RedisAddr)
	assert.Equal(t, 3, config.RedisDB)
	assert.Equal(t, 64, config.DefaultEmojiSize)
	assert.Equal(t, 30*time.Second, config.FetchTimeout)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, filepath.Join(home, "Pictures"), config.ImportDirectory)
}

func TestConfigRejectsBadValues(t *testing.T) {
	home := t.TempDir()
	config := defaultConfig(home)
	err := config.parse(strings.NewReader(`
palette_backend = postgres
default_emoji_size = -4
fetch_timeout = soon
redis_db = x
`), home)
	require.NoError(t, err)

	assert.Equal(t, "file", config.PaletteBackend)
	assert.Equal(t, 40, config.DefaultEmojiSize)
	assert.Equal(t, 15*time.Second, config.FetchTimeout)
	assert.Equal(t, 0, config.RedisDB)
}

func TestConfigMalformedFileKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	config := defaultConfig(home)
	err := config.parse(strings.NewReader("palette_store = Work\nnot a setting\n"), home)

	assert.Error(t, err)
	assert.Equal(t, "Default", config.PaletteStore)
}

func TestConfigEnvOverrides(t *testing.T) {
	home := t.TempDir()
	config := defaultConfig(home)
	require.NoError(t, config.parse(strings.NewReader("palette_store = FromFile\n"), home))

	env := map[string]string{
		"EMOJIART_PALETTE_STORE":   "FromEnv",
		"EMOJIART_PALETTE_BACKEND": "memory",
		"EMOJIART_LOG_FILE":        "~/logs/art.log",
	}
	config.applyEnv(func(k string) string { return env[k] }, home)

	assert.Equal(t, "FromEnv", config.PaletteStore)
	assert.Equal(t, "memory", config.PaletteBackend)
	assert.Equal(t, filepath.Join(home, "logs", "art.log"), config.LogFile)
}

func TestGetSavePath(t *testing.T) {
	config := &Config{}
	assert.Equal(t, "a.emojiart", config.GetSavePath("a.emojiart"))

	config.SaveDirectory = filepath.Join(t.TempDir(), "out")
	assert.Equal(t, filepath.Join(config.SaveDirectory, "a.emojiart"), config.GetSavePath("a.emojiart"))
	assert.DirExists(t, config.SaveDirectory)
}
