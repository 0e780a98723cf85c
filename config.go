package main

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SaveDirectory    string
	PaletteStore     string
	PaletteBackend   string
	PaletteDirectory string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	DefaultEmojiSize int
	FetchTimeout     time.Duration
	LogLevel         string
	LogFile          string
	ImportDirectory  string
	FontFile         string
}

func defaultConfig(homeDir string) *Config {
	return &Config{
		PaletteStore:     "Default",
		PaletteBackend:   "file",
		PaletteDirectory: filepath.Join(homeDir, ".emojiart", "palettes"),
		RedisAddr:        "localhost:6379",
		DefaultEmojiSize: 40,
		FetchTimeout:     15 * time.Second,
		LogLevel:         "info",
		LogFile:          filepath.Join(homeDir, ".emojiart.log"),
	}
}

// loadConfig reads ~/.emojiartrc and then applies EMOJIART_* overrides from
// the environment, .env.local and .env.
func loadConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	config := defaultConfig(homeDir)

	if homeDir != "" {
		if file, err := os.Open(filepath.Join(homeDir, ".emojiartrc")); err == nil {
			_ = config.parse(file, homeDir)
			file.Close()
		}
	}

	loadDotEnv()
	config.applyEnv(os.Getenv, homeDir)
	return config
}

// loadDotEnv loads .env.local before .env. godotenv never overwrites a
// variable that is already set, so the real environment wins.
func loadDotEnv() []string {
	var loaded []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// parse applies an rc file in dotenv syntax: KEY=value or KEY: value lines,
// # comments, optional quoting. A malformed file changes nothing.
func (c *Config) parse(r io.Reader, homeDir string) error {
	values, err := godotenv.Parse(r)
	if err != nil {
		return err
	}
	for key, value := range values {
		c.set(key, strings.TrimSpace(value), homeDir)
	}
	return nil
}

var envKeys = []string{
	"save_directory", "palette_store", "palette_backend", "palette_directory",
	"redis_addr", "redis_password", "redis_db", "default_emoji_size",
	"fetch_timeout", "log_level", "log_file", "import_directory", "font_file",
}

func (c *Config) applyEnv(getenv func(string) string, homeDir string) {
	for _, key := range envKeys {
		if value := getenv("EMOJIART_" + strings.ToUpper(key)); value != "" {
			c.set(key, value, homeDir)
		}
	}
}

func (c *Config) set(key, value, homeDir string) {
	switch strings.ToLower(key) {
	case "savedirectory", "save_directory", "savedir":
		c.SaveDirectory = expandPath(value, homeDir)
	case "palettestore", "palette_store":
		c.PaletteStore = value
	case "palettebackend", "palette_backend":
		switch v := strings.ToLower(value); v {
		case "file", "redis", "memory":
			c.PaletteBackend = v
		}
	case "palettedirectory", "palette_directory", "palettedir":
		c.PaletteDirectory = expandPath(value, homeDir)
	case "redisaddr", "redis_addr":
		c.RedisAddr = value
	case "redispassword", "redis_password":
		c.RedisPassword = value
	case "redisdb", "redis_db":
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			c.RedisDB = n
		}
	case "defaultemojisize", "default_emoji_size", "emoji_size":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			c.DefaultEmojiSize = n
		}
	case "fetchtimeout", "fetch_timeout":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			c.FetchTimeout = time.Duration(n) * time.Second
		}
	case "loglevel", "log_level":
		c.LogLevel = strings.ToLower(value)
	case "logfile", "log_file":
		c.LogFile = expandPath(value, homeDir)
	case "importdirectory", "import_directory", "importdir":
		c.ImportDirectory = expandPath(value, homeDir)
	case "fontfile", "font_file", "font":
		c.FontFile = expandPath(value, homeDir)
	}
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
