package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/arcanaland/aura/internal/locale"
)

const appName = "aura"

// Config represents the application configuration
type Config struct {
	Locale     string `toml:"locale"`
	Countdown  int    `toml:"countdown"`
	FanCards   int    `toml:"fan_cards"`
	Model      string `toml:"model"`
	CatalogDir string `toml:"catalog_dir"`
	Database   string `toml:"database"`
	AuthSecret string `toml:"auth_secret"`

	// APIKey only ever comes from the environment
	APIKey string `toml:"-"`
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// GetXDGStateHome returns XDG_STATE_HOME or default path
func GetXDGStateHome() string {
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{homeDir}, fallback...)...)
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), appName, "config.toml")
}

// GetEnvFilePath returns the .env file read next to the config file
func GetEnvFilePath() string {
	return filepath.Join(GetXDGConfigHome(), appName, ".env")
}

// GetDefaultDatabasePath returns where saved cards live unless configured otherwise
func GetDefaultDatabasePath() string {
	return filepath.Join(GetXDGDataHome(), appName, "saved.db")
}

// GetCatalogDir returns the directory searched for catalog overrides
func GetCatalogDir() string {
	return filepath.Join(GetXDGDataHome(), appName, "catalogs")
}

// GetSessionPath returns the path of the sign-in session token
func GetSessionPath() string {
	return filepath.Join(GetXDGStateHome(), appName, "session")
}

// GetLogFilePath returns the path of the log file
func GetLogFilePath() string {
	return filepath.Join(GetXDGStateHome(), appName, "aura.log")
}

// Load reads .env files, the config file and environment overrides
func Load() (*Config, error) {
	LoadEnv()

	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadEnv loads ./.env and the .env beside the config file. Variables that
// are already set are not overridden; missing files are ignored.
func LoadEnv() {
	for _, path := range []string{".env", GetEnvFilePath()} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	// Older files may predate the signing secret
	if cfg.AuthSecret == "" {
		secret, err := newSecret()
		if err != nil {
			return nil, err
		}
		cfg.AuthSecret = secret
		if err := Save(&cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration written on first run
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Countdown == 0 {
		c.Countdown = 10
	}
	if c.FanCards <= 0 {
		c.FanCards = 53
	}
	if c.Model == "" {
		c.Model = "gemini-2.0-flash-lite"
	}
	if c.CatalogDir == "" {
		c.CatalogDir = GetCatalogDir()
	}
	if c.Database == "" {
		c.Database = GetDefaultDatabasePath()
	}
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.APIKey = key
	} else if key := os.Getenv("VITE_GEMINI_API_KEY"); key != "" {
		c.APIKey = key
	}
	if loc := os.Getenv("AURA_LOCALE"); loc != "" {
		c.Locale = loc
	}
	if db := os.Getenv("AURA_DATABASE"); db != "" {
		c.Database = db
	}
	if model := os.Getenv("AURA_MODEL"); model != "" {
		c.Model = model
	}
}

// ResolvedLocale returns the configured locale, or the one from LANG
func (c *Config) ResolvedLocale() string {
	if c.Locale != "" {
		return locale.Normalize(c.Locale)
	}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" && v != "C" && v != "POSIX" {
			return locale.Normalize(v)
		}
	}
	return locale.Default
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	cfg := Default()
	secret, err := newSecret()
	if err != nil {
		return nil, err
	}
	cfg.AuthSecret = secret

	if err := Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to the config file
func Save(cfg *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.OpenFile(configPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("error opening config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// SetLocale sets the locale in the config file
func SetLocale(code string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	cfg.Locale = locale.Normalize(code)
	return Save(cfg)
}

func newSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating auth secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Redacted returns the key with all but the last four characters hidden
func Redacted(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
