// Package config loads cookbook settings from a TOML file, a .env file, and
// COOKBOOK_* environment variables, in that order of increasing precedence.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	RecipesFile string `toml:"recipes_file"`
	DataDir     string `toml:"data_dir"`
	HistoryDB   string `toml:"history_db"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Notifications contains countdown completion delivery settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"` // seconds
	Chime          bool   `toml:"chime"`
	Speech         bool   `toml:"speech"`
	SpeechVoice    string `toml:"speech_voice"`
	SpeechKey      string `toml:"speech_key"`
	SpeechRegion   string `toml:"speech_region"`
}

// Azure Speech credentials, usually kept in .env.
const (
	EnvAzureSpeechKey    = "AZURE_SPEECH_KEY"
	EnvAzureSpeechRegion = "AZURE_SPEECH_REGION"
)

// Session contains cooking session display settings.
type Session struct {
	TickIntervalMS int `toml:"tick_interval_ms"`
}

// Config encapsulates all configuration values for cookbook.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
	Session       Session       `toml:"session"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	dataDir := defaultDataDir()
	return Config{
		Paths: Paths{
			DataDir: dataDir,
		},
		Logging: Logging{
			Level: "normal",
		},
		Notifications: Notifications{
			RequestTimeout: 10,
			Chime:          true,
		},
		Session: Session{
			TickIntervalMS: 1000,
		},
	}
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "cookbook", "config.toml"), nil
	}
	return expandPath("~/.config/cookbook/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error. Returns the config, the resolved path, and whether the
// file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}

	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

// applyEnv overlays COOKBOOK_* environment variables.
func (c *Config) applyEnv() {
	if v, ok := lookupEnv("COOKBOOK_RECIPES"); ok {
		c.Paths.RecipesFile = v
	}
	if v, ok := lookupEnv("COOKBOOK_HISTORY_DB"); ok {
		c.Paths.HistoryDB = v
	}
	if v, ok := lookupEnv("COOKBOOK_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv("COOKBOOK_NTFY_TOPIC"); ok {
		c.Notifications.NtfyTopic = v
	}
	if v, ok := lookupEnv(EnvAzureSpeechKey); ok {
		c.Notifications.SpeechKey = v
	}
	if v, ok := lookupEnv(EnvAzureSpeechRegion); ok {
		c.Notifications.SpeechRegion = v
	}
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.DataDir == "" {
		c.Paths.DataDir = defaultDataDir()
	}
	if c.Paths.RecipesFile, err = expandPath(strings.TrimSpace(c.Paths.RecipesFile)); err != nil {
		return fmt.Errorf("paths.recipes_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = filepath.Join(c.Paths.DataDir, "history.db")
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = filepath.Join(c.Paths.DataDir, "cookbook.log")
	}
	if c.Logging.File != "-" {
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// TickInterval is the session clock refresh period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Session.TickIntervalMS) * time.Millisecond
}

// SpeechEnabled reports whether timer announcements should be spoken.
// Speech needs both Azure credentials.
func (c *Config) SpeechEnabled() bool {
	n := c.Notifications
	return n.Speech && n.SpeechKey != "" && n.SpeechRegion != ""
}

// RequestTimeout is the HTTP timeout for ntfy and speech requests.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Notifications.RequestTimeout) * time.Second
}

// EnsureDirectories creates the data directory.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.DataDir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

func defaultDataDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "cookbook")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "cookbook")
	}
	return filepath.Join(home, ".local", "share", "cookbook")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
