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

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

// Gameplay contains default game settings. The persisted ledger values take
// precedence once the player changes them in-game.
type Gameplay struct {
	RememberSeen   bool   `toml:"remember_seen"`
	SeenTTLHours   int    `toml:"seen_ttl_hours"`
	LanguageFilter string `toml:"language_filter"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root application configuration.
type Config struct {
	Paths    Paths    `toml:"paths"`
	TMDB     TMDB     `toml:"tmdb"`
	Gameplay Gameplay `toml:"gameplay"`
	Logging  Logging  `toml:"logging"`
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	return "~/.config/posterdle/config.toml"
}

// Load reads the config file at path, layered over defaults. A missing file
// yields the defaults without error; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", resolved, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", resolved, err)
	}

	cfg.normalize()
	return &cfg, nil
}

// WriteSample writes the annotated sample config to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	resolved, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(resolved); err == nil {
		return fmt.Errorf("config file already exists at %s", resolved)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(resolved, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		resolved, err := ExpandPath(dir)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(resolved, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", resolved, err)
		}
	}
	return nil
}

// DatabasePath returns the progress database location under the data dir.
func (c *Config) DatabasePath() (string, error) {
	dataDir, err := ExpandPath(c.Paths.DataDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "progress.db"), nil
}

// SeenTTL returns the seen-item retention window as a duration.
func (c *Config) SeenTTL() time.Duration {
	hours := c.Gameplay.SeenTTLHours
	if hours <= 0 {
		hours = defaultSeenTTLHours
	}
	return time.Duration(hours) * time.Hour
}

// LogFilePath returns the log file location, or "" when file logging is off.
func (c *Config) LogFilePath() (string, error) {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return "", nil
	}
	logDir, err := ExpandPath(c.Paths.LogDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(logDir, "posterdle.log"), nil
}

func (c *Config) normalize() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	c.Gameplay.LanguageFilter = strings.ToLower(strings.TrimSpace(c.Gameplay.LanguageFilter))
	if c.Gameplay.SeenTTLHours <= 0 {
		c.Gameplay.SeenTTLHours = defaultSeenTTLHours
	}
}

// ExpandPath resolves a leading ~ to the current user's home directory.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
