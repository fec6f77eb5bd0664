package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"posterdle/internal/config"
	"posterdle/internal/ledger"
	"posterdle/internal/logging"
	"posterdle/internal/session"
	"posterdle/internal/tmdb"
)

// errNoCredential is returned when neither the store nor the config carries
// a TMDB API key.
var errNoCredential = errors.New("no TMDB API key configured; run `posterdle token set <key>` or set tmdb.api_key in the config file")

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := config.DefaultPath()
		if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger(cfg *config.Config) (*slog.Logger, error) {
	logPath, err := cfg.LogFilePath()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		FilePath: logPath,
	})
}

// openStore opens the progress database and wraps it in a ledger.
func (c *commandContext) openStore(cfg *config.Config, logger *slog.Logger) (*ledger.SQLiteStorage, *ledger.Ledger, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, err
	}
	store, err := ledger.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open progress store: %w", err)
	}
	return store, ledger.New(store, logger), nil
}

// engine bundles the wired game collaborators for one CLI invocation.
type engine struct {
	session *session.Session
	ledger  *ledger.Ledger
	client  *tmdb.Client
	store   *ledger.SQLiteStorage
	logger  *slog.Logger
}

func (e *engine) Close() error {
	return e.store.Close()
}

// openEngine builds the full stack: config, logger, progress store, catalog
// client, and session. The stored credential takes precedence over the
// config file key.
func (c *commandContext) openEngine() (*engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.newLogger(cfg)
	if err != nil {
		return nil, err
	}
	store, led, err := c.openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	apiKey := cfg.TMDB.APIKey
	if token, ok := led.Token(); ok {
		apiKey = token
	}
	if strings.TrimSpace(apiKey) == "" {
		_ = store.Close()
		return nil, errNoCredential
	}

	client, err := tmdb.New(apiKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	defaults := session.Settings{
		RememberSeen:   cfg.Gameplay.RememberSeen,
		LanguageFilter: cfg.Gameplay.LanguageFilter,
		SeenTTL:        cfg.SeenTTL(),
	}
	sess, err := session.New(client, led, defaults, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &engine{session: sess, ledger: led, client: client, store: store, logger: logger}, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
