package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that the configuration is usable. A missing TMDB API key
// is reported so first-run setup can prompt for one.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		problems = append(problems, "paths.data_dir must not be empty")
	}
	if strings.TrimSpace(c.TMDB.BaseURL) == "" {
		problems = append(problems, "tmdb.base_url must not be empty")
	}
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		problems = append(problems, "tmdb.api_key is not set (run `posterdle token set`)")
	}

	switch c.Gameplay.LanguageFilter {
	case "", "all", "fr-en":
	default:
		problems = append(problems, fmt.Sprintf("gameplay.language_filter: unsupported value %q (use \"all\" or \"fr-en\")", c.Gameplay.LanguageFilter))
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "; "))
}
