package config

const (
	defaultDataDir        = "~/.local/share/posterdle"
	defaultLogDir         = "~/.local/share/posterdle/logs"
	defaultTMDBBaseURL    = "https://api.themoviedb.org/3"
	defaultTMDBLanguage   = "fr-FR"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultSeenTTLHours   = 48
	defaultLanguageFilter = "all"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Gameplay: Gameplay{
			RememberSeen:   true,
			SeenTTLHours:   defaultSeenTTLHours,
			LanguageFilter: defaultLanguageFilter,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
