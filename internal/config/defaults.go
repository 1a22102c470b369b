package config

const (
	defaultConfigPath     = "~/.config/recipebox/config.toml"
	projectConfigName     = "recipebox.toml"
	databaseFileName      = "recipebox.db"
	logFileName           = "recipebox.log"
	defaultDataDir        = "~/.local/share/recipebox"
	defaultLogDir         = "~/.local/share/recipebox/logs"
	defaultBusyTimeoutMS  = 5000
	defaultSearchLimit    = 200
	defaultCookbookName   = "My First Cookbook"
	defaultMaxIngredients = 500
	defaultMaxSteps       = 500
	defaultMaxTags        = 100
	defaultMaxNameLength  = 200
	defaultMaxTitleLength = 300
	defaultMaxTextLength  = 20000
	defaultMaxPhotoBytes  = 8 << 20
	defaultMaxSuggestions = 100
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	dataDirEnv            = "RECIPEBOX_DATA_DIR"
	logDirEnv             = "RECIPEBOX_LOG_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Store: Store{
			BusyTimeoutMS:   defaultBusyTimeoutMS,
			SearchLimit:     defaultSearchLimit,
			DefaultCookbook: defaultCookbookName,
		},
		Limits: Limits{
			MaxIngredients: defaultMaxIngredients,
			MaxSteps:       defaultMaxSteps,
			MaxTags:        defaultMaxTags,
			MaxNameLength:  defaultMaxNameLength,
			MaxTitleLength: defaultMaxTitleLength,
			MaxTextLength:  defaultMaxTextLength,
			MaxPhotoBytes:  defaultMaxPhotoBytes,
			MaxSuggestions: defaultMaxSuggestions,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
