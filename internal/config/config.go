package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Lingvo
		Languages
		Database
		Auth
		Tasks
		EnrichSync
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Lingvo struct {
		APIKey      string
		APIURL      string // Lookup methods, API v1
		AuthURL     string // Authenticate endpoint, API v1.1
		Timeout     time.Duration
		LogRequests bool
	}
	Languages struct {
		Source      int // Default source language code (1033 = English)
		Destination int // Default destination language code (1049 = Russian)
	}
	Database struct {
		Path string
	}
	Auth struct {
		TokenHash string // bcrypt hash of the API bearer token; empty disables auth
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	EnrichSync struct {
		Enabled  bool
		Schedule string // Cron format: "*/30 * * * *" = every 30 minutes
	}
)

func NewConfig() *Config {
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Lingvo defaults
	v.SetDefault("lingvo_api_key", "")
	v.SetDefault("lingvo_api_url", DefaultLingvoAPIURL)
	v.SetDefault("lingvo_auth_url", DefaultLingvoAuthURL)
	v.SetDefault("lingvo_timeout", "30s")
	v.SetDefault("lingvo_log_requests", false)

	v.SetDefault("default_src_lang", DefaultSourceLang)
	v.SetDefault("default_dst_lang", DefaultDestinationLang)

	v.SetDefault("api_token_hash", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("enrich_sync_enabled", false)
	v.SetDefault("enrich_sync_schedule", "*/30 * * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Lingvo: Lingvo{
			APIKey:      v.GetString("LINGVO_API_KEY"),
			APIURL:      v.GetString("LINGVO_API_URL"),
			AuthURL:     v.GetString("LINGVO_AUTH_URL"),
			Timeout:     v.GetDuration("LINGVO_TIMEOUT"),
			LogRequests: v.GetBool("LINGVO_LOG_REQUESTS"),
		},
		Languages: Languages{
			Source:      v.GetInt("DEFAULT_SRC_LANG"),
			Destination: v.GetInt("DEFAULT_DST_LANG"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			TokenHash: v.GetString("API_TOKEN_HASH"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		EnrichSync: EnrichSync{
			Enabled:  v.GetBool("ENRICH_SYNC_ENABLED"),
			Schedule: v.GetString("ENRICH_SYNC_SCHEDULE"),
		},
	}
}
