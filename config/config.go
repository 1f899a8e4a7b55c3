package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Storage backends selectable via storage.backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	Debug   bool          `mapstructure:"debug"`
	Storage StorageConfig `mapstructure:"storage"`
	Feed    FeedConfig    `mapstructure:"feed"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	// Redis address, only read when backend is redis.
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
	// SQLite database path, only read when backend is sqlite.
	SQLitePath string `mapstructure:"sqlite_path"`
}

type FeedConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// Load reads config.yaml from the working directory when present and applies
// SPARKFEED_* environment overrides (e.g. SPARKFEED_STORAGE_BACKEND=redis).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("debug", false)
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.sqlite_path", "sparkfeed.db")
	v.SetDefault("feed.page_size", 5)

	v.SetEnvPrefix("SPARKFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Feed.PageSize < 1 {
		cfg.Feed.PageSize = 5
	}
	return &cfg, nil
}
