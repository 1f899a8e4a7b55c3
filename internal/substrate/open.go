package substrate

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ndaedxo/Social-Media-Platform/config"
)

// Open builds the substrate selected by cfg.Storage.Backend.
func Open(cfg *config.Config) (Substrate, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Storage.RedisAddr,
			DB:   cfg.Storage.RedisDB,
		})
		return NewRedis(client), nil
	case config.BackendSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.Storage.SQLitePath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, err
		}
		return NewGormKV(db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
