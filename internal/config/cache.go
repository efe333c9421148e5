package config

import (
	"sync"
	"time"
)

// CacheConfig is disabled when Addr is empty.
type CacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

var (
	cacheConfig *CacheConfig
	cacheOnce   sync.Once
)

func LoadCacheConfig() *CacheConfig {
	cacheOnce.Do(func() {
		cacheConfig = &CacheConfig{
			Addr:     getEnvString("REDIS_ADDR", ""),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),
		}
	})
	return cacheConfig
}

func (c *CacheConfig) Enabled() bool {
	return c.Addr != ""
}
