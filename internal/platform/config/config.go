package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string

	// DatabaseURL selects the postgres backend; when empty the service runs
	// on in-memory stores.
	DatabaseURL string

	Redis RedisConfig

	// GeneratorBatchSize is the commit granularity of the synthetic
	// generator.
	GeneratorBatchSize int
}

// RedisConfig carries the connection settings for the stats cache. An empty
// URL disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StatsCacheTTL bounds staleness of cached aggregations between explicit
// invalidations.
var StatsCacheTTL = 5 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PAYSCOPE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	batchSize := 50
	if raw := os.Getenv("PAYSCOPE_GENERATOR_BATCH_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			batchSize = n
		}
	}

	return Server{
		Addr:               addr,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Redis:              redisFromEnv(),
		GeneratorBatchSize: batchSize,
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
