// Package config loads configuration for the policy backends from
// environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is read into the process environment once, then any
// struct annotated with `env` tags can be populated from it.
//
//	type CacheConfig struct {
//		RedisURL string        `env:"ACP_REDIS_URL,required"`
//		TTL      time.Duration `env:"ACP_REDIS_TTL" envDefault:"5m"`
//	}
//
//	var cfg CacheConfig
//	config.MustLoad(&cfg)
//
// Each backend package under pkg/ declares its own Config struct with an
// ACP_-prefixed tag set; this package only performs the parsing.
package config
