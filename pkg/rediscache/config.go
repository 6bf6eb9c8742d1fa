package rediscache

import "time"

type Config struct {
	ConnectionURL  string        `env:"ACP_REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL is the URL of the cache. It should be in the format "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"ACP_REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of retry attempts to connect to the cache.
	RetryInterval  time.Duration `env:"ACP_REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the interval between retry attempts. It should be in the format "5s" for 5 seconds.
	ConnectTimeout time.Duration `env:"ACP_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout is the timeout for connecting to the cache. It should be in the format "30s" for 30 seconds.

	CacheKey string        `env:"ACP_REDIS_CACHE_KEY" envDefault:"acp:policy:v1"` // CacheKey is the key the policy snapshot is stored under.
	CacheTTL time.Duration `env:"ACP_REDIS_CACHE_TTL" envDefault:"5m"`            // CacheTTL is how long a snapshot stays valid. Zero means no expiration.
}
