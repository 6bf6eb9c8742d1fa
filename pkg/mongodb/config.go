package mongodb

import "time"

// Config represents the configuration for the policy database.
type Config struct {
	ConnectionURL   string        `env:"ACP_MONGO_URL,required"`                         // ConnectionURL is the URL of the database.
	Database        string        `env:"ACP_MONGO_DATABASE" envDefault:"accesscontrol"`  // Database is the name of the policy database.
	Collection      string        `env:"ACP_MONGO_COLLECTION" envDefault:"acp_roles"`    // Collection is the name of the role collection.
	ConnectTimeout  time.Duration `env:"ACP_MONGO_CONNECT_TIMEOUT" envDefault:"10s"`     // ConnectTimeout is the timeout for connecting to the database.
	MaxPoolSize     uint64        `env:"ACP_MONGO_MAX_POOL_SIZE" envDefault:"100"`       // MaxPoolSize is the maximum number of connections in the connection pool.
	MinPoolSize     uint64        `env:"ACP_MONGO_MIN_POOL_SIZE" envDefault:"1"`         // MinPoolSize is the minimum number of connections in the connection pool.
	MaxConnIdleTime time.Duration `env:"ACP_MONGO_MAX_CONN_IDLE_TIME" envDefault:"300s"` // MaxConnIdleTime is the maximum time that a connection can remain idle in the connection pool.
	RetryWrites     bool          `env:"ACP_MONGO_RETRY_WRITES" envDefault:"true"`       // RetryWrites specifies whether to retry write operations.
	RetryReads      bool          `env:"ACP_MONGO_RETRY_READS" envDefault:"true"`        // RetryReads specifies whether to retry read operations.
	RetryAttempts   int           `env:"ACP_MONGO_RETRY_ATTEMPTS" envDefault:"3"`        // RetryAttempts is the number of retry attempts to connect to the database.
	RetryInterval   time.Duration `env:"ACP_MONGO_RETRY_INTERVAL" envDefault:"5s"`       // RetryInterval is the interval between retry attempts. It should be in the format "5s" for 5 seconds.
}
