package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full startup configuration. Secrets and connection strings
// are always environment-supplied; nothing is compiled in.
type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	JWTSecret  string `env:"JWT_SECRET,  required"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	UploadDir  string `env:"UPLOAD_DIR,  default=images"`
	CORSOrigin string `env:"CORS_ORIGIN, default=*"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"DB_URL,   required"`
	Database string `env:"MONGO_DB, default=blog"`
}

// RedisConfig is optional; an empty Addr disables the posts-page cache.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required values are a boot-time error.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
