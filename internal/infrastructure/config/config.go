package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	S3        S3Config
	Interview InterviewConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=interview_sim"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type S3Config struct {
	Region string `env:"AWS_REGION, default=eu-central-1"`
	Bucket string `env:"S3_BUCKET"`
}

type InterviewConfig struct {
	BaseURL        string `env:"INTERVIEW_API_URL, default=http://localhost:5000"`
	TimeoutSeconds int    `env:"INTERVIEW_API_TIMEOUT_SECONDS, default=30"`
}

type RateLimitConfig struct {
	LoginLimit         int `env:"LOGIN_RATE_LIMIT,          default=10"`
	LoginWindowSeconds int `env:"LOGIN_RATE_WINDOW_SECONDS, default=60"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
