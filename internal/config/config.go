package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port                   int    `env:"PORT" envDefault:"8080"`
	MongoURI               string `env:"MONGODB_URI,required"`
	MongoDatabase          string `env:"MONGODB_DATABASE" envDefault:"interview_ai"`
	RedisURL               string `env:"REDIS_URL"`
	TokenSecret            string `env:"SECRET_KEY,required"`
	GeminiAPIKey           string `env:"GEMINI_API_KEY,required"`
	GeminiModel            string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	S3Bucket               string `env:"S3_BUCKET_NAME,required"`
	S3Region               string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3AccessKeyID          string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey      string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Endpoint             string `env:"S3_ENDPOINT"`
	S3BaseURL              string `env:"S3_BASE_URL"`
	AnalysisTimeoutSeconds int    `env:"ANALYSIS_TIMEOUT_SECONDS" envDefault:"60"`
	RateLimitPerMin        int    `env:"RATE_LIMIT_PER_MIN" envDefault:"60"`
	PendingSessionTTLHours int    `env:"PENDING_SESSION_TTL_HOURS" envDefault:"0"`
	LogLevel               string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) AnalysisTimeout() time.Duration {
	return time.Duration(c.AnalysisTimeoutSeconds) * time.Second
}

// PendingSessionTTL returns the retention window for abandoned pending
// sessions. Zero disables the cleanup job.
func (c *Config) PendingSessionTTL() time.Duration {
	return time.Duration(c.PendingSessionTTLHours) * time.Hour
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
