package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration. The api, consumer and dashboard
// binaries share it; each reads only the fields it needs.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage. Both are optional: without DATABASE_URL the read endpoint serves
	// the demo dataset, without REDIS_URL submissions skip the stream buffer.
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	// Complaints API (cmd/api).
	APIServerAddr      string        `env:"API_SERVER_ADDR" envDefault:":8000"`
	AdminServerAddr    string        `env:"ADMIN_SERVER_ADDR" envDefault:":9091"`
	MaxSubmissionSize  int64         `env:"MAX_SUBMISSION_SIZE_BYTES" envDefault:"65536"` // 64KB
	ComplaintsCacheTTL time.Duration `env:"COMPLAINTS_CACHE_TTL" envDefault:"2s"`
	MockLatency        time.Duration `env:"MOCK_LATENCY" envDefault:"100ms"`
	CORSAllowedOrigin  string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`

	// Submission stream (cmd/api producer, cmd/consumer).
	SubmissionStream   string        `env:"SUBMISSION_STREAM" envDefault:"complaint_submissions"`
	SubmissionDLQ      string        `env:"SUBMISSION_DLQ_STREAM" envDefault:"complaint_submissions_dlq"`
	ConsumerGroup      string        `env:"CONSUMER_GROUP" envDefault:"complaint-writers"`
	ConsumerBatchSize  int           `env:"CONSUMER_BATCH_SIZE" envDefault:"500"`
	ConsumerInterval   time.Duration `env:"CONSUMER_INTERVAL" envDefault:"1s"`
	SinkRetryCount     int           `env:"SINK_RETRY_COUNT" envDefault:"3"`
	SinkRetryBackoff   time.Duration `env:"SINK_RETRY_BACKOFF" envDefault:"1s"`
	ConsumerAdminAddr  string        `env:"CONSUMER_ADMIN_ADDR" envDefault:":9092"`

	// Dashboard (cmd/dashboard).
	DashboardServerAddr string        `env:"DASHBOARD_SERVER_ADDR" envDefault:":8090"`
	DashboardAdminAddr  string        `env:"DASHBOARD_ADMIN_ADDR" envDefault:":9093"`
	ComplaintsAPIURL    string        `env:"COMPLAINTS_API_URL" envDefault:"http://127.0.0.1:8000/api/complaints"`
	PollInterval        time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	PollTimeout         time.Duration `env:"POLL_TIMEOUT" envDefault:"4s"`
	PollRetryCount      int           `env:"POLL_RETRY_COUNT" envDefault:"3"`
	PollRetryBackoff    time.Duration `env:"POLL_RETRY_BACKOFF" envDefault:"2s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
