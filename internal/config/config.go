package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrMissingJWTSecret = errors.New("config: SUPABASE_JWT_SECRET is required")

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	LLM       LLMConfig
	Billing   BillingConfig
	RateLimit RateLimitConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	Env          string        `env:"APP_ENV" envDefault:"production"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
}

type DatabaseConfig struct {
	User         string `env:"DB_USER" envDefault:"summit_user"`
	Password     string `env:"DB_PASSWORD"`
	Host         string `env:"DB_HOST" envDefault:"localhost"`
	Port         string `env:"DB_PORT" envDefault:"5432"`
	Name         string `env:"DB_NAME" envDefault:"summit_db"`
	SSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	DraftTTL time.Duration `env:"ONBOARDING_DRAFT_TTL" envDefault:"720h"`
}

// AuthConfig describes the hosted identity provider whose tokens we accept.
type AuthConfig struct {
	JWTSecret string `env:"SUPABASE_JWT_SECRET"`
	Issuer    string `env:"SUPABASE_JWT_ISSUER"`
	Audience  string `env:"SUPABASE_JWT_AUDIENCE" envDefault:"authenticated"`
}

type LLMConfig struct {
	APIKey    string        `env:"ANTHROPIC_API_KEY"`
	Model     string        `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-5"`
	MaxTokens int           `env:"ANTHROPIC_MAX_TOKENS" envDefault:"4096"`
	BaseURL   string        `env:"ANTHROPIC_BASE_URL"`
	Timeout   time.Duration `env:"ANTHROPIC_TIMEOUT" envDefault:"90s"`
}

type BillingConfig struct {
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
}

type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

type WorkerConfig struct {
	QueueSize int `env:"PLAN_WORKER_QUEUE_SIZE" envDefault:"100"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return &cfg, nil
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c ServerConfig) IsDevelopment() bool {
	return c.Env == "development"
}
