package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Razorpay  RazorpayConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
	Secrets   SecretsConfig
}

// ServerConfig holds HTTP, gRPC health and metrics listener configuration
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	HTTPPort        int           `env:"SERVER_HTTP_PORT" envDefault:"8080"`
	GRPCPort        int           `env:"SERVER_GRPC_PORT" envDefault:"50051"`
	MetricsPort     int           `env:"METRICS_PORT" envDefault:"9090"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Database string `env:"DB_NAME" envDefault:"razorpay_cashier"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	MaxConns int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	MinConns int32  `env:"DB_MIN_CONNS" envDefault:"5"`
}

// RazorpayConfig holds gateway credentials and billing defaults
type RazorpayConfig struct {
	KeyID             string        `env:"RAZORPAY_KEY"`
	KeySecret         string        `env:"RAZORPAY_SECRET"`
	Currency          string        `env:"RAZORPAY_CURRENCY" envDefault:"INR"`
	BaseURL           string        `env:"RAZORPAY_BASE_URL" envDefault:"https://api.razorpay.com/v1"`
	Timeout           time.Duration `env:"RAZORPAY_TIMEOUT" envDefault:"30s"`
	TotalCount        int           `env:"RAZORPAY_SUBSCRIPTION_TOTAL_COUNT" envDefault:"12"`
	InvoiceExpiryDays int           `env:"RAZORPAY_INVOICE_EXPIRY_DAYS" envDefault:"30"`
}

// RateLimitConfig holds the per-client-IP HTTP rate limit
type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"` // debug, info, warn, error
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// SecretsConfig selects where gateway credentials come from.
// With the "env" manager RAZORPAY_KEY and RAZORPAY_SECRET are used as is.
type SecretsConfig struct {
	Manager      string `env:"SECRET_MANAGER" envDefault:"env"` // env, local, aws, vault, gcp
	Path         string `env:"SECRET_PATH" envDefault:"razorpay/credentials"`
	LocalDir     string `env:"SECRETS_LOCAL_DIR" envDefault:"./secrets"`
	AWSRegion    string `env:"AWS_REGION" envDefault:"ap-south-1"`
	AWSEndpoint  string `env:"AWS_SECRETS_ENDPOINT"`
	VaultAddress string `env:"VAULT_ADDR"`
	VaultToken   string `env:"VAULT_TOKEN"`
	VaultMount   string `env:"VAULT_MOUNT" envDefault:"secret"`
	GCPProjectID string `env:"GCP_PROJECT_ID"`
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	// The .env file is optional; real environment variables take precedence
	_ = godotenv.Load()
	return LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadMigrationConfig loads the configuration used by the migrate command.
// Only the database settings are validated.
func LoadMigrationConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Secrets.Manager == "env" {
		if c.Razorpay.KeyID == "" {
			return fmt.Errorf("RAZORPAY_KEY is required")
		}
		if c.Razorpay.KeySecret == "" {
			return fmt.Errorf("RAZORPAY_SECRET is required")
		}
	}
	if c.Razorpay.TotalCount <= 0 {
		return fmt.Errorf("RAZORPAY_SUBSCRIPTION_TOTAL_COUNT must be positive")
	}
	if c.Razorpay.InvoiceExpiryDays <= 0 {
		return fmt.Errorf("RAZORPAY_INVOICE_EXPIRY_DAYS must be positive")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// ConnectionString returns PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
