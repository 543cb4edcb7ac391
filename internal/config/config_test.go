package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("RAZORPAY_KEY", "rzp_test_key")
	t.Setenv("RAZORPAY_SECRET", "rzp_test_secret")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "INR", cfg.Razorpay.Currency)
	assert.Equal(t, "https://api.razorpay.com/v1", cfg.Razorpay.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Razorpay.Timeout)
	assert.Equal(t, 12, cfg.Razorpay.TotalCount)
	assert.Equal(t, 30, cfg.Razorpay.InvoiceExpiryDays)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 50051, cfg.Server.GRPCPort)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, "env", cfg.Secrets.Manager)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RAZORPAY_CURRENCY", "USD")
	t.Setenv("RAZORPAY_TIMEOUT", "5s")
	t.Setenv("RAZORPAY_SUBSCRIPTION_TOTAL_COUNT", "24")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.Razorpay.Currency)
	assert.Equal(t, 5*time.Second, cfg.Razorpay.Timeout)
	assert.Equal(t, 24, cfg.Razorpay.TotalCount)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 0.0001)
	assert.True(t, cfg.Logger.Development)
}

func TestLoadFromEnv_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing key",
			env:     map[string]string{"RAZORPAY_KEY": ""},
			wantErr: "RAZORPAY_KEY is required",
		},
		{
			name:    "missing secret",
			env:     map[string]string{"RAZORPAY_SECRET": ""},
			wantErr: "RAZORPAY_SECRET is required",
		},
		{
			name:    "non-positive total count",
			env:     map[string]string{"RAZORPAY_SUBSCRIPTION_TOTAL_COUNT": "0"},
			wantErr: "RAZORPAY_SUBSCRIPTION_TOTAL_COUNT must be positive",
		},
		{
			name:    "malformed duration",
			env:     map[string]string{"RAZORPAY_TIMEOUT": "soon"},
			wantErr: "parse environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromEnv_SecretManagerSkipsKeyCheck(t *testing.T) {
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("RAZORPAY_KEY", "")
	t.Setenv("RAZORPAY_SECRET", "")
	t.Setenv("SECRET_MANAGER", "vault")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "vault", cfg.Secrets.Manager)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=require", cfg.ConnectionString())
}

func TestLoadMigrationConfig_IgnoresGatewayKeys(t *testing.T) {
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("RAZORPAY_KEY", "")
	t.Setenv("RAZORPAY_SECRET", "")

	cfg, err := LoadMigrationConfig()
	require.NoError(t, err)
	assert.Equal(t, "razorpay_cashier", cfg.Database.Database)

	t.Setenv("DB_PASSWORD", "")
	_, err = LoadMigrationConfig()
	assert.Error(t, err)
}
