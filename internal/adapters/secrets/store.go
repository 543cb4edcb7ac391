package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"go.uber.org/zap"
)

// Backend names accepted by NewStore
const (
	BackendEnv   = "env"
	BackendLocal = "local"
	BackendAWS   = "aws"
	BackendVault = "vault"
	BackendGCP   = "gcp"
)

// Options selects and configures a secret backend
type Options struct {
	Backend      string
	LocalDir     string
	AWSRegion    string
	AWSEndpoint  string
	VaultAddress string
	VaultToken   string
	VaultMount   string
	GCPProjectID string
}

// NewStore builds the secret store named by opts.Backend.
// The env backend has no store; it returns nil and callers keep their configured values.
func NewStore(ctx context.Context, opts Options, logger *zap.Logger) (ports.SecretStore, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendEnv:
		return nil, nil
	case BackendLocal:
		return NewLocalSecretStore(opts.LocalDir, logger), nil
	case BackendAWS:
		cfg := DefaultAWSSecretsManagerConfig(opts.AWSRegion)
		cfg.Endpoint = opts.AWSEndpoint
		return NewAWSSecretsManager(ctx, cfg, logger)
	case BackendVault:
		cfg := DefaultVaultConfig(opts.VaultAddress)
		cfg.Token = opts.VaultToken
		if opts.VaultMount != "" {
			cfg.MountPath = opts.VaultMount
		}
		return NewVaultStore(ctx, cfg, logger)
	case BackendGCP:
		return NewGCPSecretManager(ctx, DefaultGCPSecretManagerConfig(opts.GCPProjectID), logger)
	default:
		return nil, fmt.Errorf("unsupported secret backend: %s", opts.Backend)
	}
}

// RazorpayCredentials is the API key pair used to authenticate with the gateway
type RazorpayCredentials struct {
	KeyID     string `json:"key_id"`
	KeySecret string `json:"key_secret"`
}

// LoadRazorpayCredentials reads a {"key_id": ..., "key_secret": ...} secret
func LoadRazorpayCredentials(ctx context.Context, store ports.SecretStore, path string) (*RazorpayCredentials, error) {
	secret, err := store.GetSecret(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load razorpay credentials: %w", err)
	}

	var creds RazorpayCredentials
	if err := json.Unmarshal([]byte(secret.Value), &creds); err != nil {
		return nil, fmt.Errorf("decode razorpay credentials at %s: %w", path, err)
	}
	if creds.KeyID == "" || creds.KeySecret == "" {
		return nil, fmt.Errorf("razorpay credentials at %s: key_id and key_secret are required", path)
	}
	return &creds, nil
}
