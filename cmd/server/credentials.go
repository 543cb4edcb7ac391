package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/squareboat/razorpay-cashier/internal/adapters/razorpay"
	"github.com/squareboat/razorpay-cashier/internal/adapters/secrets"
	"github.com/squareboat/razorpay-cashier/internal/config"
)

// razorpayConfig resolves the gateway credentials. With SECRET_MANAGER=env the
// configured key pair is used; any other backend replaces it with the secret at
// SECRET_PATH. The returned closer, if any, releases the backend client.
func razorpayConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (razorpay.Config, io.Closer, error) {
	rc := razorpay.Config{
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
		BaseURL:   cfg.Razorpay.BaseURL,
	}

	store, err := secrets.NewStore(ctx, secrets.Options{
		Backend:      cfg.Secrets.Manager,
		LocalDir:     cfg.Secrets.LocalDir,
		AWSRegion:    cfg.Secrets.AWSRegion,
		AWSEndpoint:  cfg.Secrets.AWSEndpoint,
		VaultAddress: cfg.Secrets.VaultAddress,
		VaultToken:   cfg.Secrets.VaultToken,
		VaultMount:   cfg.Secrets.VaultMount,
		GCPProjectID: cfg.Secrets.GCPProjectID,
	}, logger)
	if err != nil {
		return rc, nil, fmt.Errorf("init %s secret manager: %w", cfg.Secrets.Manager, err)
	}
	if store == nil {
		logger.Info("Using Razorpay credentials from environment")
		return rc, nil, nil
	}

	closer, _ := store.(io.Closer)

	creds, err := secrets.LoadRazorpayCredentials(ctx, store, cfg.Secrets.Path)
	if err != nil {
		return rc, closer, err
	}
	rc.KeyID = creds.KeyID
	rc.KeySecret = creds.KeySecret

	logger.Info("Loaded Razorpay credentials from secret manager",
		zap.String("secret_manager", cfg.Secrets.Manager),
		zap.String("secret_path", cfg.Secrets.Path),
	)
	return rc, closer, nil
}
