package secrets

import (
	"context"
	"fmt"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"go.uber.org/zap"
)

// GCPSecretManagerConfig contains configuration for GCP Secret Manager
type GCPSecretManagerConfig struct {
	ProjectID string
	CacheTTL  time.Duration
}

// DefaultGCPSecretManagerConfig returns sensible defaults for GCP Secret Manager
func DefaultGCPSecretManagerConfig(projectID string) *GCPSecretManagerConfig {
	return &GCPSecretManagerConfig{
		ProjectID: projectID,
		CacheTTL:  5 * time.Minute,
	}
}

// GCPSecretManager implements ports.SecretStore for Google Cloud Secret Manager.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS, workload identity or
// the default application credentials.
type GCPSecretManager struct {
	client    *secretmanager.Client
	logger    *zap.Logger
	cache     *secretCache
	projectID string
}

// NewGCPSecretManager creates a new GCP Secret Manager adapter
func NewGCPSecretManager(ctx context.Context, cfg *GCPSecretManagerConfig, logger *zap.Logger) (*GCPSecretManager, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("GCP project ID is required")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Secret Manager client: %w", err)
	}

	logger.Info("GCP Secret Manager initialized",
		zap.String("project_id", cfg.ProjectID),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)

	return &GCPSecretManager{
		client:    client,
		logger:    logger,
		cache:     newSecretCache(true, cfg.CacheTTL),
		projectID: cfg.ProjectID,
	}, nil
}

// Close closes the GCP Secret Manager client
func (sm *GCPSecretManager) Close() error {
	return sm.client.Close()
}

// GetSecret accesses the latest version of the named secret
func (sm *GCPSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := sm.cache.get(path); cached != nil {
		sm.logger.Debug("Secret cache hit", zap.String("path", path))
		return cached, nil
	}

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", sm.projectID, path)

	result, err := sm.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		sm.logger.Error("Failed to access GCP secret",
			zap.String("path", path),
			zap.String("secret_name", secretName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to access GCP secret %s: %w", path, err)
	}

	secret := &ports.Secret{
		Value:   string(result.GetPayload().GetData()),
		Version: extractVersionFromName(result.GetName()),
		Metadata: map[string]string{
			"gcp_project_id": sm.projectID,
			"gcp_secret":     path,
		},
	}

	sm.cache.set(path, secret)

	sm.logger.Info("Secret fetched from GCP",
		zap.String("path", path),
		zap.String("version", secret.Version),
	)

	return secret, nil
}

// extractVersionFromName returns the trailing version of
// projects/{project}/secrets/{secret}/versions/{version}
func extractVersionFromName(name string) string {
	if i := strings.LastIndex(name, "/versions/"); i >= 0 {
		return name[i+len("/versions/"):]
	}
	return "latest"
}
