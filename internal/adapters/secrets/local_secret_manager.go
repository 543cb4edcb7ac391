package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"go.uber.org/zap"
)

// LocalSecretStore implements ports.SecretStore using the local filesystem
// WARNING: This is for development only. Use AWS Secrets Manager, Vault or GCP in production.
type LocalSecretStore struct {
	logger   *zap.Logger
	basePath string
}

// NewLocalSecretStore creates a new local filesystem secret store
func NewLocalSecretStore(basePath string, logger *zap.Logger) *LocalSecretStore {
	return &LocalSecretStore{
		basePath: basePath,
		logger:   logger,
	}
}

// GetSecret reads a secret file below the base directory.
// Files holding {"value": ..., "tags": ..., "created_at": ...} are unwrapped;
// anything else is returned verbatim with surrounding whitespace trimmed.
func (m *LocalSecretStore) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	filePath := filepath.Join(m.basePath, filepath.Clean("/"+secretPath))

	m.logger.Debug("Reading secret from filesystem",
		zap.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("secret not found: %s", secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	var envelope struct {
		Value     *string           `json:"value"`
		Tags      map[string]string `json:"tags"`
		CreatedAt string            `json:"created_at"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Value != nil {
		return &ports.Secret{
			Value:     *envelope.Value,
			Version:   "v1",
			Metadata:  envelope.Tags,
			CreatedAt: envelope.CreatedAt,
		}, nil
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return nil, fmt.Errorf("empty secret value in file %s", filePath)
	}

	return &ports.Secret{
		Value:   value,
		Version: "v1",
	}, nil
}
