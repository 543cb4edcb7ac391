package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Metadata  map[string]string
	Value     string
	Version   string
	CreatedAt string
}

// SecretStore retrieves secrets from a secret management backend.
// Path format depends on implementation:
//   - local: file path relative to the base directory
//   - AWS: secret name or ARN
//   - Vault: path below the KV mount
//   - GCP: secret name, resolved to the latest version
type SecretStore interface {
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
