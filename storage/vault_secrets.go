package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"
)

// VaultSource fetches secrets from a HashiCorp Vault KV v2 mount. It serves
// the same "fetch secret by name" contract as SecretsManagerSource for
// self-hosted deployments.
type VaultSource struct {
	client    *api.Client
	mountPath string
}

// NewVaultSource creates a Vault-backed secret source.
//
// Parameters:
//   - address: Vault server address (e.g. https://vault.example.com:8200)
//   - token: Vault token used for authentication
//   - mountPath: KV v2 mount path (e.g. "secret")
func NewVaultSource(address, token, mountPath string) (*VaultSource, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	client.SetToken(token)

	return &VaultSource{
		client:    client,
		mountPath: strings.TrimSuffix(mountPath, "/"),
	}, nil
}

// GetSecret reads the named KV v2 secret and returns its "value" field.
func (v *VaultSource) GetSecret(ctx context.Context, name string) (string, error) {
	secret, err := v.client.KVv2(v.mountPath).Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("read secret %q from vault: %w", name, err)
	}
	value, ok := secret.Data["value"].(string)
	if !ok {
		return "", fmt.Errorf("secret %q has no string 'value' field", name)
	}
	return value, nil
}
