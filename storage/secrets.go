package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

// SecretsManagerAPI is the subset of the Secrets Manager client used by
// SecretsManagerSource.
type SecretsManagerAPI interface {
	GetSecretValueWithContext(ctx aws.Context, in *secretsmanager.GetSecretValueInput, opts ...request.Option) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerSource fetches secrets from AWS Secrets Manager by name.
type SecretsManagerSource struct {
	api SecretsManagerAPI
}

// NewSecretsManagerSource wraps a Secrets Manager client.
func NewSecretsManagerSource(api SecretsManagerAPI) *SecretsManagerSource {
	return &SecretsManagerSource{api: api}
}

// GetSecret returns the string value of the named secret. Missing or binary
// secrets are errors.
func (s *SecretsManagerSource) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := s.api.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %q: %w", name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %q has no string value", name)
	}
	return *out.SecretString, nil
}

// StaticSource serves secrets from a fixed map. Used by tests and by the local
// server when no real secret store is available.
type StaticSource map[string]string

// GetSecret returns the named secret or an error when absent.
func (s StaticSource) GetSecret(_ context.Context, name string) (string, error) {
	secret, ok := s[name]
	if !ok {
		return "", fmt.Errorf("secret %q not found", name)
	}
	return secret, nil
}
