package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerSource reads the access token on every call.
type SecretsManagerSource struct {
	client     SecretsManagerAPI
	secretName string
}

func NewSecretsManagerSource(client SecretsManagerAPI, secretName string) *SecretsManagerSource {
	return &SecretsManagerSource{client: client, secretName: secretName}
}

func (s *SecretsManagerSource) Token(ctx context.Context) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: awssdk.String(s.secretName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", s.secretName, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", s.secretName)
	}
	return *out.SecretString, nil
}

// StaticSource serves a token from configuration. Used in self-hosted mode.
type StaticSource string

func (s StaticSource) Token(ctx context.Context) (string, error) {
	return string(s), nil
}
