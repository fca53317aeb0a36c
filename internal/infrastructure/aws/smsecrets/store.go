// Package smsecrets reads secrets from AWS Secrets Manager.
package smsecrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/infrastructure/aws/awserr"
)

var _ output.SecretStorePort = (*Store)(nil)

type API interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type Store struct {
	client API
}

func New(client API) *Store {
	return &Store{client: client}
}

func (s *Store) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", awserr.Classify(err, fmt.Sprintf("secret %q", name))
	}

	if out.SecretString != nil {
		return *out.SecretString, nil
	}
	if len(out.SecretBinary) > 0 {
		return string(out.SecretBinary), nil
	}
	return "", fmt.Errorf("secret %q has no value", name)
}
