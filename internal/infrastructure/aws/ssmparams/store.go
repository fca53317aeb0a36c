// Package ssmparams reads secrets stored as SecureString parameters in SSM
// Parameter Store.
package ssmparams

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/infrastructure/aws/awserr"
)

var _ output.SecretStorePort = (*Store)(nil)

type API interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type Store struct {
	client API
}

func New(client API) *Store {
	return &Store{client: client}
}

func (s *Store) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", awserr.Classify(err, fmt.Sprintf("parameter %q", name))
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %q has no value", name)
	}
	return *out.Parameter.Value, nil
}
