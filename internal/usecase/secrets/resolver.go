package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/domain/entity"
)

// Resolver reads JSON secrets from the secret store. Secret values are never
// logged or included in returned errors.
type Resolver struct {
	store output.SecretStorePort
}

func New(store output.SecretStorePort) *Resolver {
	return &Resolver{store: store}
}

type urlSecret struct {
	URL string `json:"url"`
}

func (r *Resolver) ResolveURL(ctx context.Context, secretName string) (string, error) {
	raw, err := r.store.GetSecret(ctx, secretName)
	if err != nil {
		return "", fmt.Errorf("get url secret %q: %w", secretName, err)
	}

	var s urlSecret
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return "", fmt.Errorf("parse url secret %q: %w", secretName, stripValue(err))
	}
	if strings.TrimSpace(s.URL) == "" {
		return "", fmt.Errorf("url secret %q has no url field", secretName)
	}

	return strings.TrimSpace(s.URL), nil
}

func (r *Resolver) ResolveCredentials(ctx context.Context, secretName string) (entity.Credentials, error) {
	raw, err := r.store.GetSecret(ctx, secretName)
	if err != nil {
		return entity.Credentials{}, fmt.Errorf("get credentials secret %q: %w", secretName, err)
	}

	var creds entity.Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return entity.Credentials{}, fmt.Errorf("parse credentials secret %q: %w", secretName, stripValue(err))
	}

	return creds, nil
}

// stripValue drops JSON error details that may quote the secret body.
func stripValue(err error) error {
	switch e := err.(type) {
	case *json.SyntaxError:
		return fmt.Errorf("invalid JSON at offset %d", e.Offset)
	case *json.UnmarshalTypeError:
		return fmt.Errorf("field %q has wrong type %s", e.Field, e.Value)
	default:
		return fmt.Errorf("invalid JSON")
	}
}
