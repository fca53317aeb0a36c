package output

import "context"

type SecretStorePort interface {
	GetSecret(ctx context.Context, name string) (string, error)
}
