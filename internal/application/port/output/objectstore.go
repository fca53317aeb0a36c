package output

import (
	"context"
	"time"

	"retrieval-agent/internal/domain/entity"
)

type ObjectStorePort interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, obj entity.Object) error
}

// ObjectLinker produces download links for stored objects. A zero ttl means
// a permanent public URL.
type ObjectLinker interface {
	ObjectURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
