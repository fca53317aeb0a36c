package instructions

import (
	"context"
	"fmt"
	"unicode/utf8"

	"retrieval-agent/internal/application/port/output"
)

type Loader struct {
	store output.ObjectStorePort
}

func New(store output.ObjectStorePort) *Loader {
	return &Loader{store: store}
}

// Load returns the prompt file at bucket/key as UTF-8 text.
func (l *Loader) Load(ctx context.Context, bucket, key string) (string, error) {
	body, err := l.store.GetObject(ctx, bucket, key)
	if err != nil {
		return "", fmt.Errorf("load prompt file %q from bucket %q: %w", key, bucket, err)
	}

	if !utf8.Valid(body) {
		return "", fmt.Errorf("prompt file %q is not valid UTF-8", key)
	}

	// A UTF-8 BOM from editors on Windows is not part of the instructions.
	if len(body) >= 3 && body[0] == 0xEF && body[1] == 0xBB && body[2] == 0xBF {
		body = body[3:]
	}

	return string(body), nil
}
