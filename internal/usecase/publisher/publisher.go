package publisher

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/domain/entity"
)

type Publisher struct {
	store   output.ObjectStorePort
	linker  output.ObjectLinker
	linkTTL time.Duration
}

// New creates a publisher. linkTTL > 0 makes DocumentURL return expiring links.
func New(store output.ObjectStorePort, linker output.ObjectLinker, linkTTL time.Duration) *Publisher {
	return &Publisher{
		store:   store,
		linker:  linker,
		linkTTL: linkTTL,
	}
}

// Publish decodes the document and writes it once at
// {userId}/{taskId}/{documentName}. Existing objects are overwritten.
func (p *Publisher) Publish(ctx context.Context, req entity.PublishRequest) (string, error) {
	if !entity.ValidDocumentName(req.DocumentName) {
		return "", fmt.Errorf("publish: %w: invalid document name %q", entity.ErrDocumentMissing, req.DocumentName)
	}

	body, err := decodeBase64(req.Base64Content)
	if err != nil {
		return "", fmt.Errorf("decode document %q: %w", req.DocumentName, err)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = entity.DefaultContentType
	}

	key := entity.ArtifactKey(req.UserID, req.TaskID, req.DocumentName)
	if err := p.store.PutObject(ctx, entity.Object{
		Bucket:      req.Bucket,
		Key:         key,
		Body:        body,
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("store document at %s/%s: %w", req.Bucket, key, err)
	}

	return key, nil
}

func (p *Publisher) DocumentURL(ctx context.Context, bucket, key string) (string, error) {
	return p.linker.ObjectURL(ctx, bucket, key, p.linkTTL)
}

func (p *Publisher) LinkTTL() time.Duration {
	return p.linkTTL
}

// decodeBase64 accepts standard, unpadded and URL-safe alphabets; agents are
// not consistent about which one they produce.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}

	var firstErr error
	for _, enc := range encodings {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
