// Package s3store implements object storage on Amazon S3.
package s3store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/domain/entity"
	"retrieval-agent/internal/infrastructure/aws/awserr"
)

var (
	_ output.ObjectStorePort = (*Store)(nil)
	_ output.ObjectLinker    = (*Store)(nil)
)

// maxObjectSize bounds prompt file reads.
const maxObjectSize = 10 << 20

type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Store struct {
	client    API
	presigner Presigner
}

// New creates a store. presigner may be nil when expiring links are not used.
func New(client API, presigner Presigner) *Store {
	return &Store{
		client:    client,
		presigner: presigner,
	}
}

func (s *Store) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, awserr.Classify(err, fmt.Sprintf("object '%s' in bucket '%s'", key, bucket))
	}
	defer out.Body.Close()

	body, err := io.ReadAll(io.LimitReader(out.Body, maxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("read object %s/%s: %w", bucket, key, err)
	}
	if len(body) > maxObjectSize {
		return nil, fmt.Errorf("object %s/%s exceeds %d bytes", bucket, key, maxObjectSize)
	}
	return body, nil
}

func (s *Store) PutObject(ctx context.Context, obj entity.Object) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(obj.Bucket),
		Key:           aws.String(obj.Key),
		Body:          bytes.NewReader(obj.Body),
		ContentLength: aws.Int64(int64(len(obj.Body))),
		ContentType:   aws.String(obj.ContentType),
	})
	if err != nil {
		return awserr.Classify(err, fmt.Sprintf("put object '%s' in bucket '%s'", obj.Key, obj.Bucket))
	}
	return nil
}

// ObjectURL returns the virtual-hosted public URL, or a presigned GET URL
// valid for ttl when ttl > 0.
func (s *Store) ObjectURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return PublicURL(bucket, key), nil
	}
	if s.presigner == nil {
		return "", fmt.Errorf("presigned links requested but no presigner configured")
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}

func PublicURL(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, strings.Join(segments, "/"))
}
