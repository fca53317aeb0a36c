package s3store

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retrieval-agent/internal/domain/entity"
)

type fakeS3 struct {
	body   string
	getErr error
	put    *s3.PutObjectInput
	putErr error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	return &s3.PutObjectOutput{}, f.putErr
}

type fakePresigner struct {
	expires time.Duration
}

func (f *fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{
		URL:    "https://" + aws.ToString(in.Bucket) + ".s3.amazonaws.com/" + aws.ToString(in.Key) + "?X-Amz-Signature=sig",
		Method: http.MethodGet,
	}, nil
}

func TestGetObject(t *testing.T) {
	s := New(&fakeS3{body: "instructions"}, nil)

	b, err := s.GetObject(context.Background(), "prompts", "acme/prompt.txt")
	require.NoError(t, err)
	assert.Equal(t, "instructions", string(b))
}

func TestGetObject_NoSuchKey(t *testing.T) {
	s := New(&fakeS3{getErr: &types.NoSuchKey{}}, nil)

	_, err := s.GetObject(context.Background(), "prompts", "acme/prompt.txt")
	assert.ErrorIs(t, err, entity.ErrObjectNotFound)
	assert.ErrorContains(t, err, "object 'acme/prompt.txt' in bucket 'prompts'")
}

func TestGetObject_TooLarge(t *testing.T) {
	s := New(&fakeS3{body: strings.Repeat("x", maxObjectSize+1)}, nil)

	_, err := s.GetObject(context.Background(), "prompts", "big")
	assert.ErrorContains(t, err, "exceeds")
}

func TestPutObject(t *testing.T) {
	api := &fakeS3{}
	s := New(api, nil)

	err := s.PutObject(context.Background(), entity.Object{
		Bucket: "out", Key: "u1/t1/r.pdf", Body: []byte("ABC"), ContentType: "application/pdf",
	})
	require.NoError(t, err)

	require.NotNil(t, api.put)
	assert.Equal(t, "out", aws.ToString(api.put.Bucket))
	assert.Equal(t, "u1/t1/r.pdf", aws.ToString(api.put.Key))
	assert.Equal(t, "application/pdf", aws.ToString(api.put.ContentType))
	assert.EqualValues(t, 3, aws.ToInt64(api.put.ContentLength))
	body, _ := io.ReadAll(api.put.Body)
	assert.Equal(t, "ABC", string(body))
}

func TestObjectURL_Public(t *testing.T) {
	s := New(&fakeS3{}, nil)

	u, err := s.ObjectURL(context.Background(), "out", "u1/t1/my report.pdf", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://out.s3.amazonaws.com/u1/t1/my%20report.pdf", u)
}

func TestObjectURL_Presigned(t *testing.T) {
	p := &fakePresigner{}
	s := New(&fakeS3{}, p)

	u, err := s.ObjectURL(context.Background(), "out", "u1/t1/r.pdf", 7*24*time.Hour)
	require.NoError(t, err)
	assert.Contains(t, u, "X-Amz-Signature=sig")
	assert.Equal(t, 7*24*time.Hour, p.expires)
}

func TestObjectURL_PresignedWithoutPresigner(t *testing.T) {
	_, err := New(&fakeS3{}, nil).ObjectURL(context.Background(), "out", "k", time.Hour)
	assert.Error(t, err)
}
