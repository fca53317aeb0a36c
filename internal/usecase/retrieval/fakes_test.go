package retrieval

import (
	"context"
	"time"

	"retrieval-agent/internal/domain/entity"
)

type fakeSecrets struct {
	values map[string]string
	err    error
	calls  int
}

func (f *fakeSecrets) GetSecret(_ context.Context, name string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.values[name]
	if !ok {
		return "", entity.ErrSecretNotFound
	}
	return v, nil
}

type fakeObjects struct {
	objects map[string][]byte
	puts    []entity.Object
	putErr  error
}

func (f *fakeObjects) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	b, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, entity.ErrObjectNotFound
	}
	return b, nil
}

func (f *fakeObjects) PutObject(_ context.Context, obj entity.Object) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts = append(f.puts, obj)
	return nil
}

func (f *fakeObjects) ObjectURL(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://" + bucket + ".s3.amazonaws.com/" + key, nil
}

type fakeAgent struct {
	completion string
	err        error
	got        []entity.AgentInvocation
}

func (f *fakeAgent) Invoke(_ context.Context, inv entity.AgentInvocation) (string, error) {
	f.got = append(f.got, inv)
	return f.completion, f.err
}

type fakeMailer struct {
	sent []entity.Email
	err  error
}

func (f *fakeMailer) Send(_ context.Context, e entity.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, e)
	return nil
}
