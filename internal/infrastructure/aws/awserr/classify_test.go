package awserr

import (
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	"retrieval-agent/internal/domain/entity"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"ResourceNotFoundException", entity.ErrSecretNotFound},
		{"ParameterNotFound", entity.ErrSecretNotFound},
		{"NoSuchKey", entity.ErrObjectNotFound},
		{"AccessDenied", entity.ErrAccessDenied},
		{"AccessDeniedException", entity.ErrAccessDenied},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			apiErr := &smithy.GenericAPIError{Code: tc.code, Message: "nope"}

			err := Classify(apiErr, "secret \"acme\"")
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, apiErr)
			assert.Contains(t, err.Error(), `secret "acme"`)
			assert.Equal(t, tc.code, Code(err))
		})
	}
}

func TestClassify_Other(t *testing.T) {
	boom := errors.New("dial tcp: timeout")

	err := Classify(boom, "object out/k")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, entity.ErrObjectNotFound)
	assert.Equal(t, "", Code(err))
	assert.NoError(t, Classify(nil, "x"))
}
