package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvService_GetWithDefault(t *testing.T) {
	t.Setenv("RA_TEST_VALUE", "set")
	e := &EnvService{}

	assert.Equal(t, "set", e.GetWithDefault("RA_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", e.GetWithDefault("RA_TEST_UNSET", "fallback"))
}

func TestEnvService_GetBool(t *testing.T) {
	t.Setenv("RA_TEST_BOOL", "true")
	t.Setenv("RA_TEST_BAD_BOOL", "maybe")
	e := &EnvService{}

	assert.True(t, e.GetBool("RA_TEST_BOOL", false))
	assert.False(t, e.GetBool("RA_TEST_BAD_BOOL", false))
	assert.True(t, e.GetBool("RA_TEST_UNSET", true))
}

func TestEnvService_GetDuration(t *testing.T) {
	e := &EnvService{}

	t.Setenv("RA_TEST_TTL", "168h")
	d, err := e.GetDuration("RA_TEST_TTL", 0)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, d)

	t.Setenv("RA_TEST_TTL", "3600")
	d, err = e.GetDuration("RA_TEST_TTL", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)

	d, err = e.GetDuration("RA_TEST_TTL_UNSET", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	t.Setenv("RA_TEST_TTL", "soon")
	_, err = e.GetDuration("RA_TEST_TTL", 0)
	assert.Error(t, err)
}

func TestInLambda(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	assert.False(t, InLambda())

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "retrieval-trigger")
	assert.True(t, InLambda())
}
