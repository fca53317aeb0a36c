package agentinvoker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"retrieval-agent/internal/domain/entity"
	"retrieval-agent/internal/infrastructure/logger"
)

type fakeAgent struct {
	completion string
	err        error
	got        []entity.AgentInvocation
}

func (f *fakeAgent) Invoke(_ context.Context, inv entity.AgentInvocation) (string, error) {
	f.got = append(f.got, inv)
	return f.completion, f.err
}

func request() Request {
	return Request{
		TaskID:       "t1",
		URL:          "https://portal.example.com",
		Credentials:  entity.Credentials{Username: "alice", Password: "pa55-w0rd!"},
		Instructions: "Download the statement",
	}
}

func TestInvoke_Success(t *testing.T) {
	agent := &fakeAgent{completion: `{"documentContent":"QUJD","documentName":"r.pdf","documentContentType":"application/pdf","executionDetails":{"steps":3}}`}
	inv := New(agent, nil, logger.NewNop())

	result, err := inv.Invoke(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, "QUJD", result.DocumentContent)
	assert.Equal(t, "r.pdf", result.DocumentName)
	assert.Equal(t, "application/pdf", result.DocumentContentType)
	assert.JSONEq(t, `{"steps":3}`, string(result.ExecutionDetails))
	assert.Empty(t, result.Error)
	assert.True(t, result.HasDocument())

	require.Len(t, agent.got, 1)
	assert.Equal(t, "session-t1", agent.got[0].SessionID)
	assert.Contains(t, agent.got[0].InputText, "URL: https://portal.example.com")
	assert.Contains(t, agent.got[0].InputText, "Instructions: Download the statement")
	assert.Equal(t, map[string]string{"username": "alice", "password": "pa55-w0rd!"}, agent.got[0].SessionAttributes)
}

func TestInvoke_PasswordNeverInPromptOrLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	agent := &fakeAgent{completion: `{"documentName":"r.pdf"}`}
	inv := New(agent, nil, logger.NewFromZap(zap.New(core)))

	_, err := inv.Invoke(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, agent.got, 1)
	assert.NotContains(t, agent.got[0].InputText, "pa55-w0rd!")
	assert.NotContains(t, agent.got[0].InputText, "alice")

	for _, e := range logs.All() {
		assert.NotContains(t, e.Message, "pa55-w0rd!")
		for _, v := range e.ContextMap() {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, "pa55-w0rd!")
			}
		}
	}
}

func TestInvoke_MissingFieldsStayAbsent(t *testing.T) {
	inv := New(&fakeAgent{completion: `{"documentName":"r.pdf"}`}, nil, logger.NewNop())

	result, err := inv.Invoke(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, "r.pdf", result.DocumentName)
	assert.Empty(t, result.DocumentContent)
	assert.Empty(t, result.DocumentContentType)
	assert.Nil(t, result.ExecutionDetails)
	assert.False(t, result.HasDocument())
}

func TestInvoke_UnparseableCompletionIsSoftError(t *testing.T) {
	inv := New(&fakeAgent{completion: "I could not log in, sorry."}, nil, logger.NewNop())

	result, err := inv.Invoke(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, "Failed to parse agent response", result.Error)
	assert.False(t, result.HasDocument())
}

func TestInvoke_AgentError(t *testing.T) {
	boom := errors.New("throttling")
	inv := New(&fakeAgent{err: boom}, nil, logger.NewNop())

	_, err := inv.Invoke(context.Background(), request())
	assert.ErrorIs(t, err, boom)
}

func TestParseCompletion_WithTextAround(t *testing.T) {
	completion := "Here is the result:\n```json\n{\"documentContent\":\"QUJD\",\"documentName\":\"a.pdf\"}\n```\nDone."

	result, err := parseCompletion(completion)
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", result.DocumentName)
	assert.Equal(t, "QUJD", result.DocumentContent)
}

func TestParseCompletion_NonStringFieldsAreAbsent(t *testing.T) {
	result, err := parseCompletion(`{"documentContent":123,"documentName":null,"error":"login failed"}`)
	require.NoError(t, err)
	assert.Empty(t, result.DocumentContent)
	assert.Empty(t, result.DocumentName)
	assert.Equal(t, "login failed", result.Error)
}

func TestParseCompletion_Invalid(t *testing.T) {
	for _, completion := range []string{"", "not json", "{broken", "} {"} {
		_, err := parseCompletion(completion)
		assert.Error(t, err, "completion %q", completion)
	}
}

func TestParseCompletion_LargeContent(t *testing.T) {
	content := strings.Repeat("QUJD", 1<<16)
	result, err := parseCompletion(`{"documentContent":"` + content + `","documentName":"big.pdf"}`)
	require.NoError(t, err)
	assert.Len(t, result.DocumentContent, len(content))
}
