// Package openaicompat talks to an agent gateway that exposes the OpenAI chat
// completions API. Session id and session attributes travel as HTTP headers
// so they never become part of the conversation.
package openaicompat

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/domain/entity"
)

var _ output.AgentPort = (*Adapter)(nil)

const (
	HeaderSessionID       = "X-Agent-Session-Id"
	HeaderAttributePrefix = "X-Agent-Session-Attr-"
	defaultRequestTimeout = 15 * time.Minute
	redactedHeaderValue   = "[REDACTED]"
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Logger  output.LoggerPort
}

type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

type sessionKey struct{}

type session struct {
	id    string
	attrs map[string]string
}

type sessionTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *sessionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if s, ok := req.Context().Value(sessionKey{}).(session); ok {
		req = req.Clone(req.Context())
		req.Header.Set(HeaderSessionID, s.id)
		for k, v := range s.attrs {
			req.Header.Set(HeaderAttributePrefix+k, v)
		}
	}

	if t.logger != nil {
		t.logger.Info("HTTP Request",
			"method", req.Method,
			"url", req.URL.String(),
			"headers", redactHeaders(req.Header),
			"contentLength", req.ContentLength,
		)
	}

	resp, err := t.base.RoundTrip(req)

	if t.logger != nil && resp != nil {
		t.logger.Info("HTTP Response",
			"status", resp.Status,
			"statusCode", resp.StatusCode,
		)
	}

	return resp, err
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		switch {
		case strings.HasPrefix(k, HeaderAttributePrefix), k == "Authorization":
			out[k] = redactedHeaderValue
		default:
			out[k] = strings.Join(v, ",")
		}
	}
	return out
}

func NewAdapter(cfg Config) *Adapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	config.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &sessionTransport{
			base:   http.DefaultTransport,
			logger: cfg.Logger,
		},
	}

	return &Adapter{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

func (a *Adapter) Invoke(ctx context.Context, inv entity.AgentInvocation) (string, error) {
	ctx = context.WithValue(ctx, sessionKey{}, session{id: inv.SessionID, attrs: inv.SessionAttributes})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: inv.InputText},
		},
		Temperature: 0,
		User:        inv.SessionID,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}
