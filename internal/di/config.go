package di

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"retrieval-agent/internal/application/port/output"
)

const (
	AgentBackendBedrock = "bedrock"
	AgentBackendOpenAI  = "openai"

	SecretBackendSecretsManager = "secretsmanager"
	SecretBackendSSM            = "ssm"
)

type Config struct {
	AWSRegion string
	LogLevel  string

	AgentBackend        string
	BedrockAgentID      string
	BedrockAgentAliasID string
	BedrockEnableTrace  bool

	GatewayURL    string
	GatewayAPIKey string
	GatewayModel  string

	SecretBackend   string
	PromptBucket    string
	SenderEmail     string
	DocumentLinkTTL time.Duration
}

func ConfigFromEnv(env output.ConfigPort) (Config, error) {
	ttl, err := env.GetDuration("DOCUMENT_LINK_TTL", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AWSRegion: env.Get("AWS_REGION"),
		LogLevel:  env.GetWithDefault("LOG_LEVEL", "info"),

		AgentBackend:        strings.ToLower(env.GetWithDefault("AGENT_BACKEND", AgentBackendBedrock)),
		BedrockAgentID:      env.Get("BEDROCK_AGENT_ID"),
		BedrockAgentAliasID: env.Get("BEDROCK_AGENT_ALIAS_ID"),
		BedrockEnableTrace:  env.GetBool("BEDROCK_ENABLE_TRACE", true),

		GatewayURL:    env.Get("AGENT_GATEWAY_URL"),
		GatewayAPIKey: env.Get("AGENT_GATEWAY_API_KEY"),
		GatewayModel:  env.GetWithDefault("AGENT_GATEWAY_MODEL", "document-retrieval"),

		SecretBackend:   strings.ToLower(env.GetWithDefault("SECRET_BACKEND", SecretBackendSecretsManager)),
		PromptBucket:    env.Get("PROMPT_BUCKET"),
		SenderEmail:     env.Get("SENDER_EMAIL"),
		DocumentLinkTTL: ttl,
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}

	require("PROMPT_BUCKET", c.PromptBucket)
	require("SENDER_EMAIL", c.SenderEmail)

	switch c.AgentBackend {
	case AgentBackendBedrock:
		require("BEDROCK_AGENT_ID", c.BedrockAgentID)
		require("BEDROCK_AGENT_ALIAS_ID", c.BedrockAgentAliasID)
	case AgentBackendOpenAI:
		require("AGENT_GATEWAY_URL", c.GatewayURL)
	default:
		errs = append(errs, fmt.Errorf("unknown AGENT_BACKEND %q", c.AgentBackend))
	}

	switch c.SecretBackend {
	case SecretBackendSecretsManager, SecretBackendSSM:
	default:
		errs = append(errs, fmt.Errorf("unknown SECRET_BACKEND %q", c.SecretBackend))
	}

	if c.DocumentLinkTTL < 0 {
		errs = append(errs, fmt.Errorf("DOCUMENT_LINK_TTL must not be negative"))
	}
	// SigV4 presigned URLs are capped at one week.
	if c.DocumentLinkTTL > 7*24*time.Hour {
		errs = append(errs, fmt.Errorf("DOCUMENT_LINK_TTL must be at most 168h"))
	}

	return errors.Join(errs...)
}
