package di

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"retrieval-agent/internal/application/port/input"
	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/infrastructure/agent/openaicompat"
	"retrieval-agent/internal/infrastructure/aws/bedrockagent"
	"retrieval-agent/internal/infrastructure/aws/s3store"
	"retrieval-agent/internal/infrastructure/aws/sesmail"
	"retrieval-agent/internal/infrastructure/aws/smsecrets"
	"retrieval-agent/internal/infrastructure/aws/ssmparams"
	"retrieval-agent/internal/infrastructure/logger"
	"retrieval-agent/internal/infrastructure/prompts"
	"retrieval-agent/internal/usecase/agentinvoker"
	"retrieval-agent/internal/usecase/instructions"
	"retrieval-agent/internal/usecase/notifier"
	"retrieval-agent/internal/usecase/publisher"
	"retrieval-agent/internal/usecase/retrieval"
	"retrieval-agent/internal/usecase/secrets"
)

// Container holds process-lifetime clients. Invocations only read from it.
type Container struct {
	Config     Config
	Logger     output.LoggerPort
	TaskRunner input.TaskRunner
}

// Ports are the outbound adapters the task runner is built from.
type Ports struct {
	Secrets output.SecretStorePort
	Objects output.ObjectStorePort
	Linker  output.ObjectLinker
	Agent   output.AgentPort
	Mailer  output.MailerPort
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.NewLoggerAdapter(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg)
	objects := s3store.New(s3Client, s3.NewPresignClient(s3Client))

	var secretStore output.SecretStorePort
	switch cfg.SecretBackend {
	case SecretBackendSSM:
		secretStore = ssmparams.New(ssm.NewFromConfig(awsCfg))
	default:
		secretStore = smsecrets.New(secretsmanager.NewFromConfig(awsCfg))
	}

	var agent output.AgentPort
	switch cfg.AgentBackend {
	case AgentBackendOpenAI:
		agent = openaicompat.NewAdapter(openaicompat.Config{
			APIKey:  cfg.GatewayAPIKey,
			Model:   cfg.GatewayModel,
			BaseURL: cfg.GatewayURL,
			Logger:  log,
		})
	default:
		agent = bedrockagent.New(bedrockagentruntime.NewFromConfig(awsCfg), bedrockagent.Config{
			AgentID:      cfg.BedrockAgentID,
			AgentAliasID: cfg.BedrockAgentAliasID,
			EnableTrace:  cfg.BedrockEnableTrace,
		}, log)
	}

	return Build(cfg, Ports{
		Secrets: secretStore,
		Objects: objects,
		Linker:  objects,
		Agent:   agent,
		Mailer:  sesmail.New(ses.NewFromConfig(awsCfg), log),
	}, log), nil
}

// Build wires the use cases on top of already constructed ports.
func Build(cfg Config, ports Ports, log output.LoggerPort) *Container {
	uc := retrieval.New(retrieval.Config{PromptBucket: cfg.PromptBucket}, retrieval.Deps{
		Secrets:      secrets.New(ports.Secrets),
		Instructions: instructions.New(ports.Objects),
		Agent:        agentinvoker.New(ports.Agent, prompts.NewInstructionComposer(""), log),
		Publisher:    publisher.New(ports.Objects, ports.Linker, cfg.DocumentLinkTTL),
		Notifier:     notifier.New(ports.Mailer, cfg.SenderEmail),
		Logger:       log,
	})

	return &Container{
		Config:     cfg,
		Logger:     log,
		TaskRunner: uc,
	}
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
