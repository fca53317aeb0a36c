// Package bedrockagent invokes an Amazon Bedrock agent and collects its
// streamed completion.
package bedrockagent

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/domain/entity"
	"retrieval-agent/internal/infrastructure/aws/awserr"
)

var _ output.AgentPort = (*Adapter)(nil)

type API interface {
	InvokeAgent(ctx context.Context, params *bedrockagentruntime.InvokeAgentInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.InvokeAgentOutput, error)
}

type Config struct {
	AgentID      string
	AgentAliasID string
	EnableTrace  bool
}

type Adapter struct {
	client API
	cfg    Config
	logger output.LoggerPort
}

func New(client API, cfg Config, logger output.LoggerPort) *Adapter {
	return &Adapter{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

func (a *Adapter) Invoke(ctx context.Context, inv entity.AgentInvocation) (string, error) {
	out, err := a.client.InvokeAgent(ctx, a.buildInput(inv))
	if err != nil {
		return "", awserr.Classify(err, fmt.Sprintf("bedrock agent %s/%s", a.cfg.AgentID, a.cfg.AgentAliasID))
	}

	stream := out.GetStream()
	defer stream.Close()

	return a.collect(stream, inv.SessionID)
}

func (a *Adapter) buildInput(inv entity.AgentInvocation) *bedrockagentruntime.InvokeAgentInput {
	return &bedrockagentruntime.InvokeAgentInput{
		AgentId:      aws.String(a.cfg.AgentID),
		AgentAliasId: aws.String(a.cfg.AgentAliasID),
		SessionId:    aws.String(inv.SessionID),
		InputText:    aws.String(inv.InputText),
		EnableTrace:  aws.Bool(a.cfg.EnableTrace),
		SessionState: &types.SessionState{
			SessionAttributes: inv.SessionAttributes,
		},
	}
}

type eventStream interface {
	Events() <-chan types.ResponseStream
	Err() error
}

// collect concatenates completion chunks. Trace events are counted but their
// contents are never logged: they can echo session attributes.
func (a *Adapter) collect(stream eventStream, sessionID string) (string, error) {
	var (
		completion strings.Builder
		chunks     int
		traces     int
	)

	for event := range stream.Events() {
		switch v := event.(type) {
		case *types.ResponseStreamMemberChunk:
			completion.Write(v.Value.Bytes)
			chunks++
		case *types.ResponseStreamMemberTrace:
			traces++
		default:
			a.logger.Debug("Ignoring agent stream event", "type", fmt.Sprintf("%T", v))
		}
	}

	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("agent stream error: %w", err)
	}

	a.logger.Info("Agent stream completed",
		"sessionId", sessionID,
		"chunks", chunks,
		"traceEvents", traces,
		"completionLen", completion.Len(),
	)

	return completion.String(), nil
}
