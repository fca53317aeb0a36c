package agentinvoker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/domain/entity"
	"retrieval-agent/internal/infrastructure/logger"
	"retrieval-agent/internal/infrastructure/prompts"
)

const parseFailureMessage = "Failed to parse agent response"

type Request struct {
	TaskID       string
	URL          string
	Credentials  entity.Credentials
	Instructions string
}

type Invoker struct {
	agent    output.AgentPort
	composer *prompts.InstructionComposer
	logger   output.LoggerPort
}

func New(agent output.AgentPort, composer *prompts.InstructionComposer, logger output.LoggerPort) *Invoker {
	if composer == nil {
		composer = prompts.NewInstructionComposer("")
	}
	return &Invoker{
		agent:    agent,
		composer: composer,
		logger:   logger,
	}
}

// Invoke runs the agent synchronously. A completion that cannot be parsed is
// reported through AgentResult.Error, not as a returned error.
func (inv *Invoker) Invoke(ctx context.Context, req Request) (entity.AgentResult, error) {
	log := logger.Redacting(inv.logger, req.Credentials.Password, req.Credentials.Username)

	text, err := inv.composer.Compose(prompts.InstructionData{
		URL:          req.URL,
		Instructions: req.Instructions,
	})
	if err != nil {
		return entity.AgentResult{}, err
	}

	invocation := entity.AgentInvocation{
		SessionID:         "session-" + req.TaskID,
		InputText:         text,
		SessionAttributes: req.Credentials.SessionAttributes(),
	}

	log.Info("Invoking agent",
		"sessionId", invocation.SessionID,
		"inputLen", len(invocation.InputText),
	)

	completion, err := inv.agent.Invoke(ctx, invocation)
	if err != nil {
		return entity.AgentResult{}, fmt.Errorf("agent invocation failed: %w", err)
	}

	result, err := parseCompletion(completion)
	if err != nil {
		log.Error("Error parsing agent response", "error", err, "completionLen", len(completion))
		return entity.AgentResult{Error: parseFailureMessage}, nil
	}

	log.Info("Agent completed",
		"documentName", result.DocumentName,
		"contentType", result.DocumentContentType,
		"hasContent", result.DocumentContent != "",
		"agentError", result.Error,
	)

	return result, nil
}

// parseCompletion accepts a JSON object optionally surrounded by prose or a
// markdown code fence.
func parseCompletion(completion string) (entity.AgentResult, error) {
	completion = strings.TrimSpace(completion)

	start := strings.Index(completion, "{")
	end := strings.LastIndex(completion, "}")
	if start == -1 || end == -1 || end < start {
		return entity.AgentResult{}, fmt.Errorf("no JSON found in response")
	}

	var payload struct {
		DocumentContent     json.RawMessage `json:"documentContent"`
		DocumentName        json.RawMessage `json:"documentName"`
		DocumentContentType json.RawMessage `json:"documentContentType"`
		ExecutionDetails    json.RawMessage `json:"executionDetails"`
		Error               json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal([]byte(completion[start:end+1]), &payload); err != nil {
		return entity.AgentResult{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	result := entity.AgentResult{
		DocumentContent:     stringField(payload.DocumentContent),
		DocumentName:        stringField(payload.DocumentName),
		DocumentContentType: stringField(payload.DocumentContentType),
		Error:               stringField(payload.Error),
	}
	if len(payload.ExecutionDetails) > 0 && string(payload.ExecutionDetails) != "null" {
		result.ExecutionDetails = payload.ExecutionDetails
	}

	return result, nil
}

// stringField treats anything but a JSON string as absent.
func stringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
