package output

import (
	"context"

	"retrieval-agent/internal/domain/entity"
)

// AgentPort is the managed agent service. Invoke blocks until the agent
// returns its completion string.
type AgentPort interface {
	Invoke(ctx context.Context, inv entity.AgentInvocation) (string, error)
}
