package ranker

import (
	"context"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
	"github.com/untangle-ai/agent-broker/internal/domain/broker"
)

// Ranker scores the candidate pool against a requirement and returns at most
// topN agents, best first. An empty result is not an error.
type Ranker interface {
	Rank(ctx context.Context, req broker.Requirement, topN int) ([]domainagent.Agent, error)
}
