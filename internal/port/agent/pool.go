package agent

import (
	"context"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
)

// PoolReader is the narrow interface the ranker needs: the active, public
// candidate pool ordered by recency. The ranker depends only on this method,
// not the full Repository.
type PoolReader interface {
	ListActive(ctx context.Context, limit int) ([]domainagent.Agent, error)
}
