package agent

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
)

var ErrNotFound = errors.New("agent not found")

// Repository manages agent records in the database.
type Repository interface {
	Create(ctx context.Context, a domainagent.Agent) (domainagent.Agent, error)
	GetByID(ctx context.Context, id uuid.UUID) (domainagent.Agent, error)
	List(ctx context.Context, filters domainagent.ListFilters) ([]domainagent.Agent, error)
	Update(ctx context.Context, a domainagent.Agent) (domainagent.Agent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
