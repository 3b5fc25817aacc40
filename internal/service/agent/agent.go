package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
	"github.com/untangle-ai/agent-broker/internal/domain/event"
	portagent "github.com/untangle-ai/agent-broker/internal/port/agent"
	portembedding "github.com/untangle-ai/agent-broker/internal/port/embedding"
	porteventbus "github.com/untangle-ai/agent-broker/internal/port/eventbus"
	portledger "github.com/untangle-ai/agent-broker/internal/port/ledger"
)

// ErrNotOwner: the caller does not own the agent it is trying to change.
var ErrNotOwner = errors.New("agent not owned by caller")

// Service manages agent registry records: CRUD plus the embedding refresh and
// the on-chain registration that creation triggers.
type Service struct {
	repo      portagent.Repository
	embedder  portembedding.Embedder
	registrar portledger.Registrar
	bus       porteventbus.EventBus
}

func NewService(repo portagent.Repository, embedder portembedding.Embedder, registrar portledger.Registrar, bus porteventbus.EventBus) *Service {
	return &Service{repo: repo, embedder: embedder, registrar: registrar, bus: bus}
}

type CreateInput struct {
	Name            string
	Description     string
	DeployedURL     string
	LLMProvider     string
	Skills          []string
	AgentCost       string
	InputTokenCost  decimal.Decimal
	OutputTokenCost decimal.Decimal
	Framework       domainagent.Framework
	OwnerWallet     string
}

// Create embeds the description, persists the record, and registers the agent
// on the registry contract. Embedding failure aborts creation — a record
// without a vector would be invisible to ranking.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (domainagent.Agent, error) {
	emb, err := s.embedder.Embed(ctx, in.Description)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("embed agent description: %w", err)
	}

	a := domainagent.New(ownerID, in.Name, in.Description, in.DeployedURL, in.LLMProvider, in.Skills, in.AgentCost, in.Framework)
	a.Embedding = emb
	a.InputTokenCost = in.InputTokenCost
	a.OutputTokenCost = in.OutputTokenCost
	a.OwnerWallet = in.OwnerWallet

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("create agent: %w", err)
	}

	txHash, err := s.registrar.RegisterAgent(ctx, created.DeployedURL, created.ID.String(), ownerID.String())
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("register agent on chain: %w", err)
	}
	slog.InfoContext(ctx, "agent registered", "agent_id", created.ID, "tx", txHash)

	if err := s.bus.Publish(ctx, event.New(event.TypeAgentCreated, created.ID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish AgentCreated event", "agent_id", created.ID, "error", err)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domainagent.Agent, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("get agent: %w", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, filters domainagent.ListFilters) ([]domainagent.Agent, error) {
	agents, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

type UpdateInput struct {
	Name            *string
	Description     *string
	DeployedURL     *string
	LLMProvider     *string
	Skills          []string
	AgentCost       *string
	InputTokenCost  *decimal.Decimal
	OutputTokenCost *decimal.Decimal
	Framework       *domainagent.Framework
	IsActive        *bool
}

// Update applies a partial update. A description change refreshes the
// embedding so ranking never scores against a stale vector.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (domainagent.Agent, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("get agent for update: %w", err)
	}
	if a.OwnerID != ownerID {
		return domainagent.Agent{}, fmt.Errorf("agent %s: %w", id, ErrNotOwner)
	}

	if in.Description != nil && *in.Description != a.Description {
		emb, err := s.embedder.Embed(ctx, *in.Description)
		if err != nil {
			return domainagent.Agent{}, fmt.Errorf("re-embed agent description: %w", err)
		}
		a.Description = *in.Description
		a.Embedding = emb
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.DeployedURL != nil {
		a.DeployedURL = *in.DeployedURL
	}
	if in.LLMProvider != nil {
		a.LLMProvider = *in.LLMProvider
	}
	if in.Skills != nil {
		a.Skills = in.Skills
	}
	if in.AgentCost != nil {
		a.AgentCost = *in.AgentCost
	}
	if in.InputTokenCost != nil {
		a.InputTokenCost = *in.InputTokenCost
	}
	if in.OutputTokenCost != nil {
		a.OutputTokenCost = *in.OutputTokenCost
	}
	if in.Framework != nil {
		a.Framework = *in.Framework
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("update agent: %w", err)
	}

	if err := s.bus.Publish(ctx, event.New(event.TypeAgentUpdated, updated.ID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish AgentUpdated event", "agent_id", updated.ID, "error", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get agent for delete: %w", err)
	}
	if a.OwnerID != ownerID {
		return fmt.Errorf("agent %s: %w", id, ErrNotOwner)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}

	if err := s.bus.Publish(ctx, event.New(event.TypeAgentDeleted, id)); err != nil {
		slog.ErrorContext(ctx, "failed to publish AgentDeleted event", "agent_id", id, "error", err)
	}
	return nil
}
