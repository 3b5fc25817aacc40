package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
	domainbroker "github.com/untangle-ai/agent-broker/internal/domain/broker"
	"github.com/untangle-ai/agent-broker/internal/domain/event"
	portagent "github.com/untangle-ai/agent-broker/internal/port/agent"
	portdispatch "github.com/untangle-ai/agent-broker/internal/port/dispatch"
	porteventbus "github.com/untangle-ai/agent-broker/internal/port/eventbus"
	portranker "github.com/untangle-ai/agent-broker/internal/port/ranker"
	portsettlement "github.com/untangle-ai/agent-broker/internal/port/settlement"
)

var (
	// ErrNoMatch: ranking produced no candidate for the requirement.
	ErrNoMatch = errors.New("no agent matched the requirement")

	// ErrAgentNotConfigured: a pinned agent id resolves to a missing,
	// deactivated, or incomplete record.
	ErrAgentNotConfigured = errors.New("agent not configured")
)

// rankTopN is the candidate count requested from the ranker on the unpinned path.
const rankTopN = 5

// Service is the dispatch orchestrator: it resolves the target agent (pinned
// or ranked), drives the framework adapter, settles the cost, and reports the
// pin side effect. It keeps no state between calls.
type Service struct {
	agents     portagent.Repository
	ranker     portranker.Ranker
	dispatcher portdispatch.Dispatcher
	settler    portsettlement.Settler
	bus        porteventbus.EventBus
}

func NewService(agents portagent.Repository, ranker portranker.Ranker, dispatcher portdispatch.Dispatcher, settler portsettlement.Settler, bus porteventbus.EventBus) *Service {
	return &Service{agents: agents, ranker: ranker, dispatcher: dispatcher, settler: settler, bus: bus}
}

type InvokeInput struct {
	CallerID      uuid.UUID
	PinnedAgentID *uuid.UUID
	Requirement   domainbroker.Requirement
	Message       string
}

// InvokeResult carries the canonical content plus the pin side effect.
// PinAgentID is set only when ranking selected the agent on this call.
type InvokeResult struct {
	Content      *string
	InputTokens  *int64
	OutputTokens *int64
	PinAgentID   *uuid.UUID
}

// Invoke runs one full dispatch: resolve agent, call it through its framework
// adapter with a fresh session id, settle the cost, return the content.
// A settlement failure is returned as an error even though the upstream agent
// already produced a response; the condition is logged so the unsettled
// dispatch is visible.
func (s *Service) Invoke(ctx context.Context, in InvokeInput) (InvokeResult, error) {
	target, pinned, err := s.resolveAgent(ctx, in)
	if err != nil {
		return InvokeResult{}, err
	}

	// Fresh session per call, even for a pinned agent: session ids double as
	// settlement idempotency keys and must never be reused.
	sessionID := uuid.NewString()

	resp, err := s.dispatcher.Dispatch(ctx, target.Framework, target.DeployedURL, in.Message, sessionID, in.CallerID.String())
	if err != nil {
		return InvokeResult{}, fmt.Errorf("dispatch to agent %s: %w", target.ID, err)
	}

	settleIn := portsettlement.Input{
		SessionID:        sessionID,
		CallerID:         in.CallerID,
		AgentID:          target.ID,
		AgentOwnerWallet: target.OwnerWallet,
		BaseCost:         target.AgentCost,
		InputTokenCost:   target.InputTokenCost,
		OutputTokenCost:  target.OutputTokenCost,
		InputTokens:      resp.InputTokens,
		OutputTokens:     resp.OutputTokens,
	}
	if _, err := s.settler.Settle(ctx, settleIn); err != nil {
		slog.ErrorContext(ctx, "dispatch succeeded but settlement failed",
			"agent_id", target.ID,
			"session_id", sessionID,
			"error", err,
		)
		return InvokeResult{}, fmt.Errorf("settle dispatch: %w", err)
	}

	if err := s.bus.Publish(ctx, event.New(event.TypeDispatchCompleted, target.ID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish dispatch event", "agent_id", target.ID, "error", err)
	}

	result := InvokeResult{
		Content:      resp.Content,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
	}
	if !pinned {
		id := target.ID
		result.PinAgentID = &id
	}
	return result, nil
}

// resolveAgent loads the pinned agent or ranks the pool. The second return
// value reports whether the caller arrived already pinned.
func (s *Service) resolveAgent(ctx context.Context, in InvokeInput) (domainagent.Agent, bool, error) {
	if in.PinnedAgentID != nil {
		a, err := s.agents.GetByID(ctx, *in.PinnedAgentID)
		if err != nil {
			if errors.Is(err, portagent.ErrNotFound) {
				return domainagent.Agent{}, false, fmt.Errorf("pinned agent %s: %w", *in.PinnedAgentID, ErrAgentNotConfigured)
			}
			return domainagent.Agent{}, false, fmt.Errorf("load pinned agent: %w", err)
		}
		if !a.Dispatchable() {
			return domainagent.Agent{}, false, fmt.Errorf("pinned agent %s inactive or incomplete: %w", a.ID, ErrAgentNotConfigured)
		}
		return a, true, nil
	}

	ranked, err := s.ranker.Rank(ctx, in.Requirement, rankTopN)
	if err != nil {
		return domainagent.Agent{}, false, fmt.Errorf("rank candidates: %w", err)
	}
	if len(ranked) == 0 {
		return domainagent.Agent{}, false, ErrNoMatch
	}
	return ranked[0], false, nil
}
