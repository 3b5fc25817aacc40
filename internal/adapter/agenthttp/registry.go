package agenthttp

import (
	"context"
	"fmt"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
	"github.com/untangle-ai/agent-broker/internal/domain/broker"
	portdispatch "github.com/untangle-ai/agent-broker/internal/port/dispatch"
)

// Adapter owns one framework's wire shape: how a call is built and how its
// reply is normalized. Adapters are pure transport translation — no ranking,
// no settlement.
type Adapter interface {
	Invoke(ctx context.Context, deployedURL, message, sessionID, callerID string) (broker.CanonicalResponse, error)
}

var _ portdispatch.Dispatcher = (*Registry)(nil)

// Registry maps framework ids to adapter variants. Closed-world per
// deployment: an unregistered framework fails fast before any network call.
// New variants are added here without touching the orchestrator.
type Registry struct {
	adapters map[domainagent.Framework]Adapter
}

// NewRegistry returns a registry with every implemented framework wired in.
// Recognized-but-unimplemented frameworks (crew_ai, langraph, openai, autogen,
// autogpt, semantic_kernel, openai_agents) are deliberately absent so they
// fail with ErrUnsupportedFramework instead of an undefined transport call.
func NewRegistry(client *Client) *Registry {
	r := &Registry{adapters: make(map[domainagent.Framework]Adapter)}
	r.Register(domainagent.FrameworkGoogleADK, NewADKAdapter(client))
	return r
}

func (r *Registry) Register(fw domainagent.Framework, a Adapter) {
	r.adapters[fw] = a
}

func (r *Registry) Dispatch(ctx context.Context, framework domainagent.Framework, deployedURL, message, sessionID, callerID string) (broker.CanonicalResponse, error) {
	adapter, ok := r.adapters[framework]
	if !ok {
		return broker.CanonicalResponse{}, fmt.Errorf("%w: %s", portdispatch.ErrUnsupportedFramework, framework)
	}
	return adapter.Invoke(ctx, deployedURL, message, sessionID, callerID)
}
