package dispatch

import (
	"context"
	"errors"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
	"github.com/untangle-ai/agent-broker/internal/domain/broker"
)

var (
	// ErrUnsupportedFramework is returned before any network call when no
	// adapter is registered for the framework.
	ErrUnsupportedFramework = errors.New("unsupported agent framework")

	// ErrUpstreamUnavailable is returned when the agent endpoint cannot be
	// reached or replies with an unusable payload.
	ErrUpstreamUnavailable = errors.New("upstream agent unavailable")
)

// Dispatcher selects the adapter for a framework, performs its transport
// exchange, and returns the canonical response. One adapter variant per
// supported framework; new variants register without touching call sites.
type Dispatcher interface {
	Dispatch(ctx context.Context, framework domainagent.Framework, deployedURL, message, sessionID, callerID string) (broker.CanonicalResponse, error)
}
