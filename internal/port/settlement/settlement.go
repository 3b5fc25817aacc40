package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/untangle-ai/agent-broker/internal/domain/broker"
)

// Input describes one dispatch to settle. SessionID doubles as the settlement
// idempotency key: the same session settles at most once.
type Input struct {
	SessionID        string
	CallerID         uuid.UUID
	AgentID          uuid.UUID
	AgentOwnerWallet string
	BaseCost         string // decimal string, flat per-call cost
	InputTokenCost   decimal.Decimal
	OutputTokenCost  decimal.Decimal
	InputTokens      *int64
	OutputTokens     *int64
}

// Settler debits the caller's stake and credits the agent owner's escrow.
type Settler interface {
	Settle(ctx context.Context, in Input) (broker.SettlementResult, error)
}

// Journal records settled sessions so a retried settlement call is safe to
// issue twice. Store must be idempotent on key.
type Journal interface {
	Check(ctx context.Context, sessionID string) (broker.SettlementResult, bool, error)
	Store(ctx context.Context, sessionID string, callerID uuid.UUID, res broker.SettlementResult) error
}
