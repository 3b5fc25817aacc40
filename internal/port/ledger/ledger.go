package ledger

import (
	"context"
	"math/big"
)

// Stake is a caller's escrowed balance as reported by the stake contract.
// Amount is in wei base units.
type Stake struct {
	Client   string
	Provider string
	UserID   string
	Amount   *big.Int
}

// StakeLedger exposes the two on-chain operations settlement requires.
// Amounts are always wei base units; conversion from decimal costs is the
// settlement service's job.
type StakeLedger interface {
	GetStake(ctx context.Context, walletAddress string) (Stake, error)
	TransferEscrow(ctx context.Context, to, from string, amountWei *big.Int) (txHash string, err error)
}

// Registrar records newly created agents on the agent-registry contract.
type Registrar interface {
	RegisterAgent(ctx context.Context, agentAddress, agentIDHash, ownerID string) (txHash string, err error)
}
