package settlement

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/untangle-ai/agent-broker/internal/domain/broker"
	"github.com/untangle-ai/agent-broker/internal/domain/event"
	porteventbus "github.com/untangle-ai/agent-broker/internal/port/eventbus"
	portledger "github.com/untangle-ai/agent-broker/internal/port/ledger"
	portlocker "github.com/untangle-ai/agent-broker/internal/port/locker"
	portsettlement "github.com/untangle-ai/agent-broker/internal/port/settlement"
	portwallet "github.com/untangle-ai/agent-broker/internal/port/wallet"
)

var (
	ErrWalletNotFound    = errors.New("caller wallet not found")
	ErrInsufficientStake = errors.New("insufficient stake")
)

// Costs are denominated in ether, the ledger in wei.
const weiExponent = 18

var _ portsettlement.Settler = (*Service)(nil)

// Service computes dispatch costs and applies them against the stake ledger.
// The balance check and the transfer are two separate chain calls; the
// advisory lock serialises them per caller wallet, and the journal makes a
// replayed settlement for the same session a no-op.
type Service struct {
	wallets portwallet.Reader
	ledger  portledger.StakeLedger
	journal portsettlement.Journal
	locker  portlocker.AdvisoryLocker
	bus     porteventbus.EventBus
}

func NewService(wallets portwallet.Reader, ledger portledger.StakeLedger, journal portsettlement.Journal, locker portlocker.AdvisoryLocker, bus porteventbus.EventBus) *Service {
	return &Service{wallets: wallets, ledger: ledger, journal: journal, locker: locker, bus: bus}
}

// Settle debits the caller's stake by the dispatch cost and credits the agent
// owner's escrow. Absent token counts settle the flat base cost — tokens are
// treated as zero, never as a reason to skip settlement silently.
func (s *Service) Settle(ctx context.Context, in portsettlement.Input) (broker.SettlementResult, error) {
	if prior, ok, err := s.journal.Check(ctx, in.SessionID); err != nil {
		return broker.SettlementResult{}, fmt.Errorf("check settlement journal: %w", err)
	} else if ok {
		slog.InfoContext(ctx, "settlement replayed from journal", "session_id", in.SessionID)
		return prior, nil
	}

	callerWallet, err := s.wallets.AddressForUser(ctx, in.CallerID)
	if err != nil {
		if errors.Is(err, portwallet.ErrNotFound) {
			return broker.SettlementResult{}, fmt.Errorf("caller %s: %w", in.CallerID, ErrWalletNotFound)
		}
		return broker.SettlementResult{}, fmt.Errorf("resolve caller wallet: %w", err)
	}

	totalCost, err := computeTotalCost(in)
	if err != nil {
		return broker.SettlementResult{}, err
	}
	totalWei := totalCost.Shift(weiExponent).BigInt()

	err = s.locker.WithLock(ctx, walletLockKey(callerWallet), func(ctx context.Context) error {
		stake, err := s.ledger.GetStake(ctx, callerWallet)
		if err != nil {
			return fmt.Errorf("get stake for %s: %w", callerWallet, err)
		}
		if stake.Amount == nil || stake.Amount.Cmp(totalWei) < 0 {
			return fmt.Errorf("stake %s < cost %s wei: %w", weiString(stake.Amount), totalWei, ErrInsufficientStake)
		}
		if totalWei.Sign() == 0 {
			return nil
		}

		txHash, err := s.ledger.TransferEscrow(ctx, in.AgentOwnerWallet, callerWallet, totalWei)
		if err != nil {
			return fmt.Errorf("transfer escrow: %w", err)
		}
		slog.InfoContext(ctx, "escrow transferred",
			"session_id", in.SessionID,
			"agent_id", in.AgentID,
			"total_cost", totalCost.String(),
			"tx", txHash,
		)
		return nil
	})
	if err != nil {
		return broker.SettlementResult{}, err
	}

	res := broker.SettlementResult{Success: true, TotalCost: totalCost}

	// The transfer is already on chain; a journal write failure must not turn
	// it into a caller-visible error. A later replay would re-check the
	// journal, miss, and re-settle — that risk is logged loudly here.
	if err := s.journal.Store(ctx, in.SessionID, in.CallerID, res); err != nil {
		slog.ErrorContext(ctx, "failed to journal settled session", "session_id", in.SessionID, "error", err)
	}
	if err := s.bus.Publish(ctx, event.New(event.TypeSettlementRecorded, in.AgentID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish settlement event", "session_id", in.SessionID, "error", err)
	}

	return res, nil
}

// Balance reports the caller's current stake in ether.
func (s *Service) Balance(ctx context.Context, callerID uuid.UUID) (decimal.Decimal, error) {
	addr, err := s.wallets.AddressForUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, portwallet.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("caller %s: %w", callerID, ErrWalletNotFound)
		}
		return decimal.Zero, fmt.Errorf("resolve caller wallet: %w", err)
	}

	stake, err := s.ledger.GetStake(ctx, addr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get stake for %s: %w", addr, err)
	}
	if stake.Amount == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(stake.Amount, -weiExponent), nil
}

// computeTotalCost = inputTokenCost*inputTokens + outputTokenCost*outputTokens + baseCost.
func computeTotalCost(in portsettlement.Input) (decimal.Decimal, error) {
	base := decimal.Zero
	if in.BaseCost != "" {
		parsed, err := decimal.NewFromString(in.BaseCost)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid agent base cost %q: %w", in.BaseCost, err)
		}
		base = parsed
	}

	total := base
	if in.InputTokens != nil {
		total = total.Add(in.InputTokenCost.Mul(decimal.NewFromInt(*in.InputTokens)))
	}
	if in.OutputTokens != nil {
		total = total.Add(in.OutputTokenCost.Mul(decimal.NewFromInt(*in.OutputTokens)))
	}
	return total, nil
}

// walletLockKey maps a wallet address onto the advisory-lock keyspace.
func walletLockKey(address string) int64 {
	h := fnv.New64a()
	h.Write([]byte(address))
	return int64(h.Sum64())
}

func weiString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}
