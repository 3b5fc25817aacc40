package settlement_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/untangle-ai/agent-broker/internal/domain/broker"
	"github.com/untangle-ai/agent-broker/internal/domain/event"
	"github.com/untangle-ai/agent-broker/internal/mocks"
	portledger "github.com/untangle-ai/agent-broker/internal/port/ledger"
	portsettlement "github.com/untangle-ai/agent-broker/internal/port/settlement"
	portwallet "github.com/untangle-ai/agent-broker/internal/port/wallet"
	settlementsvc "github.com/untangle-ai/agent-broker/internal/service/settlement"
)

type svcDeps struct {
	wallets *mocks.MockWalletReader
	ledger  *mocks.MockStakeLedger
	journal *mocks.MockSettlementJournal
	locker  *mocks.MockAdvisoryLocker
	bus     *mocks.MockEventBus
}

func newSettlementSvc(t *testing.T) (*settlementsvc.Service, svcDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := svcDeps{
		wallets: mocks.NewMockWalletReader(ctrl),
		ledger:  mocks.NewMockStakeLedger(ctrl),
		journal: mocks.NewMockSettlementJournal(ctrl),
		locker:  mocks.NewMockAdvisoryLocker(ctrl),
		bus:     mocks.NewMockEventBus(ctrl),
	}
	svc := settlementsvc.NewService(d.wallets, d.ledger, d.journal, d.locker, d.bus)
	return svc, d
}

// passthroughLock makes locker.WithLock run the critical section inline.
func passthroughLock(d svcDeps) {
	d.locker.EXPECT().WithLock(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int64, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func i64(v int64) *int64 { return &v }

func wei(ether string) *big.Int {
	d := decimal.RequireFromString(ether)
	return d.Shift(18).BigInt()
}

func newInput() portsettlement.Input {
	return portsettlement.Input{
		SessionID:        uuid.NewString(),
		CallerID:         uuid.New(),
		AgentID:          uuid.New(),
		AgentOwnerWallet: "0xowner",
		BaseCost:         "1",
		InputTokenCost:   decimal.RequireFromString("0.001"),
		OutputTokenCost:  decimal.RequireFromString("0.002"),
		InputTokens:      i64(1000),
		OutputTokens:     i64(500),
	}
}

func TestSettleChargesTokensPlusBase(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	in := newInput()
	passthroughLock(d)

	// 1 + 0.001*1000 + 0.002*500 = 3 ether.
	wantWei := wei("3")

	d.journal.EXPECT().Check(ctx, in.SessionID).Return(broker.SettlementResult{}, false, nil)
	d.wallets.EXPECT().AddressForUser(ctx, in.CallerID).Return("0xcaller", nil)
	d.ledger.EXPECT().GetStake(gomock.Any(), "0xcaller").
		Return(portledger.Stake{Amount: wei("10")}, nil)
	d.ledger.EXPECT().TransferEscrow(gomock.Any(), "0xowner", "0xcaller", wantWei).
		Return("0xtx", nil)
	d.journal.EXPECT().Store(ctx, in.SessionID, in.CallerID, gomock.Any()).Return(nil)
	d.bus.EXPECT().Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e event.Event) error {
			assert.Equal(t, event.TypeSettlementRecorded, e.Type)
			return nil
		})

	res, err := svc.Settle(ctx, in)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.TotalCost.Equal(decimal.RequireFromString("3")), "got %s", res.TotalCost)
}

func TestSettleFlatBaseCostWhenTokenCountsAbsent(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	in := newInput()
	in.BaseCost = "2"
	in.InputTokens = nil
	in.OutputTokens = nil
	passthroughLock(d)

	d.journal.EXPECT().Check(ctx, in.SessionID).Return(broker.SettlementResult{}, false, nil)
	d.wallets.EXPECT().AddressForUser(ctx, in.CallerID).Return("0xcaller", nil)
	d.ledger.EXPECT().GetStake(gomock.Any(), "0xcaller").
		Return(portledger.Stake{Amount: wei("5")}, nil)
	d.ledger.EXPECT().TransferEscrow(gomock.Any(), "0xowner", "0xcaller", wei("2")).
		Return("0xtx", nil)
	d.journal.EXPECT().Store(ctx, in.SessionID, in.CallerID, gomock.Any()).Return(nil)
	d.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	res, err := svc.Settle(ctx, in)
	require.NoError(t, err)
	assert.True(t, res.TotalCost.Equal(decimal.RequireFromString("2")))
}

func TestSettleReplaysJournaledResult(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	in := newInput()

	prior := broker.SettlementResult{Success: true, TotalCost: decimal.RequireFromString("3")}
	d.journal.EXPECT().Check(ctx, in.SessionID).Return(prior, true, nil)
	// No wallet lookup, no lock, no chain calls: the ledger must not be touched.

	res, err := svc.Settle(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, prior, res)
}

func TestSettleWalletNotFound(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	in := newInput()

	d.journal.EXPECT().Check(ctx, in.SessionID).Return(broker.SettlementResult{}, false, nil)
	d.wallets.EXPECT().AddressForUser(ctx, in.CallerID).Return("", portwallet.ErrNotFound)

	_, err := svc.Settle(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, settlementsvc.ErrWalletNotFound))
}

func TestSettleInsufficientStake(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	in := newInput()
	passthroughLock(d)

	d.journal.EXPECT().Check(ctx, in.SessionID).Return(broker.SettlementResult{}, false, nil)
	d.wallets.EXPECT().AddressForUser(ctx, in.CallerID).Return("0xcaller", nil)
	d.ledger.EXPECT().GetStake(gomock.Any(), "0xcaller").
		Return(portledger.Stake{Amount: wei("1")}, nil)
	// No TransferEscrow expectation: the transfer must never be attempted.

	_, err := svc.Settle(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, settlementsvc.ErrInsufficientStake))
}

func TestSettleZeroStakeRejectsPositiveCost(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	in := newInput()
	in.BaseCost = "0.000000000000000001" // 1 wei
	in.InputTokens = nil
	in.OutputTokens = nil
	passthroughLock(d)

	d.journal.EXPECT().Check(ctx, in.SessionID).Return(broker.SettlementResult{}, false, nil)
	d.wallets.EXPECT().AddressForUser(ctx, in.CallerID).Return("0xcaller", nil)
	d.ledger.EXPECT().GetStake(gomock.Any(), "0xcaller").
		Return(portledger.Stake{Amount: big.NewInt(0)}, nil)

	_, err := svc.Settle(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, settlementsvc.ErrInsufficientStake))
}

func TestSettleZeroCostSkipsTransfer(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	in := newInput()
	in.BaseCost = "0"
	in.InputTokens = nil
	in.OutputTokens = nil
	passthroughLock(d)

	d.journal.EXPECT().Check(ctx, in.SessionID).Return(broker.SettlementResult{}, false, nil)
	d.wallets.EXPECT().AddressForUser(ctx, in.CallerID).Return("0xcaller", nil)
	d.ledger.EXPECT().GetStake(gomock.Any(), "0xcaller").
		Return(portledger.Stake{Amount: big.NewInt(0)}, nil)
	d.journal.EXPECT().Store(ctx, in.SessionID, in.CallerID, gomock.Any()).Return(nil)
	d.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	res, err := svc.Settle(ctx, in)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.TotalCost.IsZero())
}

func TestSettleJournalStoreFailureDoesNotFailSettlement(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	in := newInput()
	passthroughLock(d)

	d.journal.EXPECT().Check(ctx, in.SessionID).Return(broker.SettlementResult{}, false, nil)
	d.wallets.EXPECT().AddressForUser(ctx, in.CallerID).Return("0xcaller", nil)
	d.ledger.EXPECT().GetStake(gomock.Any(), "0xcaller").
		Return(portledger.Stake{Amount: wei("10")}, nil)
	d.ledger.EXPECT().TransferEscrow(gomock.Any(), "0xowner", "0xcaller", gomock.Any()).
		Return("0xtx", nil)
	d.journal.EXPECT().Store(ctx, in.SessionID, in.CallerID, gomock.Any()).
		Return(errors.New("journal insert failed"))
	d.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	res, err := svc.Settle(ctx, in)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestSettleInvalidBaseCost(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	in := newInput()
	in.BaseCost = "not-a-number"

	d.journal.EXPECT().Check(ctx, in.SessionID).Return(broker.SettlementResult{}, false, nil)
	d.wallets.EXPECT().AddressForUser(ctx, in.CallerID).Return("0xcaller", nil)

	_, err := svc.Settle(ctx, in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid agent base cost")
}

func TestBalance(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	callerID := uuid.New()

	d.wallets.EXPECT().AddressForUser(ctx, callerID).Return("0xcaller", nil)
	d.ledger.EXPECT().GetStake(ctx, "0xcaller").
		Return(portledger.Stake{Amount: wei("1.5")}, nil)

	balance, err := svc.Balance(ctx, callerID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("1.5")), "got %s", balance)
}

func TestBalanceWalletNotFound(t *testing.T) {
	svc, d := newSettlementSvc(t)
	ctx := context.Background()
	callerID := uuid.New()

	d.wallets.EXPECT().AddressForUser(ctx, callerID).Return("", portwallet.ErrNotFound)

	_, err := svc.Balance(ctx, callerID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, settlementsvc.ErrWalletNotFound))
}
