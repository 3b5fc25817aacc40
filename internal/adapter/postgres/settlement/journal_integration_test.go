//go:build integration

package settlement_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgsettlement "github.com/untangle-ai/agent-broker/internal/adapter/postgres/settlement"
	"github.com/untangle-ai/agent-broker/internal/domain/broker"
	"github.com/untangle-ai/agent-broker/internal/testutil"
)

func TestJournalStoreAndCheck(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	journal := pgsettlement.New(pool)
	ctx := context.Background()

	sessionID := uuid.NewString()
	callerID := uuid.New()
	res := broker.SettlementResult{Success: true, TotalCost: decimal.RequireFromString("3.25")}

	_, found, err := journal.Check(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, journal.Store(ctx, sessionID, callerID, res))

	got, found, err := journal.Check(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Success)
	assert.True(t, got.TotalCost.Equal(res.TotalCost), "got %s", got.TotalCost)
}

func TestJournalStoreIsIdempotentOnSessionID(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	journal := pgsettlement.New(pool)
	ctx := context.Background()

	sessionID := uuid.NewString()
	callerID := uuid.New()
	first := broker.SettlementResult{Success: true, TotalCost: decimal.RequireFromString("1")}
	second := broker.SettlementResult{Success: false, TotalCost: decimal.RequireFromString("999")}

	require.NoError(t, journal.Store(ctx, sessionID, callerID, first))
	// Conflicting replay must not overwrite the recorded outcome.
	require.NoError(t, journal.Store(ctx, sessionID, callerID, second))

	got, found, err := journal.Check(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Success)
	assert.True(t, got.TotalCost.Equal(first.TotalCost))
}
