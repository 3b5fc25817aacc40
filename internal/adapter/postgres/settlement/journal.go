package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/untangle-ai/agent-broker/internal/domain/broker"
	portsettlement "github.com/untangle-ai/agent-broker/internal/port/settlement"
)

var _ portsettlement.Journal = (*Journal)(nil)

// Journal records settled sessions keyed by session id, so a retried
// settlement call against the ledger is safe to issue twice.
type Journal struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Journal {
	return &Journal{pool: pool}
}

// Check looks up a previously settled session. Returns the recorded result
// and whether the session was found.
func (j *Journal) Check(ctx context.Context, sessionID string) (broker.SettlementResult, bool, error) {
	query := `SELECT success, total_cost FROM processed_settlements WHERE session_id = $1`

	var success bool
	var totalCost string
	err := j.pool.QueryRow(ctx, query, sessionID).Scan(&success, &totalCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return broker.SettlementResult{}, false, nil
		}
		return broker.SettlementResult{}, false, fmt.Errorf("checking settlement journal: %w", err)
	}

	cost, err := decimal.NewFromString(totalCost)
	if err != nil {
		return broker.SettlementResult{}, false, fmt.Errorf("parsing journaled cost: %w", err)
	}
	return broker.SettlementResult{Success: success, TotalCost: cost}, true, nil
}

// Store records a settled session. Conflicting inserts for the same session
// id are silently dropped — first writer wins.
func (j *Journal) Store(ctx context.Context, sessionID string, callerID uuid.UUID, res broker.SettlementResult) error {
	query := `
		INSERT INTO processed_settlements (session_id, caller_id, success, total_cost, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (session_id) DO NOTHING`

	_, err := j.pool.Exec(ctx, query, sessionID, callerID, res.Success, res.TotalCost.String())
	if err != nil {
		return fmt.Errorf("storing settlement record: %w", err)
	}
	return nil
}
