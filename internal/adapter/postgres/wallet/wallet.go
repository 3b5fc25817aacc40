package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portwallet "github.com/untangle-ai/agent-broker/internal/port/wallet"
)

var _ portwallet.Reader = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) AddressForUser(ctx context.Context, userID uuid.UUID) (string, error) {
	var address string
	err := r.pool.QueryRow(ctx, `SELECT address FROM wallet_addresses WHERE user_id = $1`, userID).Scan(&address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", portwallet.ErrNotFound
		}
		return "", fmt.Errorf("querying wallet address: %w", err)
	}
	return address, nil
}
