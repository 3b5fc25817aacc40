package apikey

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portapikey "github.com/untangle-ai/agent-broker/internal/port/apikey"
)

var _ portapikey.Reader = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Verify resolves an API key to its owning caller. Inactive keys behave
// exactly like unknown keys.
func (r *Repository) Verify(ctx context.Context, key string) (portapikey.Key, error) {
	query := `
		SELECT id, user_id, name, active, created_at
		FROM api_keys
		WHERE key = $1 AND active`

	var k portapikey.Key
	err := r.pool.QueryRow(ctx, query, key).Scan(&k.ID, &k.UserID, &k.Name, &k.Active, &k.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return portapikey.Key{}, portapikey.ErrNotFound
		}
		return portapikey.Key{}, fmt.Errorf("querying api key: %w", err)
	}
	return k, nil
}
