package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
	portagent "github.com/untangle-ai/agent-broker/internal/port/agent"
)

const agentColumns = `id, owner_id, name, description, deployed_url, llm_provider, skills,
	agent_cost, input_token_cost, output_token_cost, embedding, framework,
	is_active, is_public, owner_wallet, created_at, updated_at`

var (
	_ portagent.Repository = (*Repository)(nil)
	_ portagent.PoolReader = (*Repository)(nil)
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, a domainagent.Agent) (domainagent.Agent, error) {
	query := `
		INSERT INTO agents (` + agentColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING ` + agentColumns

	row := r.pool.QueryRow(ctx, query,
		a.ID, a.OwnerID, a.Name, a.Description, a.DeployedURL, a.LLMProvider, a.Skills,
		a.AgentCost, a.InputTokenCost.String(), a.OutputTokenCost.String(), a.Embedding, string(a.Framework),
		a.IsActive, a.IsPublic, a.OwnerWallet, a.CreatedAt, a.UpdatedAt,
	)
	created, err := scanAgent(row)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("inserting agent: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domainagent.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`

	a, err := scanAgent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainagent.Agent{}, portagent.ErrNotFound
		}
		return domainagent.Agent{}, fmt.Errorf("querying agent: %w", err)
	}
	return a, nil
}

func (r *Repository) List(ctx context.Context, filters domainagent.ListFilters) ([]domainagent.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE 1=1`

	args := []interface{}{}
	argIdx := 1

	if filters.OwnerID != nil {
		query += fmt.Sprintf(" AND owner_id = $%d", argIdx)
		args = append(args, *filters.OwnerID)
		argIdx++
	}
	if filters.ActiveOnly {
		query += " AND is_active"
	}
	if filters.PublicOnly {
		query += " AND is_public"
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	defer rows.Close()

	return scanAgents(rows)
}

// ListActive returns the ranking candidate pool: active public agents with a
// deployment URL, most recently registered first.
func (r *Repository) ListActive(ctx context.Context, limit int) ([]domainagent.Agent, error) {
	query := `
		SELECT ` + agentColumns + `
		FROM agents
		WHERE is_active AND is_public AND deployed_url <> ''
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing active agents: %w", err)
	}
	defer rows.Close()

	return scanAgents(rows)
}

func (r *Repository) Update(ctx context.Context, a domainagent.Agent) (domainagent.Agent, error) {
	query := `
		UPDATE agents SET
			name = $2, description = $3, deployed_url = $4, llm_provider = $5,
			skills = $6, agent_cost = $7, input_token_cost = $8, output_token_cost = $9,
			embedding = $10, framework = $11, is_active = $12, is_public = $13,
			owner_wallet = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + agentColumns

	row := r.pool.QueryRow(ctx, query,
		a.ID, a.Name, a.Description, a.DeployedURL, a.LLMProvider,
		a.Skills, a.AgentCost, a.InputTokenCost.String(), a.OutputTokenCost.String(),
		a.Embedding, string(a.Framework), a.IsActive, a.IsPublic, a.OwnerWallet,
	)
	updated, err := scanAgent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainagent.Agent{}, portagent.ErrNotFound
		}
		return domainagent.Agent{}, fmt.Errorf("updating agent: %w", err)
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return portagent.ErrNotFound
	}
	return nil
}

func scanAgent(row pgx.Row) (domainagent.Agent, error) {
	var a domainagent.Agent
	var framework, inputCost, outputCost string

	err := row.Scan(
		&a.ID, &a.OwnerID, &a.Name, &a.Description, &a.DeployedURL, &a.LLMProvider, &a.Skills,
		&a.AgentCost, &inputCost, &outputCost, &a.Embedding, &framework,
		&a.IsActive, &a.IsPublic, &a.OwnerWallet, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domainagent.Agent{}, err
	}

	a.Framework = domainagent.Framework(framework)
	if a.InputTokenCost, err = decimal.NewFromString(inputCost); err != nil {
		return domainagent.Agent{}, fmt.Errorf("parsing input token cost: %w", err)
	}
	if a.OutputTokenCost, err = decimal.NewFromString(outputCost); err != nil {
		return domainagent.Agent{}, fmt.Errorf("parsing output token cost: %w", err)
	}
	return a, nil
}

func scanAgents(rows pgx.Rows) ([]domainagent.Agent, error) {
	var agents []domainagent.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning agent row: %w", err)
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}
