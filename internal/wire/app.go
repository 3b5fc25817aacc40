package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/untangle-ai/agent-broker/internal/adapter/agenthttp"
	"github.com/untangle-ai/agent-broker/internal/adapter/cloudflare"
	ethadapter "github.com/untangle-ai/agent-broker/internal/adapter/ethereum"
	pgdb "github.com/untangle-ai/agent-broker/internal/adapter/postgres"
	pgagent "github.com/untangle-ai/agent-broker/internal/adapter/postgres/agent"
	pgapikey "github.com/untangle-ai/agent-broker/internal/adapter/postgres/apikey"
	pgeventbus "github.com/untangle-ai/agent-broker/internal/adapter/postgres/eventbus"
	pglocker "github.com/untangle-ai/agent-broker/internal/adapter/postgres/locker"
	pgsettlement "github.com/untangle-ai/agent-broker/internal/adapter/postgres/settlement"
	pgwallet "github.com/untangle-ai/agent-broker/internal/adapter/postgres/wallet"

	agentsvc "github.com/untangle-ai/agent-broker/internal/service/agent"
	brokersvc "github.com/untangle-ai/agent-broker/internal/service/broker"
	rankersvc "github.com/untangle-ai/agent-broker/internal/service/ranker"
	settlementsvc "github.com/untangle-ai/agent-broker/internal/service/settlement"

	"github.com/untangle-ai/agent-broker/internal/transport"
)

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Pool   *pgxpool.Pool
	Chain  *ethadapter.Client
	Server *http.Server
}

// Build is the composition root: the only place concrete types are wired to
// their interface dependencies.
func Build(ctx context.Context) (*App, error) {
	// ── Database ─────────────────────────────────────────────────────────────
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	pool, err := pgdb.Connect(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// ── Chain ────────────────────────────────────────────────────────────────
	chainCfg, err := chainConfigFromEnv()
	if err != nil {
		pool.Close()
		return nil, err
	}
	chain, err := ethadapter.NewClient(ctx, chainCfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to chain: %w", err)
	}

	// ── Adapters ─────────────────────────────────────────────────────────────
	agentRepo := pgagent.New(pool)
	apiKeys := pgapikey.New(pool)
	wallets := pgwallet.New(pool)
	journal := pgsettlement.New(pool)
	eventBus := pgeventbus.New(pool)
	locker := pglocker.New(pool)

	embedder := cloudflare.NewClient(
		os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		os.Getenv("CLOUDFLARE_API_TOKEN"),
		&http.Client{Timeout: 30 * time.Second},
	)

	agentClient := agenthttp.NewClient(&http.Client{Timeout: 120 * time.Second})
	dispatcher := agenthttp.NewRegistry(agentClient)

	// ── Services ─────────────────────────────────────────────────────────────
	ranker := rankersvc.NewService(agentRepo, embedder)
	settlement := settlementsvc.NewService(wallets, chain, journal, locker, eventBus)
	agentSvcInstance := agentsvc.NewService(agentRepo, embedder, chain, eventBus)
	brokerSvcInstance := brokersvc.NewService(agentRepo, ranker, dispatcher, settlement, eventBus)

	// ── Transport ────────────────────────────────────────────────────────────
	router := transport.NewRouter(ctx, brokerSvcInstance, agentSvcInstance, settlement, apiKeys, eventBus)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	slog.Info("application wired", "port", port)

	return &App{
		Pool:   pool,
		Chain:  chain,
		Server: server,
	}, nil
}

func chainConfigFromEnv() (ethadapter.Config, error) {
	cfg := ethadapter.Config{
		RPCURL:               os.Getenv("ETH_RPC_URL"),
		PrivateKey:           os.Getenv("CONTRACT_PRIVATE_KEY"),
		StakeContractAddress: os.Getenv("STAKE_CONTRACT_ADDRESS"),
		AgentRegistryAddress: os.Getenv("AGENT_REGISTRY_CONTRACT_ADDRESS"),
	}
	if cfg.RPCURL == "" {
		return ethadapter.Config{}, fmt.Errorf("ETH_RPC_URL not set")
	}
	if cfg.PrivateKey == "" {
		return ethadapter.Config{}, fmt.Errorf("CONTRACT_PRIVATE_KEY not set")
	}
	if cfg.StakeContractAddress == "" {
		return ethadapter.Config{}, fmt.Errorf("STAKE_CONTRACT_ADDRESS not set")
	}
	if cfg.AgentRegistryAddress == "" {
		return ethadapter.Config{}, fmt.Errorf("AGENT_REGISTRY_CONTRACT_ADDRESS not set")
	}

	chainID := os.Getenv("ETH_CHAIN_ID")
	if chainID == "" {
		return ethadapter.Config{}, fmt.Errorf("ETH_CHAIN_ID not set")
	}
	id, err := strconv.ParseInt(chainID, 10, 64)
	if err != nil {
		return ethadapter.Config{}, fmt.Errorf("invalid ETH_CHAIN_ID %q: %w", chainID, err)
	}
	cfg.ChainID = id

	return cfg, nil
}
