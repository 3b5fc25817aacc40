package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	portledger "github.com/untangle-ai/agent-broker/internal/port/ledger"
)

// Config describes the chain endpoints and contracts the broker settles
// against. The private key signs escrow transfers and agent registrations;
// it is loaded by the process bootstrap, never by the core.
type Config struct {
	RPCURL               string
	PrivateKey           string
	ChainID              int64
	StakeContractAddress string
	AgentRegistryAddress string
}

var (
	_ portledger.StakeLedger = (*Client)(nil)
	_ portledger.Registrar   = (*Client)(nil)
)

// Client wraps the stake and agent-registry contracts behind the ledger
// ports. One instance per process, constructed in wire and injected.
type Client struct {
	eth      *ethclient.Client
	auth     *bind.TransactOpts
	stake    *bind.BoundContract
	registry *bind.BoundContract

	// Transactions share one signing key; serialise them so concurrent
	// settlements cannot race the account nonce.
	mu sync.Mutex
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial ethereum rpc: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("parse contract private key: %w", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cfg.ChainID))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("build transactor for chain %d: %w", cfg.ChainID, err)
	}

	stakeABI, err := abi.JSON(strings.NewReader(stakeContractABI))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("parse stake contract abi: %w", err)
	}
	registryABI, err := abi.JSON(strings.NewReader(agentRegistryABI))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("parse agent registry abi: %w", err)
	}

	return &Client{
		eth:      eth,
		auth:     auth,
		stake:    bind.NewBoundContract(common.HexToAddress(cfg.StakeContractAddress), stakeABI, eth, eth, eth),
		registry: bind.NewBoundContract(common.HexToAddress(cfg.AgentRegistryAddress), registryABI, eth, eth, eth),
	}, nil
}

func (c *Client) Close() {
	if c.eth != nil {
		c.eth.Close()
	}
}

// GetStake reads the caller's escrowed balance from the stake contract.
func (c *Client) GetStake(ctx context.Context, walletAddress string) (portledger.Stake, error) {
	var out []interface{}
	err := c.stake.Call(&bind.CallOpts{Context: ctx}, &out, "getAddressStake", common.HexToAddress(walletAddress))
	if err != nil {
		return portledger.Stake{}, fmt.Errorf("getAddressStake(%s): %w", walletAddress, err)
	}
	if len(out) != 4 {
		return portledger.Stake{}, fmt.Errorf("getAddressStake(%s): unexpected output arity %d", walletAddress, len(out))
	}

	client, _ := out[0].(common.Address)
	provider, _ := out[1].(common.Address)
	userID, _ := out[2].(string)
	amount, ok := out[3].(*big.Int)
	if !ok {
		return portledger.Stake{}, fmt.Errorf("getAddressStake(%s): amount is not uint256", walletAddress)
	}

	return portledger.Stake{
		Client:   client.Hex(),
		Provider: provider.Hex(),
		UserID:   userID,
		Amount:   amount,
	}, nil
}

// TransferEscrow moves amountWei from the caller's stake to the agent owner's
// escrow and waits for the transaction to mine.
func (c *Client) TransferEscrow(ctx context.Context, to, from string, amountWei *big.Int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts := *c.auth
	opts.Context = ctx

	tx, err := c.stake.Transact(&opts, "transferEscrow", common.HexToAddress(to), common.HexToAddress(from), amountWei)
	if err != nil {
		return "", fmt.Errorf("transferEscrow: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return "", fmt.Errorf("wait for transferEscrow %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == 0 {
		return "", fmt.Errorf("transferEscrow %s reverted", tx.Hash().Hex())
	}
	return tx.Hash().Hex(), nil
}

// RegisterAgent records a newly created agent on the registry contract.
func (c *Client) RegisterAgent(ctx context.Context, agentAddress, agentIDHash, ownerID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts := *c.auth
	opts.Context = ctx

	tx, err := c.registry.Transact(&opts, "registerAgent", agentAddress, agentIDHash, ownerID, "")
	if err != nil {
		return "", fmt.Errorf("registerAgent: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return "", fmt.Errorf("wait for registerAgent %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == 0 {
		return "", fmt.Errorf("registerAgent %s reverted", tx.Hash().Hex())
	}
	return tx.Hash().Hex(), nil
}
