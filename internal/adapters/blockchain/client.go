package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/shopspring/decimal"
)

const (
	// dialTimeout bounds the initial connection and chain id check
	dialTimeout = 15 * time.Second
	// blockPollInterval is how often the head is read while waiting for confirmations
	blockPollInterval = time.Second
)

// Client is a lazily connected node client for the configured network
type Client struct {
	network *config.Network
	name    string
	log     *slog.Logger

	pollInterval time.Duration

	mu      sync.Mutex
	eth     *ethclient.Client
	chainID *big.Int
}

// NewClient creates a client for the runtime network. Nothing is dialed
// until the chain is first used.
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		network: cfg.Network,
		name:    cfg.NetworkName,
		log:     log.With("component", "blockchain"),

		pollInterval: blockPollInterval,
	}
}

// connect dials the node on first use and verifies it serves the expected chain
func (c *Client) connect(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.eth != nil {
		return c.eth, nil
	}

	if c.network == nil || c.network.RPCURL == "" {
		return nil, fmt.Errorf("%w: %s has no rpc_url in depr.toml", domain.ErrNetworkNotConfigured, c.name)
	}

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	rpcClient, err := rpc.DialContext(dialCtx, c.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	eth := ethclient.NewClient(rpcClient)

	networkChainID, err := eth.ChainID(dialCtx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	// 0 means the network accepts whatever chain the node serves
	if expected := c.network.ChainID; expected != 0 && networkChainID.Uint64() != expected {
		eth.Close()
		return nil, fmt.Errorf("%w: %s expects chain %d, node reports %d",
			domain.ErrNetworkMismatch, c.name, expected, networkChainID.Uint64())
	}

	c.log.Debug("connected", "network", c.name, "rpc", c.network.RPCURL, "chainId", networkChainID)
	c.eth = eth
	c.chainID = networkChainID
	return eth, nil
}

// Backend returns the connected client, which serves as both contract and deploy backend
func (c *Client) Backend(ctx context.Context) (*ethclient.Client, error) {
	return c.connect(ctx)
}

// RPC returns the raw JSON-RPC client for node-side account methods
func (c *Client) RPC(ctx context.Context) (*rpc.Client, error) {
	eth, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return eth.Client(), nil
}

// ChainID returns the id of the connected chain
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.ChainIDBig(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

// ChainIDBig returns the chain id in the form transaction signers expect
func (c *Client) ChainIDBig(ctx context.Context) (*big.Int, error) {
	if _, err := c.connect(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.chainID), nil
}

// Balance returns the ether balance of an account at the latest block
func (c *Client) Balance(ctx context.Context, account common.Address) (decimal.Decimal, error) {
	eth, err := c.connect(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	wei, err := eth.BalanceAt(ctx, account, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance of %s: %w", account.Hex(), err)
	}
	return WeiToEther(wei), nil
}

// WaitConfirmations blocks until the chain head is the given number of
// blocks past the block holding a transaction. 0 returns immediately.
func (c *Client) WaitConfirmations(ctx context.Context, block uint64, confirmations uint64) error {
	if confirmations == 0 {
		return nil
	}
	eth, err := c.connect(ctx)
	if err != nil {
		return err
	}

	target := block + confirmations
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		head, err := eth.BlockNumber(ctx)
		if err != nil {
			c.log.Debug("failed to read block number", "error", err)
		} else if head >= target {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close releases the connection, if one was made
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.eth != nil {
		c.eth.Close()
		c.eth = nil
	}
	return nil
}

// WeiToEther converts a wei amount to ether
func WeiToEther(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, 0).Div(decimal.NewFromBigInt(big.NewInt(params.Ether), 0))
}

// GweiToWei parses a decimal gwei amount such as "1.5" into wei
func GweiToWei(gwei string) (*big.Int, error) {
	amount, err := decimal.NewFromString(gwei)
	if err != nil {
		return nil, fmt.Errorf("invalid gas price %q: %w", gwei, err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("invalid gas price %q: negative", gwei)
	}
	return amount.Mul(decimal.New(params.GWei, 0)).BigInt(), nil
}
