package blockchain

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientChainID(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts any chain when unset", func(t *testing.T) {
		_, url := newFakeNode(t, 1337)
		client := NewClient(&config.RuntimeConfig{
			NetworkName: "development",
			Network:     &config.Network{Name: "development", RPCURL: url},
		}, testLogger())
		defer client.Close()

		chainID, err := client.ChainID(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1337), chainID)
	})

	t.Run("rejects wrong chain", func(t *testing.T) {
		_, url := newFakeNode(t, 1337)
		client := NewClient(&config.RuntimeConfig{
			NetworkName: "mainnet",
			Network:     &config.Network{Name: "mainnet", RPCURL: url, ChainID: 1},
		}, testLogger())

		_, err := client.ChainID(ctx)
		assert.ErrorIs(t, err, domain.ErrNetworkMismatch)
	})

	t.Run("unconfigured network", func(t *testing.T) {
		client := NewClient(&config.RuntimeConfig{NetworkName: "ropsten"}, testLogger())

		_, err := client.ChainID(ctx)
		assert.ErrorIs(t, err, domain.ErrNetworkNotConfigured)
		assert.NoError(t, client.Close())
	})
}

func TestClientBalance(t *testing.T) {
	node, url := newFakeNode(t, 1)
	account := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	node.balances[account], _ = new(big.Int).SetString("1500000000000000000", 10)

	client := NewClient(&config.RuntimeConfig{
		NetworkName: "mainnet",
		Network:     &config.Network{Name: "mainnet", RPCURL: url, ChainID: 1},
	}, testLogger())
	defer client.Close()

	balance, err := client.Balance(context.Background(), account)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(1.5).Equal(balance), balance.String())
}

func TestClientWaitConfirmations(t *testing.T) {
	tests := []struct {
		name          string
		head          uint64
		confirmations uint64
		advance       uint64 // blocks mined while waiting
	}{
		{name: "zero returns immediately", head: 101, confirmations: 0},
		{name: "already deep enough", head: 103, confirmations: 2},
		{name: "one extra block", head: 101, confirmations: 1, advance: 1},
		{name: "two extra blocks", head: 102, confirmations: 2, advance: 1},
		{name: "from the mined block", head: 101, confirmations: 3, advance: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, url := newFakeNode(t, 1337)
			node.block = tt.head

			client := NewClient(&config.RuntimeConfig{
				NetworkName: "development",
				Network:     &config.Network{Name: "development", RPCURL: url},
			}, testLogger())
			client.pollInterval = 10 * time.Millisecond
			defer client.Close()

			done := make(chan error, 1)
			go func() {
				done <- client.WaitConfirmations(context.Background(), 101, tt.confirmations)
			}()

			for i := uint64(0); i < tt.advance; i++ {
				select {
				case err := <-done:
					t.Fatalf("returned with head %d before reaching %d: %v", tt.head+i, 101+tt.confirmations, err)
				case <-time.After(50 * time.Millisecond):
				}
				node.mu.Lock()
				node.block++
				node.mu.Unlock()
			}

			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(2 * time.Second):
				t.Fatal("still waiting after the target block was reached")
			}
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		_, url := newFakeNode(t, 1337)
		client := NewClient(&config.RuntimeConfig{
			NetworkName: "development",
			Network:     &config.Network{Name: "development", RPCURL: url},
		}, testLogger())
		client.pollInterval = 10 * time.Millisecond
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		err := client.WaitConfirmations(ctx, 100, 5)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestGweiToWei(t *testing.T) {
	wei, err := GweiToWei("1.5")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_500_000_000), wei)

	wei, err = GweiToWei("20")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(20_000_000_000), wei)

	_, err = GweiToWei("fast")
	assert.Error(t, err)

	_, err = GweiToWei("-1")
	assert.Error(t, err)
}

func TestWeiToEther(t *testing.T) {
	assert.Equal(t, "0.000000001", WeiToEther(big.NewInt(1_000_000_000)).String())
	assert.Equal(t, "0", WeiToEther(big.NewInt(0)).String())
}
