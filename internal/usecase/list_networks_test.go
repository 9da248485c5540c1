package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNetworkResolver struct {
	names    []string
	networks map[string]*config.Network
	chainIDs map[string]uint64
	probed   []string
}

func (r *fakeNetworkResolver) GetNetworks(ctx context.Context) []string {
	return r.names
}

func (r *fakeNetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	network, ok := r.networks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNetworkNotConfigured, name)
	}
	return network, nil
}

func (r *fakeNetworkResolver) FetchChainID(ctx context.Context, network *config.Network) (uint64, error) {
	r.probed = append(r.probed, network.Name)
	chainID, ok := r.chainIDs[network.Name]
	if !ok {
		return 0, errors.New("connection refused")
	}
	return chainID, nil
}

func TestListNetworks(t *testing.T) {
	resolver := &fakeNetworkResolver{
		names: []string{"development", "ropsten", "mainnet", "mainnet-fork", "rinkeby"},
		networks: map[string]*config.Network{
			"development": {Name: "development", RPCURL: "http://127.0.0.1:8545"},
			"mainnet":     {Name: "mainnet", RPCURL: "https://mainnet.example.org", ChainID: 1},
			"rinkeby":     {Name: "rinkeby", RPCURL: "https://rinkeby.example.org"},
		},
		chainIDs: map[string]uint64{
			"development": 1337,
			"rinkeby":     4,
		},
	}

	t.Run("probes configured networks", func(t *testing.T) {
		resolver.probed = nil
		uc := usecase.NewListNetworks(resolver)
		result, err := uc.Run(context.Background(), usecase.ListNetworksParams{})
		require.NoError(t, err)
		require.Len(t, result.Networks, 5)

		dev := result.Networks[0]
		assert.True(t, dev.Configured)
		assert.Equal(t, uint64(1337), dev.ChainID)
		assert.False(t, dev.PostDeploy)
		assert.NoError(t, dev.Error)

		ropsten := result.Networks[1]
		assert.False(t, ropsten.Configured)
		assert.NoError(t, ropsten.Error)

		mainnet := result.Networks[2]
		assert.True(t, mainnet.Configured)
		assert.True(t, mainnet.PostDeploy)
		assert.EqualError(t, mainnet.Error, "connection refused")

		assert.True(t, result.Networks[3].PostDeploy)

		rinkeby := result.Networks[4]
		assert.Equal(t, domain.ProfileUnknown, rinkeby.Profile)
		assert.Equal(t, uint64(4), rinkeby.ChainID)

		assert.Equal(t, []string{"development", "mainnet", "rinkeby"}, resolver.probed)
	})

	t.Run("skip probe keeps configured chain id", func(t *testing.T) {
		resolver.probed = nil
		uc := usecase.NewListNetworks(resolver)
		result, err := uc.Run(context.Background(), usecase.ListNetworksParams{SkipProbe: true})
		require.NoError(t, err)

		assert.Empty(t, resolver.probed)
		assert.Equal(t, uint64(1), result.Networks[2].ChainID)
		assert.NoError(t, result.Networks[2].Error)
	})
}
