package network

import (
	"context"
	"fmt"
	"sort"
	"time"

	internalconfig "github.com/degenpro/depr-deploy/internal/config"
	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"
)

// probeTimeout bounds a chain id lookup against a node
const probeTimeout = 10 * time.Second

// Resolver resolves network names against depr.toml
type Resolver struct {
	project *config.ProjectConfig
}

// NewResolver creates a new network resolver
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	project := cfg.Project
	if project == nil {
		project = &config.ProjectConfig{}
	}
	return &Resolver{project: project}
}

// GetNetworks returns the known profiles in display order, followed by any
// other configured networks sorted by name
func (r *Resolver) GetNetworks(ctx context.Context) []string {
	known := lo.Map(domain.KnownProfiles(), func(p domain.NetworkProfile, _ int) string {
		return string(p)
	})

	extra := lo.Filter(lo.Keys(r.project.Networks), func(name string, _ int) bool {
		return !lo.Contains(known, name)
	})
	sort.Strings(extra)

	return lo.Uniq(append(known, extra...))
}

// ResolveNetwork resolves a network name to its configuration
func (r *Resolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	if networkName == "" {
		return nil, fmt.Errorf("network not specified")
	}

	network := internalconfig.BuildNetwork(r.project, networkName)
	if network == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNetworkNotConfigured, networkName)
	}
	return network, nil
}

// FetchChainID asks the network's node for its chain id
func (r *Resolver) FetchChainID(ctx context.Context, network *config.Network) (uint64, error) {
	if network.RPCURL == "" {
		return 0, fmt.Errorf("%w: %s has no rpc_url", domain.ErrNetworkNotConfigured, network.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

var _ usecase.NetworkResolver = (*Resolver)(nil)
