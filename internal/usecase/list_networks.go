package usecase

import (
	"context"
	"errors"

	"github.com/degenpro/depr-deploy/internal/domain"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// SkipProbe disables the chain id lookup against each rpc endpoint
	SkipProbe bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name       string
	Profile    domain.NetworkProfile
	Configured bool
	RPCURL     string
	PostDeploy bool
	ChainID    uint64
	Error      error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		profile := domain.ParseProfile(name)
		status := NetworkStatus{
			Name:       name,
			Profile:    profile,
			PostDeploy: profile.IsProduction(),
		}

		network, err := uc.resolver.ResolveNetwork(ctx, name)
		switch {
		case errors.Is(err, domain.ErrNetworkNotConfigured):
			networks = append(networks, status)
			continue
		case err != nil:
			status.Error = err
			networks = append(networks, status)
			continue
		}

		status.Configured = true
		status.RPCURL = network.RPCURL
		status.ChainID = network.ChainID

		if !params.SkipProbe {
			chainID, err := uc.resolver.FetchChainID(ctx, network)
			if err != nil {
				status.Error = err
			} else {
				status.ChainID = chainID
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
