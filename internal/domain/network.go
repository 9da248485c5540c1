package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// NetworkProfile identifies which deployment branch a network name selects
type NetworkProfile string

const (
	ProfileDevelopment NetworkProfile = "development"
	ProfileRopsten     NetworkProfile = "ropsten"
	ProfileMainnet     NetworkProfile = "mainnet"
	ProfileMainnetFork NetworkProfile = "mainnet-fork"
	ProfileUnknown     NetworkProfile = "unknown"
)

// Contract artifact names and constructor constants
const (
	TokenArtifact   = "DEPRToken"
	PreSaleArtifact = "DEPRPreSale"

	TokenName   = "DegenPro Finance"
	TokenSymbol = "DEPR"

	InitialMintMethod = "initialMint"
	OpenMethod        = "open"
)

var (
	// RopstenFundsReceiver receives pre-sale funds on ropsten
	RopstenFundsReceiver = common.HexToAddress("0x062306daAFD2dBA9e80f34B56220f7Df83954313")

	// MainnetFundsReceiver receives pre-sale funds on mainnet and mainnet forks
	MainnetFundsReceiver = common.HexToAddress("0x903AE1B519395049d7f56779C66FF74047577c1f")
)

// KnownProfiles returns the recognized network names in display order
func KnownProfiles() []NetworkProfile {
	return []NetworkProfile{
		ProfileDevelopment,
		ProfileRopsten,
		ProfileMainnet,
		ProfileMainnetFork,
	}
}

// ParseProfile maps a network name to its profile. Matching is exact and
// case-sensitive; anything unrecognized is ProfileUnknown.
func ParseProfile(network string) NetworkProfile {
	switch network {
	case "development":
		return ProfileDevelopment
	case "ropsten":
		return ProfileRopsten
	case "mainnet":
		return ProfileMainnet
	case "mainnet-fork":
		return ProfileMainnetFork
	default:
		return ProfileUnknown
	}
}

// IsProduction reports whether the profile signs explicitly with accounts[0]
// and runs the post-deploy mint and open calls.
func (p NetworkProfile) IsProduction() bool {
	return p == ProfileMainnet || p == ProfileMainnetFork
}

// IsKnown reports whether the profile deploys anything at all
func (p NetworkProfile) IsKnown() bool {
	return p != ProfileUnknown
}

// ExpectedChainID is the chain id a node for this profile must report, or 0
// when any chain is acceptable (local nodes and forks).
func (p NetworkProfile) ExpectedChainID() uint64 {
	switch p {
	case ProfileRopsten:
		return 3
	case ProfileMainnet:
		return 1
	default:
		return 0
	}
}

func (p NetworkProfile) String() string {
	return string(p)
}
