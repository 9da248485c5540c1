package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// NetworkName is the --network value, possibly an unrecognized one
	NetworkName string
	Network     *Network // nil if the name has no [networks.<name>] section

	// Execution settings
	Debug          bool
	NonInteractive bool
	DryRun         bool
	Output         string
	Timeout        time.Duration

	// Resolved project file
	Project *ProjectConfig
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId"` // 0 accepts whatever the node reports

	// From overrides the default sender (accounts[0])
	From string `json:"from,omitempty"`

	Accounts      AccountsConfig `json:"-"`
	Confirmations uint64         `json:"confirmations,omitempty"`
	GasLimit      uint64         `json:"gasLimit,omitempty"`
	GasPriceGwei  string         `json:"gasPriceGwei,omitempty"`
}

// AccountsConfig describes where signing keys for a network come from
type AccountsConfig struct {
	Mnemonic     string
	AccountCount int
	PrivateKeys  []string
}

// UsesLocalKeys reports whether transactions are signed locally rather than by the node
func (a AccountsConfig) UsesLocalKeys() bool {
	return a.Mnemonic != "" || len(a.PrivateKeys) > 0
}
