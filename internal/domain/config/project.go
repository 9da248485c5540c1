package config

// DefaultArtifactsDir is where truffle writes compiled contracts
const DefaultArtifactsDir = "build/contracts"

// DefaultAccountCount is the number of HD accounts derived from a mnemonic
const DefaultAccountCount = 10

// ProjectConfig represents depr.toml
type ProjectConfig struct {
	ArtifactsDir string                   `toml:"artifacts_dir"`
	Networks     map[string]NetworkConfig `toml:"networks"`
}

// NetworkConfig is a [networks.<name>] section of depr.toml
type NetworkConfig struct {
	RPCURL        string   `toml:"rpc_url"`
	ChainID       uint64   `toml:"chain_id,omitempty"`
	From          string   `toml:"from,omitempty"`
	Mnemonic      string   `toml:"mnemonic,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	AccountCount  int      `toml:"account_count,omitempty"`
	PrivateKeys   []string `toml:"private_keys,omitempty"`
	Confirmations uint64   `toml:"confirmations,omitempty"`
	GasLimit      uint64   `toml:"gas_limit,omitempty"`
	GasPriceGwei  string   `toml:"gas_price_gwei,omitempty"`
}
