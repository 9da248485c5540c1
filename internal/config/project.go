package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/joho/godotenv"
)

// ProjectFile is the name of the project configuration file
const ProjectFile = "depr.toml"

// DefaultDevelopmentRPC is used when depr.toml has no development section
const DefaultDevelopmentRPC = "http://127.0.0.1:8545"

// loadEnvFiles loads .env files from the project root so that depr.toml can
// reference secrets as ${VAR}. Variables already set in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadProjectConfig loads and expands depr.toml from the project root. A
// missing file yields the defaults.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	cfg := &config.ProjectConfig{
		Networks: make(map[string]config.NetworkConfig),
	}

	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat %s: %w", ProjectFile, err)
	}

	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = config.DefaultArtifactsDir
	}

	for name, network := range cfg.Networks {
		cfg.Networks[name] = expandNetwork(network)
	}

	if _, ok := cfg.Networks[string(domain.ProfileDevelopment)]; !ok {
		cfg.Networks[string(domain.ProfileDevelopment)] = config.NetworkConfig{
			RPCURL: DefaultDevelopmentRPC,
		}
	}

	return cfg, nil
}

// expandNetwork substitutes ${VAR} references in the string fields of a network section
func expandNetwork(n config.NetworkConfig) config.NetworkConfig {
	n.RPCURL = os.ExpandEnv(n.RPCURL)
	n.From = os.ExpandEnv(n.From)
	n.Mnemonic = strings.TrimSpace(os.ExpandEnv(n.Mnemonic))
	n.GasPriceGwei = os.ExpandEnv(n.GasPriceGwei)

	keys := make([]string, 0, len(n.PrivateKeys))
	for _, key := range n.PrivateKeys {
		if expanded := strings.TrimSpace(os.ExpandEnv(key)); expanded != "" {
			keys = append(keys, expanded)
		}
	}
	n.PrivateKeys = keys

	return n
}

// BuildNetwork turns a depr.toml section into the runtime network, filling in
// the chain id a known profile expects when none is configured. Returns nil
// when the network has no section.
func BuildNetwork(project *config.ProjectConfig, name string) *config.Network {
	section, ok := project.Networks[name]
	if !ok {
		return nil
	}

	chainID := section.ChainID
	if chainID == 0 {
		chainID = domain.ParseProfile(name).ExpectedChainID()
	}

	accountCount := section.AccountCount
	if accountCount <= 0 {
		accountCount = config.DefaultAccountCount
	}

	return &config.Network{
		Name:    name,
		RPCURL:  section.RPCURL,
		ChainID: chainID,
		From:    section.From,
		Accounts: config.AccountsConfig{
			Mnemonic:     section.Mnemonic,
			AccountCount: accountCount,
			PrivateKeys:  section.PrivateKeys,
		},
		Confirmations: section.Confirmations,
		GasLimit:      section.GasLimit,
		GasPriceGwei:  section.GasPriceGwei,
	}
}
