package adapters

import (
	"github.com/degenpro/depr-deploy/internal/adapters/accounts"
	"github.com/degenpro/depr-deploy/internal/adapters/artifacts"
	"github.com/degenpro/depr-deploy/internal/adapters/blockchain"
	"github.com/degenpro/depr-deploy/internal/adapters/interactive"
	"github.com/degenpro/depr-deploy/internal/adapters/network"
	"github.com/degenpro/depr-deploy/internal/adapters/progress"
	"github.com/degenpro/depr-deploy/internal/adapters/repository/deployments"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/google/wire"
)

// RepositorySet provides file-based storage
var RepositorySet = wire.NewSet(
	deployments.NewFileRepositoryFromConfig,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),

	artifacts.NewRepository,
)

// BlockchainSet provides the node connection, accounts and contract handles
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainReader), new(*blockchain.Client)),

	accounts.NewWallet,
	wire.Bind(new(usecase.AccountProvider), new(*accounts.Wallet)),
	wire.Bind(new(blockchain.SignerSource), new(*accounts.Wallet)),

	blockchain.NewContractResolver,
	wire.Bind(new(usecase.ArtifactResolver), new(*blockchain.ContractResolver)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmerAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.ConfirmerAdapter)),

	progress.NewProgressSink,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	BlockchainSet,
	InteractiveSet,
	ConfigSet,
)
