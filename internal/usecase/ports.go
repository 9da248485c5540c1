package usecase

import (
	"context"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// CallOpts carries per-transaction options for contract handles
type CallOpts struct {
	// From is the explicit signer. nil means the network's default sender.
	From *common.Address
}

// ArtifactResolver looks up compiled contracts by name, like truffle's artifacts.require
type ArtifactResolver interface {
	Require(ctx context.Context, name string) (Contract, error)
	// DefaultSender is the address that signs when CallOpts.From is nil
	DefaultSender(ctx context.Context) (common.Address, error)
}

// Contract is a handle on a compiled contract. Both methods block until the
// transaction is mined and fail if it reverted.
type Contract interface {
	Name() string
	Deploy(ctx context.Context, opts CallOpts, args ...any) (*models.DeployedContract, error)
	Invoke(ctx context.Context, at common.Address, opts CallOpts, method string, args ...any) (*models.TxReceipt, error)
}

// AccountProvider supplies the addresses of the signing environment, accounts[0] first
type AccountProvider interface {
	Accounts(ctx context.Context) ([]common.Address, error)
}

// ChainReader reports facts about the connected chain
type ChainReader interface {
	ChainID(ctx context.Context) (uint64, error)
	// Balance is in ether
	Balance(ctx context.Context, account common.Address) (decimal.Decimal, error)
}

// DeploymentRepository persists deployment bookkeeping
type DeploymentRepository interface {
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	SaveTransaction(ctx context.Context, transaction *models.Transaction) error
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*models.Transaction, error)
}

// Confirmer asks the operator before irreversible production transactions
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
	FetchChainID(ctx context.Context, network *config.Network) (uint64, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update. Current and Total count
// transactions when both are set.
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage in the migration
type ExecutionStage string

const (
	StageResolving ExecutionStage = "Resolving"
	StageDeploying ExecutionStage = "Deploying"
	StageInvoking  ExecutionStage = "Invoking"
	StageRecording ExecutionStage = "Recording"
	StageCompleted ExecutionStage = "Completed"
)
