package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MigrateParams contains parameters for a deployment run
type MigrateParams struct {
	// Network is the target network name. Empty means the configured network.
	Network string
	DryRun  bool
}

// MigrateResult contains the result of a deployment run
type MigrateResult struct {
	Network string
	Profile domain.NetworkProfile
	ChainID uint64

	// Skipped is true when the network matched no profile and nothing ran
	Skipped    bool
	Suggestion string

	Plan    *domain.DeploymentPlan
	DryRun  bool
	Token   *models.DeployedContract
	PreSale *models.DeployedContract
	Calls   []*models.Transaction

	// Deployer and its balance before the first transaction; Balance is nil
	// when no sender was known up front or the lookup failed
	Deployer *common.Address
	Balance  *decimal.Decimal
}

// MigrateContracts deploys the token and pre-sale contracts and, on
// production networks, mints the initial supply to the pre-sale and opens it.
type MigrateContracts struct {
	config    *config.RuntimeConfig
	artifacts ArtifactResolver
	accounts  AccountProvider
	chain     ChainReader
	repo      DeploymentRepository
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewMigrateContracts creates a new MigrateContracts use case
func NewMigrateContracts(
	cfg *config.RuntimeConfig,
	artifacts ArtifactResolver,
	accounts AccountProvider,
	chain ChainReader,
	repo DeploymentRepository,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *MigrateContracts {
	if progress == nil {
		progress = NopProgress{}
	}
	return &MigrateContracts{
		config:    cfg,
		artifacts: artifacts,
		accounts:  accounts,
		chain:     chain,
		repo:      repo,
		confirmer: confirmer,
		progress:  progress,
		log:       log.With("component", "MigrateContracts"),
	}
}

// Run executes the deployment sequence for the network. Every transaction is
// issued only after the previous one is confirmed. Nothing is retried or
// rolled back; the first failure ends the run.
func (uc *MigrateContracts) Run(ctx context.Context, params MigrateParams) (*MigrateResult, error) {
	network := params.Network
	if network == "" {
		network = uc.config.NetworkName
	}

	profile := domain.ParseProfile(network)
	result := &MigrateResult{
		Network: network,
		Profile: profile,
		DryRun:  params.DryRun,
	}

	// Unrecognized networks deploy nothing and are not an error.
	if !profile.IsKnown() {
		uc.log.Debug("no deployment defined for network", "network", network)
		result.Skipped = true
		result.Suggestion = SuggestNetwork(network)
		return result, nil
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageResolving),
		Message: fmt.Sprintf("Resolving accounts on %s", network),
		Spinner: true,
	})

	accounts, err := uc.accounts.Accounts(ctx)
	if err != nil {
		uc.stopSpinner(ctx)
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	plan, err := domain.ResolvePlan(network, accounts)
	uc.stopSpinner(ctx)
	if err != nil {
		return nil, err
	}
	result.Plan = plan

	uc.log.Debug("resolved deployment plan",
		"network", network,
		"profile", profile,
		"fundsReceiver", plan.FundsReceiver.Hex(),
		"signer", plan.SignerLabel(),
		"postDeploy", plan.PostDeploy,
	)

	if params.DryRun {
		return result, nil
	}

	if profile.IsProduction() && !uc.config.NonInteractive {
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy %s to %s signing as %s",
			strings.Join([]string{domain.TokenArtifact, domain.PreSaleArtifact}, " and "), network, plan.SignerLabel()))
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			return nil, domain.ErrAborted
		}
	}

	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}
	result.ChainID = chainID
	uc.checkBalance(ctx, result)

	token, err := uc.artifacts.Require(ctx, domain.TokenArtifact)
	if err != nil {
		return nil, err
	}
	preSale, err := uc.artifacts.Require(ctx, domain.PreSaleArtifact)
	if err != nil {
		return nil, err
	}

	opts := CallOpts{From: plan.Signer}

	result.Token, err = uc.deploy(ctx, result, token, opts, plan.TokenName, plan.TokenSymbol)
	if err != nil {
		return nil, err
	}

	result.PreSale, err = uc.deploy(ctx, result, preSale, opts, result.Token.Address, plan.FundsReceiver)
	if err != nil {
		return nil, err
	}

	if plan.PostDeploy {
		mint, err := uc.invoke(ctx, result, token, result.Token.Address, opts, domain.InitialMintMethod, result.PreSale.Address)
		if err != nil {
			return nil, err
		}
		result.Calls = append(result.Calls, mint)

		open, err := uc.invoke(ctx, result, preSale, result.PreSale.Address, opts, domain.OpenMethod)
		if err != nil {
			return nil, err
		}
		result.Calls = append(result.Calls, open)
	}

	total := len(plan.Steps())
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCompleted),
		Current: total,
		Total:   total,
		Message: fmt.Sprintf("Deployed to %s", network),
	})

	return result, nil
}

// nextStep numbers the transaction about to be sent among all the plan sends
func (r *MigrateResult) nextStep() (int, int) {
	current := len(r.Calls) + 1
	for _, deployed := range []*models.DeployedContract{r.Token, r.PreSale} {
		if deployed != nil {
			current++
		}
	}
	return current, len(r.Plan.Steps())
}

// deploy creates one contract, waits for it, and records it
func (uc *MigrateContracts) deploy(ctx context.Context, result *MigrateResult, contract Contract, opts CallOpts, args ...any) (*models.DeployedContract, error) {
	current, total := result.nextStep()
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageDeploying),
		Current: current,
		Total:   total,
		Message: fmt.Sprintf("Deploying %s", contract.Name()),
		Spinner: true,
	})

	deployed, err := contract.Deploy(ctx, opts, args...)
	uc.stopSpinner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", contract.Name(), err)
	}

	uc.log.Info("contract deployed",
		"contract", deployed.Name,
		"address", deployed.Address.Hex(),
		"tx", deployed.TxHash.Hex(),
		"block", deployed.BlockNumber,
	)
	uc.progress.Info(fmt.Sprintf("%s deployed at %s", deployed.Name, deployed.Address.Hex()))

	record := &models.Deployment{
		ID:              models.DeploymentID(result.ChainID, deployed.Name),
		Network:         result.Network,
		ChainID:         result.ChainID,
		ContractName:    deployed.Name,
		Address:         deployed.Address.Hex(),
		TransactionHash: deployed.TxHash.Hex(),
		BlockNumber:     deployed.BlockNumber,
		Deployer:        deployed.Deployer.Hex(),
		ConstructorArgs: FormatArgs(args...),
		Artifact:        contract.Name(),
		CreatedAt:       time.Now(),
	}
	uc.recording(ctx, deployed.Name)
	err = uc.repo.SaveDeployment(ctx, record)
	uc.stopSpinner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to record %s deployment: %w", deployed.Name, err)
	}

	return deployed, nil
}

// invoke sends one call to a deployed contract, waits for it, and records it
func (uc *MigrateContracts) invoke(ctx context.Context, result *MigrateResult, contract Contract, at common.Address, opts CallOpts, method string, args ...any) (*models.Transaction, error) {
	label := fmt.Sprintf("%s.%s", contract.Name(), method)

	current, total := result.nextStep()
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageInvoking),
		Current: current,
		Total:   total,
		Message: fmt.Sprintf("Calling %s", label),
		Spinner: true,
	})

	receipt, err := contract.Invoke(ctx, at, opts, method, args...)
	uc.stopSpinner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", label, err)
	}

	uc.log.Info("contract called",
		"call", label,
		"tx", receipt.TxHash.Hex(),
		"block", receipt.BlockNumber,
	)
	uc.progress.Info(fmt.Sprintf("%s confirmed in block %d", label, receipt.BlockNumber))

	tx := &models.Transaction{
		Hash:        receipt.TxHash.Hex(),
		Network:     result.Network,
		ChainID:     result.ChainID,
		Contract:    contract.Name(),
		To:          at.Hex(),
		Method:      method,
		Args:        FormatArgs(args...),
		From:        receipt.From.Hex(),
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
		CreatedAt:   time.Now(),
	}
	uc.recording(ctx, label)
	err = uc.repo.SaveTransaction(ctx, tx)
	uc.stopSpinner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to record %s: %w", label, err)
	}

	return tx, nil
}

// checkBalance records the deployer's balance. A failed lookup is not fatal.
func (uc *MigrateContracts) checkBalance(ctx context.Context, result *MigrateResult) {
	deployer := result.Plan.Signer
	if deployer == nil {
		sender, err := uc.artifacts.DefaultSender(ctx)
		if err != nil {
			uc.log.Warn("failed to resolve default sender", "error", err)
			return
		}
		deployer = &sender
	}
	result.Deployer = deployer

	balance, err := uc.chain.Balance(ctx, *deployer)
	if err != nil {
		uc.log.Warn("failed to read deployer balance", "account", deployer.Hex(), "error", err)
		return
	}
	result.Balance = &balance

	if balance.IsZero() {
		uc.progress.Error(fmt.Sprintf("%s has no ether", deployer.Hex()))
		return
	}
	uc.progress.Info(fmt.Sprintf("Deployer %s holds %s ETH", deployer.Hex(), balance.StringFixed(4)))
}

func (uc *MigrateContracts) recording(ctx context.Context, what string) {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageRecording),
		Message: fmt.Sprintf("Recording %s", what),
		Spinner: true,
	})
}

func (uc *MigrateContracts) stopSpinner(ctx context.Context) {
	uc.progress.OnProgress(ctx, ProgressEvent{Spinner: false})
}

// FormatArgs renders call arguments for display and bookkeeping
func FormatArgs(args ...any) []string {
	return lo.Map(args, func(arg any, _ int) string {
		switch v := arg.(type) {
		case common.Address:
			return v.Hex()
		case *common.Address:
			if v == nil {
				return ""
			}
			return v.Hex()
		default:
			return fmt.Sprint(v)
		}
	})
}

// SuggestNetwork returns the closest known network name, or "" when nothing is close
func SuggestNetwork(network string) string {
	if network == "" {
		return ""
	}

	names := lo.Map(domain.KnownProfiles(), func(p domain.NetworkProfile, _ int) string {
		return string(p)
	})

	matches := fuzzy.Find(strings.ToLower(network), names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
