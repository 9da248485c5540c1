package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/degenpro/depr-deploy/internal/adapters/artifacts"
	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/domain/models"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SignerSource supplies accounts and signs transactions for them
type SignerSource interface {
	Accounts(ctx context.Context) ([]common.Address, error)
	SignerFor(ctx context.Context, from common.Address, chainID *big.Int) (bind.SignerFn, error)
}

// ContractResolver implements usecase.ArtifactResolver on top of compiled
// artifacts and a node connection
type ContractResolver struct {
	artifacts *artifacts.Repository
	client    *Client
	signers   SignerSource
	network   *config.Network
	log       *slog.Logger
}

// NewContractResolver creates a new contract resolver
func NewContractResolver(cfg *config.RuntimeConfig, repo *artifacts.Repository, client *Client, signers SignerSource, log *slog.Logger) *ContractResolver {
	return &ContractResolver{
		artifacts: repo,
		client:    client,
		signers:   signers,
		network:   cfg.Network,
		log:       log.With("component", "ContractResolver"),
	}
}

// Require returns a handle on the named compiled contract
func (r *ContractResolver) Require(ctx context.Context, name string) (usecase.Contract, error) {
	compiled, err := r.artifacts.Load(name)
	if err != nil {
		return nil, err
	}
	return &contractHandle{resolver: r, compiled: compiled}, nil
}

// transactOpts builds signing options for a transaction. With no explicit
// sender the network's from address is used, then accounts[0].
func (r *ContractResolver) transactOpts(ctx context.Context, opts usecase.CallOpts) (*bind.TransactOpts, error) {
	from, err := r.sender(ctx, opts.From)
	if err != nil {
		return nil, err
	}

	chainID, err := r.client.ChainIDBig(ctx)
	if err != nil {
		return nil, err
	}

	signer, err := r.signers.SignerFor(ctx, from, chainID)
	if err != nil {
		return nil, err
	}

	txOpts := &bind.TransactOpts{
		From:    from,
		Signer:  signer,
		Context: ctx,
	}

	if r.network != nil {
		txOpts.GasLimit = r.network.GasLimit
		if r.network.GasPriceGwei != "" {
			txOpts.GasPrice, err = GweiToWei(r.network.GasPriceGwei)
			if err != nil {
				return nil, err
			}
		}
	}

	return txOpts, nil
}

// DefaultSender returns the signer used when a call names none
func (r *ContractResolver) DefaultSender(ctx context.Context) (common.Address, error) {
	return r.sender(ctx, nil)
}

func (r *ContractResolver) sender(ctx context.Context, explicit *common.Address) (common.Address, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if r.network != nil && r.network.From != "" {
		if !common.IsHexAddress(r.network.From) {
			return common.Address{}, fmt.Errorf("invalid from address %q for network %s", r.network.From, r.network.Name)
		}
		return common.HexToAddress(r.network.From), nil
	}

	accounts, err := r.signers.Accounts(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if len(accounts) == 0 {
		return common.Address{}, domain.ErrNoAccounts
	}
	return accounts[0], nil
}

// waitMined blocks until tx is mined with the configured confirmations and
// fails when it reverted
func (r *ContractResolver) waitMined(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
	r.log.Debug("waiting for transaction", "tx", tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, domain.RevertedErr{
			TxHash:  tx.Hash().Hex(),
			Block:   receipt.BlockNumber.Uint64(),
			GasUsed: receipt.GasUsed,
		}
	}

	if r.network != nil {
		if err := r.client.WaitConfirmations(ctx, receipt.BlockNumber.Uint64(), r.network.Confirmations); err != nil {
			return nil, fmt.Errorf("failed waiting for confirmations of %s: %w", tx.Hash().Hex(), err)
		}
	}

	return receipt, nil
}

// contractHandle is a compiled contract bound to the resolver's connection
type contractHandle struct {
	resolver *ContractResolver
	compiled *models.CompiledContract
}

func (h *contractHandle) Name() string {
	return h.compiled.Name
}

// Deploy sends the creation transaction and waits until code is live at the new address
func (h *contractHandle) Deploy(ctx context.Context, opts usecase.CallOpts, args ...any) (*models.DeployedContract, error) {
	backend, err := h.resolver.client.Backend(ctx)
	if err != nil {
		return nil, err
	}

	txOpts, err := h.resolver.transactOpts(ctx, opts)
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(txOpts, h.compiled.ABI, h.compiled.Bytecode, backend, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send creation transaction: %w", err)
	}
	h.resolver.log.Debug("creation transaction sent", "contract", h.compiled.Name, "tx", tx.Hash().Hex(), "address", address.Hex())

	receipt, err := h.resolver.waitMined(ctx, backend, tx)
	if err != nil {
		return nil, err
	}

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w at %s", bind.ErrNoCodeAfterDeploy, address.Hex())
	}

	return &models.DeployedContract{
		Name:        h.compiled.Name,
		Address:     address,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Deployer:    txOpts.From,
	}, nil
}

// Invoke sends a state-changing call to the contract at an address and waits for it
func (h *contractHandle) Invoke(ctx context.Context, at common.Address, opts usecase.CallOpts, method string, args ...any) (*models.TxReceipt, error) {
	if _, ok := h.compiled.ABI.Methods[method]; !ok {
		return nil, fmt.Errorf("%w: %s has no method %s", domain.ErrInvalidArtifact, h.compiled.Name, method)
	}

	backend, err := h.resolver.client.Backend(ctx)
	if err != nil {
		return nil, err
	}

	txOpts, err := h.resolver.transactOpts(ctx, opts)
	if err != nil {
		return nil, err
	}

	bound := bind.NewBoundContract(at, h.compiled.ABI, backend, backend, backend)
	tx, err := bound.Transact(txOpts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	h.resolver.log.Debug("transaction sent", "contract", h.compiled.Name, "method", method, "tx", tx.Hash().Hex())

	receipt, err := h.resolver.waitMined(ctx, backend, tx)
	if err != nil {
		return nil, err
	}

	return &models.TxReceipt{
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		From:        txOpts.From,
	}, nil
}

var _ usecase.ArtifactResolver = (*ContractResolver)(nil)
var _ usecase.ChainReader = (*Client)(nil)
