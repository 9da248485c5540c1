package accounts

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/hdkeychain"
	"github.com/degenpro/depr-deploy/internal/adapters/blockchain"
	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
	"github.com/zeebo/errs"
)

// Error is the error class of account derivation and signing
var Error = errs.Class("accounts")

// Source identifies where a wallet's accounts come from
type Source string

const (
	SourceMnemonic    Source = "mnemonic"
	SourcePrivateKeys Source = "private_keys"
	SourceNode        Source = "node"
)

// Wallet resolves the accounts of the runtime network: keys derived from a
// mnemonic, explicit private keys, or the accounts the node manages.
type Wallet struct {
	network *config.Network
	name    string
	client  *blockchain.Client
	log     *slog.Logger

	mu       sync.Mutex
	loaded   bool
	accounts []common.Address
	keys     map[common.Address]*ecdsa.PrivateKey
}

// NewWallet creates a wallet for the runtime network
func NewWallet(cfg *config.RuntimeConfig, client *blockchain.Client, log *slog.Logger) *Wallet {
	return &Wallet{
		network: cfg.Network,
		name:    cfg.NetworkName,
		client:  client,
		log:     log.With("component", "wallet"),
		keys:    make(map[common.Address]*ecdsa.PrivateKey),
	}
}

// Source reports which account source the network is configured with
func (w *Wallet) Source() Source {
	switch {
	case w.network == nil:
		return SourceNode
	case w.network.Accounts.Mnemonic != "":
		return SourceMnemonic
	case len(w.network.Accounts.PrivateKeys) > 0:
		return SourcePrivateKeys
	default:
		return SourceNode
	}
}

// Accounts returns the available addresses, accounts[0] first
func (w *Wallet) Accounts(ctx context.Context) ([]common.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.loaded {
		return w.accounts, nil
	}
	if w.network == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNetworkNotConfigured, w.name)
	}

	var err error
	switch w.Source() {
	case SourceMnemonic:
		err = w.loadMnemonic(w.network.Accounts.Mnemonic, w.network.Accounts.AccountCount)
	case SourcePrivateKeys:
		err = w.loadPrivateKeys(w.network.Accounts.PrivateKeys)
	default:
		err = w.loadNodeAccounts(ctx)
	}
	if err != nil {
		return nil, err
	}

	w.loaded = true
	w.log.Debug("accounts loaded", "source", w.Source(), "count", len(w.accounts))
	return w.accounts, nil
}

func (w *Wallet) loadMnemonic(mnemonic string, count int) error {
	derived, err := DeriveKeys(mnemonic, count)
	if err != nil {
		return err
	}
	for _, key := range derived {
		w.add(key)
	}
	return nil
}

func (w *Wallet) loadPrivateKeys(hexKeys []string) error {
	for i, hexKey := range hexKeys {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
		if err != nil {
			return Error.New("invalid private key #%d: %v", i, err)
		}
		w.add(key)
	}
	return nil
}

func (w *Wallet) loadNodeAccounts(ctx context.Context) error {
	rpcClient, err := w.client.RPC(ctx)
	if err != nil {
		return err
	}

	var addrs []common.Address
	if err := rpcClient.CallContext(ctx, &addrs, "eth_accounts"); err != nil {
		return Error.New("eth_accounts: %v", err)
	}
	w.accounts = addrs
	return nil
}

func (w *Wallet) add(key *ecdsa.PrivateKey) {
	address := crypto.PubkeyToAddress(key.PublicKey)
	if _, ok := w.keys[address]; ok {
		return
	}
	w.keys[address] = key
	w.accounts = append(w.accounts, address)
}

// SignerFor returns a transaction signer for an account. Local keys sign in
// process; otherwise the node is asked to sign.
func (w *Wallet) SignerFor(ctx context.Context, from common.Address, chainID *big.Int) (bind.SignerFn, error) {
	if _, err := w.Accounts(ctx); err != nil {
		return nil, err
	}

	if w.Source() == SourceNode {
		rpcClient, err := w.client.RPC(ctx)
		if err != nil {
			return nil, err
		}
		return NodeSigner(ctx, rpcClient, from, chainID), nil
	}

	w.mu.Lock()
	key, ok := w.keys[from]
	w.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAccount, from.Hex())
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return opts.Signer, nil
}

// DeriveKeys derives count private keys from a BIP-39 mnemonic along the
// default ethereum path m/44'/60'/0'/0/i.
func DeriveKeys(mnemonic string, count int) ([]*ecdsa.PrivateKey, error) {
	if count <= 0 {
		count = config.DefaultAccountCount
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if len(seed) == 0 {
		return nil, Error.New("unexpectedly empty seed")
	}

	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	next := accounts.DefaultIterator(accounts.DefaultBaseDerivationPath)
	keys := make([]*ecdsa.PrivateKey, 0, count)
	for i := 0; i < count; i++ {
		key, err := derive(masterKey, next())
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func derive(masterKey *hdkeychain.ExtendedKey, path accounts.DerivationPath) (*ecdsa.PrivateKey, error) {
	var err error
	key := masterKey
	for _, n := range path {
		key, err = key.Derive(n)
		if err != nil {
			return nil, Error.Wrap(err)
		}
	}

	privateKey, err := key.ECPrivKey()
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return privateKey.ToECDSA(), nil
}

var _ blockchain.SignerSource = (*Wallet)(nil)
