package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrUnknownNetwork is returned when a plan is requested for an unrecognized network
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrNetworkNotConfigured is returned when a known profile has no rpc endpoint
	ErrNetworkNotConfigured = errors.New("network not configured")

	// ErrNetworkMismatch is returned when the node reports an unexpected chain id
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrNoAccounts is returned when accounts[0] is needed but no account is available
	ErrNoAccounts = errors.New("no accounts available")

	// ErrUnknownAccount is returned when a transaction is requested from an account the wallet can't sign for
	ErrUnknownAccount = errors.New("unknown account")

	// ErrArtifactNotFound is returned when no compiled artifact exists for a contract
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidArtifact is returned when an artifact has no usable ABI or bytecode
	ErrInvalidArtifact = errors.New("invalid artifact")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrAborted is returned when the operator declines a production deployment
	ErrAborted = errors.New("deployment aborted")
)

// RevertedErr carries the failing transaction of a reverted step
type RevertedErr struct {
	TxHash  string
	Block   uint64
	GasUsed uint64
}

func (e RevertedErr) Error() string {
	return fmt.Sprintf("transaction %s reverted in block %d (gas used %d)", e.TxHash, e.Block, e.GasUsed)
}

func (e RevertedErr) Unwrap() error {
	return ErrTransactionReverted
}
