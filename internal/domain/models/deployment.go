package models

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// DeployedContract is a contract instance whose creation has been mined
type DeployedContract struct {
	Name        string
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	Deployer    common.Address
}

// TxReceipt is the confirmed result of a state-changing call
type TxReceipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	From        common.Address
}

// Deployment is the registry record of a deployed contract
type Deployment struct {
	ID              string    `json:"id"`
	Network         string    `json:"network"`
	ChainID         uint64    `json:"chainId"`
	ContractName    string    `json:"contractName"`
	Address         string    `json:"address"`
	TransactionHash string    `json:"transactionHash"`
	BlockNumber     uint64    `json:"blockNumber"`
	Deployer        string    `json:"deployer"`
	ConstructorArgs []string  `json:"constructorArgs,omitempty"`
	Artifact        string    `json:"artifact,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DeploymentID builds the registry key of a contract on a chain
func DeploymentID(chainID uint64, contractName string) string {
	return fmt.Sprintf("%d/%s", chainID, contractName)
}

// Transaction is the registry record of a post-deploy call
type Transaction struct {
	Hash        string    `json:"hash"`
	Network     string    `json:"network"`
	ChainID     uint64    `json:"chainId"`
	Contract    string    `json:"contract"`
	To          string    `json:"to"`
	Method      string    `json:"method"`
	Args        []string  `json:"args,omitempty"`
	From        string    `json:"from"`
	BlockNumber uint64    `json:"blockNumber"`
	GasUsed     uint64    `json:"gasUsed"`
	CreatedAt   time.Time `json:"createdAt"`
}
