package domain

// DeploymentFilter defines filtering options for deployments
type DeploymentFilter struct {
	Network      string
	ChainID      uint64
	ContractName string
}

// TransactionFilter defines filtering options for post-deploy transactions
type TransactionFilter struct {
	Network string
	ChainID uint64
}
