package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	Network string
	ChainID uint64
}

// DeploymentListResult contains the recorded deployments and post-deploy calls
type DeploymentListResult struct {
	Deployments  []*models.Deployment
	Transactions []*models.Transaction
	Summary      DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total     int
	ByNetwork map[string]int
	ByChain   map[uint64]int
}

// ListDeployments is a use case for listing the deployment registry
type ListDeployments struct {
	repo DeploymentRepository
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(repo DeploymentRepository) *ListDeployments {
	return &ListDeployments{
		repo: repo,
	}
}

// Run executes the use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	deployments, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{
		Network: params.Network,
		ChainID: params.ChainID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	transactions, err := uc.repo.ListTransactions(ctx, domain.TransactionFilter{
		Network: params.Network,
		ChainID: params.ChainID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	// Oldest first, the order they were deployed in
	sort.SliceStable(deployments, func(i, j int) bool {
		if deployments[i].ChainID != deployments[j].ChainID {
			return deployments[i].ChainID < deployments[j].ChainID
		}
		return deployments[i].CreatedAt.Before(deployments[j].CreatedAt)
	})
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.Before(transactions[j].CreatedAt)
	})

	summary := DeploymentSummary{
		Total:     len(deployments),
		ByNetwork: make(map[string]int),
		ByChain:   make(map[uint64]int),
	}
	for _, dep := range deployments {
		summary.ByNetwork[dep.Network]++
		summary.ByChain[dep.ChainID]++
	}

	return &DeploymentListResult{
		Deployments:  deployments,
		Transactions: transactions,
		Summary:      summary,
	}, nil
}
