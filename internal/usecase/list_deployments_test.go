package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/models"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDeployments(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("list all deployments", func(t *testing.T) {
		deployments := []*models.Deployment{
			{
				ID:           "1/DEPRPreSale",
				Network:      "mainnet",
				ChainID:      1,
				ContractName: "DEPRPreSale",
				Address:      "0x2222222222222222222222222222222222222222",
				CreatedAt:    now.Add(time.Minute),
			},
			{
				ID:           "1/DEPRToken",
				Network:      "mainnet",
				ChainID:      1,
				ContractName: "DEPRToken",
				Address:      "0x1111111111111111111111111111111111111111",
				CreatedAt:    now,
			},
			{
				ID:           "1337/DEPRToken",
				Network:      "development",
				ChainID:      1337,
				ContractName: "DEPRToken",
				Address:      "0x3333333333333333333333333333333333333333",
				CreatedAt:    now.Add(-time.Hour),
			},
		}
		transactions := []*models.Transaction{
			{Hash: "0xbb", Method: "open", CreatedAt: now.Add(3 * time.Minute)},
			{Hash: "0xaa", Method: "initialMint", CreatedAt: now.Add(2 * time.Minute)},
		}

		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", ctx, domain.DeploymentFilter{}).Return(deployments, nil)
		repo.On("ListTransactions", ctx, domain.TransactionFilter{}).Return(transactions, nil)

		uc := usecase.NewListDeployments(repo)
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{})
		require.NoError(t, err)

		require.Len(t, result.Deployments, 3)
		assert.Equal(t, "1/DEPRToken", result.Deployments[0].ID)
		assert.Equal(t, "1/DEPRPreSale", result.Deployments[1].ID)
		assert.Equal(t, "1337/DEPRToken", result.Deployments[2].ID)

		assert.Equal(t, "initialMint", result.Transactions[0].Method)
		assert.Equal(t, "open", result.Transactions[1].Method)

		assert.Equal(t, 3, result.Summary.Total)
		assert.Equal(t, 2, result.Summary.ByNetwork["mainnet"])
		assert.Equal(t, 1, result.Summary.ByChain[1337])
		repo.AssertExpectations(t)
	})

	t.Run("filters are passed through", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", ctx, domain.DeploymentFilter{Network: "ropsten", ChainID: 3}).Return([]*models.Deployment{}, nil)
		repo.On("ListTransactions", ctx, domain.TransactionFilter{Network: "ropsten", ChainID: 3}).Return([]*models.Transaction{}, nil)

		uc := usecase.NewListDeployments(repo)
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{Network: "ropsten", ChainID: 3})
		require.NoError(t, err)
		assert.Zero(t, result.Summary.Total)
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", ctx, domain.DeploymentFilter{}).Return(nil, errors.New("disk full"))

		uc := usecase.NewListDeployments(repo)
		_, err := uc.Run(ctx, usecase.ListDeploymentsParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list deployments")
	})
}
