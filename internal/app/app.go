package app

import (
	"log/slog"

	"github.com/degenpro/depr-deploy/internal/adapters/blockchain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/zeebo/errs"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	MigrateContracts *usecase.MigrateContracts
	ListNetworks     *usecase.ListNetworks
	ListDeployments  *usecase.ListDeployments

	client *blockchain.Client
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	migrateContracts *usecase.MigrateContracts,
	listNetworks *usecase.ListNetworks,
	listDeployments *usecase.ListDeployments,
	client *blockchain.Client,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		MigrateContracts: migrateContracts,
		ListNetworks:     listNetworks,
		ListDeployments:  listDeployments,
		client:           client,
	}, nil
}

// Close releases the node connection
func (a *App) Close() error {
	var group errs.Group
	if a.client != nil {
		group.Add(a.client.Close())
	}
	return group.Err()
}
