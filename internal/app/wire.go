//go:build wireinject
// +build wireinject

package app

import (
	"github.com/degenpro/depr-deploy/internal/adapters"
	"github.com/degenpro/depr-deploy/internal/config"
	"github.com/degenpro/depr-deploy/internal/logging"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewMigrateContracts,
		usecase.NewListNetworks,
		usecase.NewListDeployments,

		// App
		NewApp,
	)
	return nil, nil
}
