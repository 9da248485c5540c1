package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/degenpro/depr-deploy/internal/app"
	"github.com/degenpro/depr-deploy/internal/cli/render"
	"github.com/degenpro/depr-deploy/internal/config"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cancel context.CancelFunc

	rootCmd := &cobra.Command{
		Use:   "depr",
		Short: "Deploy the DEPR token and pre-sale contracts",
		Long: `depr deploys the DegenPro Finance (DEPR) token and its pre-sale contract.

On development and ropsten it deploys both contracts. On mainnet and
mainnet-fork it also mints the initial supply to the pre-sale and opens it.
Any other network name deploys nothing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if skipsApp(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			if err := render.ValidateFormat(appInstance.Config.Output); err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cmd.SetContext(ctx)

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cancel != nil {
				cancel()
			}
			if appInstance, err := getApp(cmd); err == nil {
				return appInstance.Close()
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "development", "Network to deploy to (development, ropsten, mainnet, mainnet-fork)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Minute, "Overall timeout for the command")
	rootCmd.PersistentFlags().StringP("output", "o", render.FormatTable, "Output format (table, json, yaml)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	migrateCmd := NewMigrateCmd()
	migrateCmd.GroupID = "main"
	rootCmd.AddCommand(migrateCmd)

	deploymentsCmd := NewDeploymentsCmd()
	deploymentsCmd.GroupID = "main"
	rootCmd.AddCommand(deploymentsCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipsApp reports whether a command runs without a project
func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", "__complete":
		return true
	}
	return false
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
