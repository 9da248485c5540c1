package cli

import (
	"github.com/degenpro/depr-deploy/internal/cli/render"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "migrate",
		Aliases: []string{"deploy"},
		Short:   "Deploy the token and pre-sale contracts to a network",
		Long: `Deploy DEPRToken and DEPRPreSale to the selected network.

  development   pre-sale funds go to accounts[0]
  ropsten       pre-sale funds go to the ropsten receiver
  mainnet       signs with accounts[0], then calls initialMint and open
  mainnet-fork  same as mainnet, against a forked node

Each transaction is sent only after the previous one is mined. A failed step
stops the run; contracts deployed before it stay on chain.`,
		Example: `  depr migrate --network development
  depr migrate -n mainnet --dry-run
  depr migrate -n mainnet-fork --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.MigrateContracts.Run(cmd.Context(), usecase.MigrateParams{
				Network: app.Config.NetworkName,
				DryRun:  app.Config.DryRun,
			})
			if err != nil {
				return err
			}

			renderer := render.NewMigrateRenderer(cmd.OutOrStdout(), app.Config.Output)
			return renderer.Render(result)
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show the deployment plan without sending transactions")

	return cmd
}
