package cli

import (
	"github.com/degenpro/depr-deploy/internal/cli/render"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	var chainID uint64

	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"list", "ls"},
		Short:   "List recorded deployments",
		Long: `List the contracts and post-deploy calls recorded in .depr/ by earlier runs.

All networks are shown unless --network or --chain is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{ChainID: chainID}
			if cmd.Flags().Changed("network") {
				params.Network = app.Config.NetworkName
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout(), app.Config.Output)
			return renderer.RenderDeploymentList(result)
		},
	}

	cmd.Flags().Uint64Var(&chainID, "chain", 0, "Only show deployments on this chain ID")

	return cmd
}
