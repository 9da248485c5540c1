package cli

import (
	"github.com/degenpro/depr-deploy/internal/cli/render"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var skipProbe bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List known and configured networks",
		Long: `List the networks depr knows how to deploy to and those configured in
the [networks] section of depr.toml.

Configured networks are probed for their chain ID unless --skip-probe is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{
				SkipProbe: skipProbe,
			})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), app.Config.Output)
			return renderer.RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&skipProbe, "skip-probe", false, "Do not contact rpc endpoints")

	return cmd
}
