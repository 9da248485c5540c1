package render

import (
	"fmt"
	"io"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	format string
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, format string) *NetworksRenderer {
	return &NetworksRenderer{
		out:    out,
		format: format,
	}
}

type networkView struct {
	Name       string `json:"name" yaml:"name"`
	Profile    string `json:"profile" yaml:"profile"`
	Configured bool   `json:"configured" yaml:"configured"`
	RPCURL     string `json:"rpcUrl,omitempty" yaml:"rpcUrl,omitempty"`
	ChainID    uint64 `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	PostDeploy bool   `json:"postDeploy" yaml:"postDeploy"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RenderNetworksList renders the list of networks
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if r.format == FormatJSON || r.format == FormatYAML {
		views := make([]networkView, 0, len(result.Networks))
		for _, network := range result.Networks {
			view := networkView{
				Name:       network.Name,
				Profile:    string(network.Profile),
				Configured: network.Configured,
				RPCURL:     network.RPCURL,
				ChainID:    network.ChainID,
				PostDeploy: network.PostDeploy,
			}
			if network.Error != nil {
				view.Error = network.Error.Error()
			}
			views = append(views, view)
		}
		return writeStructured(r.out, r.format, views)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in depr.toml")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	title := cases.Title(language.English)
	for _, network := range result.Networks {
		profile := "no deployment"
		if network.Profile != domain.ProfileUnknown {
			profile = title.String(string(network.Profile)) + " profile"
			if network.PostDeploy {
				profile += ", mints and opens the pre-sale"
			}
		}
		faint := color.New(color.Faint).Sprintf("(%s)", profile)

		switch {
		case !network.Configured:
			fmt.Fprintf(r.out, "  ⚪ %s - not configured %s\n", network.Name, faint)
		case network.Error != nil:
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v %s\n", network.Name, network.Error, faint)
		default:
			fmt.Fprintf(r.out, "  ✅ %s - Chain ID: %d %s\n", network.Name, network.ChainID, faint)
		}
	}

	return nil
}
