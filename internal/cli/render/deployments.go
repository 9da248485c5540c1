package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/degenpro/depr-deploy/internal/domain/models"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	chainHeader    = color.New(color.BgCyan, color.FgBlack, color.Bold)
	addressStyle   = color.New(color.FgWhite)
	timestampStyle = color.New(color.Faint)
)

// DeploymentsRenderer renders the deployment registry
type DeploymentsRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, format string) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:    out,
		format: format,
	}
}

type registryView struct {
	Deployments  []*models.Deployment  `json:"deployments" yaml:"deployments"`
	Transactions []*models.Transaction `json:"transactions" yaml:"transactions"`
}

// RenderDeploymentList renders deployments grouped by chain, followed by the post-deploy calls
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if r.format == FormatJSON || r.format == FormatYAML {
		return writeStructured(r.out, r.format, registryView{
			Deployments:  result.Deployments,
			Transactions: result.Transactions,
		})
	}

	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byChain := make(map[uint64][]*models.Deployment)
	for _, dep := range result.Deployments {
		byChain[dep.ChainID] = append(byChain[dep.ChainID], dep)
	}
	chainIDs := make([]uint64, 0, len(byChain))
	for chainID := range byChain {
		chainIDs = append(chainIDs, chainID)
	}
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

	for _, chainID := range chainIDs {
		deployments := byChain[chainID]
		fmt.Fprintln(r.out, chainHeader.Sprintf(" %s · chain %d ", deployments[0].Network, chainID))

		rows := make([]table.Row, 0, len(deployments))
		for _, dep := range deployments {
			rows = append(rows, table.Row{
				contractName.Sprint(dep.ContractName),
				addressStyle.Sprint(dep.Address),
				fmt.Sprintf("block %d", dep.BlockNumber),
				timestampStyle.Sprint(dep.CreatedAt.Format("2006-01-02 15:04:05")),
			})
		}
		fmt.Fprintln(r.out, renderTable(rows))
		fmt.Fprintln(r.out)
	}

	if len(result.Transactions) > 0 {
		fmt.Fprintln(r.out, color.New(color.Bold, color.FgHiWhite).Sprint("Post-deploy calls"))
		rows := make([]table.Row, 0, len(result.Transactions))
		for _, tx := range result.Transactions {
			rows = append(rows, table.Row{
				callStyle.Sprintf("%s.%s(%s)", tx.Contract, tx.Method, strings.Join(shortArgs(tx.Args), ", ")),
				tx.Network,
				shortHash(tx.Hash),
				fmt.Sprintf("block %d", tx.BlockNumber),
			})
		}
		fmt.Fprintln(r.out, renderTable(rows))
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "Total deployments: %d\n", result.Summary.Total)
	return nil
}

func shortArgs(args []string) []string {
	short := make([]string, len(args))
	for i, arg := range args {
		if strings.HasPrefix(arg, "0x") {
			short[i] = shortHash(arg)
		} else {
			short[i] = arg
		}
	}
	return short
}

// renderTable renders borderless left-aligned rows
func renderTable(rows []table.Row) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: "   ",
	}

	if len(rows) > 0 {
		configs := make([]table.ColumnConfig, len(rows[0]))
		for i := range configs {
			configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft}
		}
		t.SetColumnConfigs(configs)
	}

	t.AppendRows(rows)
	return t.Render()
}
