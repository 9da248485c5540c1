package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/models"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/fatih/color"
)

var (
	labelStyle   = color.New(color.Faint)
	contractName = color.New(color.FgGreen, color.Bold)
	callStyle    = color.New(color.FgBlue, color.Bold)
)

// MigrateRenderer renders the outcome of a deployment run
type MigrateRenderer struct {
	out    io.Writer
	format string
}

// NewMigrateRenderer creates a new migrate renderer
func NewMigrateRenderer(out io.Writer, format string) *MigrateRenderer {
	return &MigrateRenderer{out: out, format: format}
}

type migrateView struct {
	Network       string         `json:"network" yaml:"network"`
	Profile       string         `json:"profile" yaml:"profile"`
	ChainID       uint64         `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Deployer      string         `json:"deployer,omitempty" yaml:"deployer,omitempty"`
	Balance       string         `json:"balance,omitempty" yaml:"balance,omitempty"`
	Skipped       bool           `json:"skipped" yaml:"skipped"`
	Suggestion    string         `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	DryRun        bool           `json:"dryRun" yaml:"dryRun"`
	FundsReceiver string         `json:"fundsReceiver,omitempty" yaml:"fundsReceiver,omitempty"`
	Signer        string         `json:"signer,omitempty" yaml:"signer,omitempty"`
	Steps         []stepView     `json:"steps,omitempty" yaml:"steps,omitempty"`
	Contracts     []contractView `json:"contracts,omitempty" yaml:"contracts,omitempty"`
	Calls         []callView     `json:"calls,omitempty" yaml:"calls,omitempty"`
}

type stepView struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Contract string   `json:"contract" yaml:"contract"`
	Method   string   `json:"method,omitempty" yaml:"method,omitempty"`
	Args     []string `json:"args,omitempty" yaml:"args,omitempty"`
}

type contractView struct {
	Name        string `json:"name" yaml:"name"`
	Address     string `json:"address" yaml:"address"`
	TxHash      string `json:"transactionHash" yaml:"transactionHash"`
	BlockNumber uint64 `json:"blockNumber" yaml:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed" yaml:"gasUsed"`
}

type callView struct {
	Contract    string   `json:"contract" yaml:"contract"`
	Method      string   `json:"method" yaml:"method"`
	Args        []string `json:"args,omitempty" yaml:"args,omitempty"`
	TxHash      string   `json:"transactionHash" yaml:"transactionHash"`
	BlockNumber uint64   `json:"blockNumber" yaml:"blockNumber"`
}

// Render renders the migrate result
func (r *MigrateRenderer) Render(result *usecase.MigrateResult) error {
	if r.format == FormatJSON || r.format == FormatYAML {
		return writeStructured(r.out, r.format, newMigrateView(result))
	}

	if result.Skipped {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("No deployment is defined for network %q, nothing to do", result.Network)))
		if result.Suggestion != "" && result.Suggestion != result.Network {
			fmt.Fprintf(r.out, "   Did you mean %s?\n", color.New(color.Bold).Sprint(result.Suggestion))
		}
		return nil
	}

	if result.DryRun {
		r.renderPlan(result.Plan)
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed to %s (chain %d)", result.Network, result.ChainID)))
	if result.Deployer != nil && result.Balance != nil {
		fmt.Fprintf(r.out, "  %s %s (%s ETH before deployment)\n", labelStyle.Sprint("deployer"), result.Deployer.Hex(), result.Balance.StringFixed(4))
	}
	fmt.Fprintln(r.out)
	for _, deployed := range []*models.DeployedContract{result.Token, result.PreSale} {
		if deployed == nil {
			continue
		}
		fmt.Fprintf(r.out, "  %s %s\n", contractName.Sprintf("%-12s", deployed.Name), deployed.Address.Hex())
		fmt.Fprintf(r.out, "  %s %s %s\n", strings.Repeat(" ", 12), labelStyle.Sprint("tx"), deployed.TxHash.Hex())
	}
	for _, call := range result.Calls {
		fmt.Fprintf(r.out, "  %s %s\n", callStyle.Sprintf("%s.%s(%s)", call.Contract, call.Method, strings.Join(call.Args, ", ")), labelStyle.Sprintf("block %d", call.BlockNumber))
	}

	return nil
}

func (r *MigrateRenderer) renderPlan(plan *domain.DeploymentPlan) {
	if plan == nil {
		return
	}

	fmt.Fprintf(r.out, "Deployment plan for %s\n\n", color.New(color.Bold).Sprint(plan.Network))
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("signer:        "), plan.SignerLabel())
	fmt.Fprintf(r.out, "  %s %s\n\n", labelStyle.Sprint("funds receiver:"), plan.FundsReceiver.Hex())

	for i, step := range plan.Steps() {
		switch step.Kind {
		case domain.StepDeploy:
			fmt.Fprintf(r.out, "  %d. deploy %s(%s)\n", i+1, contractName.Sprint(step.Contract), strings.Join(step.Args, ", "))
		case domain.StepInvoke:
			fmt.Fprintf(r.out, "  %d. call   %s(%s)\n", i+1, callStyle.Sprintf("%s.%s", step.Contract, step.Method), strings.Join(step.Args, ", "))
		}
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, labelStyle.Sprint("Dry run: no transactions were sent."))
}

func newMigrateView(result *usecase.MigrateResult) migrateView {
	view := migrateView{
		Network:    result.Network,
		Profile:    string(result.Profile),
		ChainID:    result.ChainID,
		Skipped:    result.Skipped,
		Suggestion: result.Suggestion,
		DryRun:     result.DryRun,
	}
	if result.Deployer != nil {
		view.Deployer = result.Deployer.Hex()
	}
	if result.Balance != nil {
		view.Balance = result.Balance.String()
	}

	if plan := result.Plan; plan != nil {
		view.FundsReceiver = plan.FundsReceiver.Hex()
		view.Signer = plan.SignerLabel()
		for _, step := range plan.Steps() {
			view.Steps = append(view.Steps, stepView{
				Kind:     string(step.Kind),
				Contract: step.Contract,
				Method:   step.Method,
				Args:     step.Args,
			})
		}
	}

	for _, deployed := range []*models.DeployedContract{result.Token, result.PreSale} {
		if deployed == nil {
			continue
		}
		view.Contracts = append(view.Contracts, contractView{
			Name:        deployed.Name,
			Address:     deployed.Address.Hex(),
			TxHash:      deployed.TxHash.Hex(),
			BlockNumber: deployed.BlockNumber,
			GasUsed:     deployed.GasUsed,
		})
	}

	for _, call := range result.Calls {
		view.Calls = append(view.Calls, callView{
			Contract:    call.Contract,
			Method:      call.Method,
			Args:        call.Args,
			TxHash:      call.Hash,
			BlockNumber: call.BlockNumber,
		})
	}

	return view
}
