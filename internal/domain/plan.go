package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// StepKind distinguishes contract creations from calls on deployed contracts
type StepKind string

const (
	StepDeploy StepKind = "deploy"
	StepInvoke StepKind = "invoke"
)

// PlanStep is one transaction of a deployment run. Steps run strictly in
// order, each one only after the previous one confirmed.
type PlanStep struct {
	Kind     StepKind
	Contract string
	Method   string // empty for deployments
	Args     []string
}

// DeploymentPlan is the resolved configuration of a single run
type DeploymentPlan struct {
	Network       string
	Profile       NetworkProfile
	TokenName     string
	TokenSymbol   string
	FundsReceiver common.Address

	// Signer is nil when the default sender of the network signs
	Signer *common.Address

	// PostDeploy is true when initialMint and open follow the deployments
	PostDeploy bool
}

// ResolvePlan computes the plan for a known network profile. Callers must
// handle ProfileUnknown before calling, it has no plan.
func ResolvePlan(network string, accounts []common.Address) (*DeploymentPlan, error) {
	profile := ParseProfile(network)

	plan := &DeploymentPlan{
		Network:     network,
		Profile:     profile,
		TokenName:   TokenName,
		TokenSymbol: TokenSymbol,
	}

	switch profile {
	case ProfileDevelopment:
		if len(accounts) == 0 {
			return nil, fmt.Errorf("%w: development funds receiver is accounts[0]", ErrNoAccounts)
		}
		plan.FundsReceiver = accounts[0]
	case ProfileRopsten:
		plan.FundsReceiver = RopstenFundsReceiver
	case ProfileMainnet, ProfileMainnetFork:
		if len(accounts) == 0 {
			return nil, fmt.Errorf("%w: %s signer is accounts[0]", ErrNoAccounts, network)
		}
		signer := accounts[0]
		plan.FundsReceiver = MainnetFundsReceiver
		plan.Signer = &signer
		plan.PostDeploy = true
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}

	return plan, nil
}

// Steps lists the transactions the plan will send, in order. Addresses that
// only exist after an earlier step confirms are shown symbolically.
func (p *DeploymentPlan) Steps() []PlanStep {
	steps := []PlanStep{
		{
			Kind:     StepDeploy,
			Contract: TokenArtifact,
			Args:     []string{p.TokenName, p.TokenSymbol},
		},
		{
			Kind:     StepDeploy,
			Contract: PreSaleArtifact,
			Args:     []string{TokenArtifact + ".address", p.FundsReceiver.Hex()},
		},
	}

	if p.PostDeploy {
		steps = append(steps,
			PlanStep{
				Kind:     StepInvoke,
				Contract: TokenArtifact,
				Method:   InitialMintMethod,
				Args:     []string{PreSaleArtifact + ".address"},
			},
			PlanStep{
				Kind:     StepInvoke,
				Contract: PreSaleArtifact,
				Method:   OpenMethod,
			},
		)
	}

	return steps
}

// SignerLabel describes who signs the plan's transactions
func (p *DeploymentPlan) SignerLabel() string {
	if p.Signer == nil {
		return "default sender"
	}
	return p.Signer.Hex()
}
