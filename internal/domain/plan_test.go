package domain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	account0 = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	account1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		network  string
		expected NetworkProfile
	}{
		{"development", ProfileDevelopment},
		{"ropsten", ProfileRopsten},
		{"mainnet", ProfileMainnet},
		{"mainnet-fork", ProfileMainnetFork},
		{"rinkeby", ProfileUnknown},
		{"Mainnet", ProfileUnknown},
		{"", ProfileUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseProfile(tt.network))
		})
	}
}

func TestResolvePlan(t *testing.T) {
	accounts := []common.Address{account0, account1}

	t.Run("development uses accounts[0] as receiver and default signer", func(t *testing.T) {
		plan, err := ResolvePlan("development", accounts)
		require.NoError(t, err)

		assert.Equal(t, "DegenPro Finance", plan.TokenName)
		assert.Equal(t, "DEPR", plan.TokenSymbol)
		assert.Equal(t, account0, plan.FundsReceiver)
		assert.Nil(t, plan.Signer)
		assert.False(t, plan.PostDeploy)
	})

	t.Run("ropsten uses fixed receiver", func(t *testing.T) {
		plan, err := ResolvePlan("ropsten", nil)
		require.NoError(t, err)

		assert.Equal(t, common.HexToAddress("0x062306daAFD2dBA9e80f34B56220f7Df83954313"), plan.FundsReceiver)
		assert.Nil(t, plan.Signer)
		assert.False(t, plan.PostDeploy)
	})

	for _, network := range []string{"mainnet", "mainnet-fork"} {
		t.Run(network+" signs with accounts[0] and runs post deploy", func(t *testing.T) {
			plan, err := ResolvePlan(network, accounts)
			require.NoError(t, err)

			assert.Equal(t, common.HexToAddress("0x903AE1B519395049d7f56779C66FF74047577c1f"), plan.FundsReceiver)
			require.NotNil(t, plan.Signer)
			assert.Equal(t, account0, *plan.Signer)
			assert.True(t, plan.PostDeploy)
		})
	}

	t.Run("accounts required where accounts[0] is used", func(t *testing.T) {
		_, err := ResolvePlan("development", nil)
		assert.ErrorIs(t, err, ErrNoAccounts)

		_, err = ResolvePlan("mainnet", []common.Address{})
		assert.ErrorIs(t, err, ErrNoAccounts)
	})

	t.Run("unknown network has no plan", func(t *testing.T) {
		_, err := ResolvePlan("rinkeby", accounts)
		assert.ErrorIs(t, err, ErrUnknownNetwork)
	})
}

func TestDeploymentPlanSteps(t *testing.T) {
	dev, err := ResolvePlan("development", []common.Address{account0})
	require.NoError(t, err)

	steps := dev.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, PlanStep{Kind: StepDeploy, Contract: "DEPRToken", Args: []string{"DegenPro Finance", "DEPR"}}, steps[0])
	assert.Equal(t, "DEPRPreSale", steps[1].Contract)
	assert.Equal(t, account0.Hex(), steps[1].Args[1])
	assert.Equal(t, "default sender", dev.SignerLabel())

	prod, err := ResolvePlan("mainnet", []common.Address{account1})
	require.NoError(t, err)

	steps = prod.Steps()
	require.Len(t, steps, 4)
	assert.Equal(t, StepInvoke, steps[2].Kind)
	assert.Equal(t, "DEPRToken", steps[2].Contract)
	assert.Equal(t, "initialMint", steps[2].Method)
	assert.Equal(t, "DEPRPreSale", steps[3].Contract)
	assert.Equal(t, "open", steps[3].Method)
	assert.Equal(t, account1.Hex(), prod.SignerLabel())
}

func TestNetworkProfileProperties(t *testing.T) {
	assert.True(t, ProfileMainnet.IsProduction())
	assert.True(t, ProfileMainnetFork.IsProduction())
	assert.False(t, ProfileRopsten.IsProduction())
	assert.False(t, ProfileUnknown.IsKnown())

	assert.Equal(t, uint64(1), ProfileMainnet.ExpectedChainID())
	assert.Equal(t, uint64(3), ProfileRopsten.ExpectedChainID())
	assert.Equal(t, uint64(0), ProfileMainnetFork.ExpectedChainID())
	assert.Equal(t, uint64(0), ProfileDevelopment.ExpectedChainID())
}
