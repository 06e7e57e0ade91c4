package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostPerBlockUSD(t *testing.T) {
	// 120 TWh/yr at $0.05/kWh over 144 blocks:
	// 120/365.25 * 1e9 * 0.05 / 144 ~= $114,077 per block.
	got, err := CostPerBlockUSD(120, 0.05, 144)
	require.NoError(t, err)
	assert.InDelta(t, 114_077, got, 1)

	_, err = CostPerBlockUSD(120, 0.05, 0)
	assert.ErrorContains(t, err, "blocks per day")

	_, err = CostPerBlockUSD(-1, 0.05, 144)
	assert.Error(t, err)
}

func TestCostCrossCheck(t *testing.T) {
	proxy := CrossCheckCostPerBlockUSD(40_000, 3.125, 1.0)
	assert.Equal(t, 125_000.0, proxy)

	canonical, err := CostPerBlockUSD(120, 0.05, 144)
	require.NoError(t, err)

	ratio, err := CostCrossCheckRatio(canonical, proxy)
	require.NoError(t, err)
	// The two estimates land within the same order of magnitude.
	assert.Greater(t, ratio, 0.5)
	assert.Less(t, ratio, 2.0)

	_, err = CostCrossCheckRatio(0, proxy)
	assert.Error(t, err)
}
