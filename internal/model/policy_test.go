package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPolicyConfig() PolicyConfig {
	return PolicyConfig{
		BaseFee0:       1.0,
		Alpha:          0.125,
		TargetUtil:     0.80,
		CapacityMinVB:  1_000_000,
		CapacityMaxVB:  2_000_000,
		CapacityStep:   0.10,
		WithholdSec:    0.5,
		DiscountFactor: 0.99,
		BlockRate:      1.0 / 600.0,
		BaseDelayMs:    742,
		KappaMsPerMB:   26.40,
		GainRatio:      0.001,
		RunLength:      100,
	}
}

func TestDefaultPolicyGroups(t *testing.T) {
	groups := DefaultPolicyGroups()
	require.Len(t, groups, 6)

	// All mechanisms on at the top, bare baseline at the bottom.
	assert.Equal(t, "A_BF_FF_AD", groups[0].Name)
	assert.Equal(t, PolicyFlags{BaseFee: true, FeeFloor: true, AdaptiveCapacity: true}, groups[0].Flags)
	assert.Equal(t, "F_NONE", groups[5].Name)
	assert.Equal(t, PolicyFlags{}, groups[5].Flags)

	names := map[string]bool{}
	for _, g := range groups {
		assert.False(t, names[g.Name])
		names[g.Name] = true
		assert.NotEmpty(t, g.Description)
	}
}

func TestPolicyGroupByName(t *testing.T) {
	g, err := PolicyGroupByName("C_BF_FF")
	require.NoError(t, err)
	assert.Equal(t, PolicyFlags{BaseFee: true, FeeFloor: true}, g.Flags)

	_, err = PolicyGroupByName("nope")
	assert.ErrorContains(t, err, "unknown policy group")
}

func TestPolicyConfigValidate(t *testing.T) {
	require.NoError(t, validPolicyConfig().Validate())

	tests := []struct {
		name    string
		mutate  func(*PolicyConfig)
		wantErr string
	}{
		{"zero run length", func(c *PolicyConfig) { c.RunLength = 0 }, "run_length"},
		{"gamma one", func(c *PolicyConfig) { c.DiscountFactor = 1 }, "gamma"},
		{"gamma zero", func(c *PolicyConfig) { c.DiscountFactor = 0 }, "gamma"},
		{"zero lambda", func(c *PolicyConfig) { c.BlockRate = 0 }, "lambda"},
		{"target util above one", func(c *PolicyConfig) { c.TargetUtil = 1.1 }, "target utilization"},
		{"inverted capacity bounds", func(c *PolicyConfig) { c.CapacityMaxVB = 1 }, "capacity bounds"},
		{"step of one", func(c *PolicyConfig) { c.CapacityStep = 1 }, "capacity_step"},
		{"negative withhold", func(c *PolicyConfig) { c.WithholdSec = -0.1 }, "w_seconds"},
		{"negative kappa", func(c *PolicyConfig) { c.KappaMsPerMB = -1 }, "delay parameters"},
		{"negative gain ratio", func(c *PolicyConfig) { c.GainRatio = -1 }, "fee and gain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validPolicyConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestInitialState(t *testing.T) {
	cfg := validPolicyConfig()
	st := InitialState(cfg)

	assert.Equal(t, cfg.CapacityMinVB, st.CapacityVB)
	assert.Equal(t, cfg.BaseFee0, st.BaseFeeSatPerVB)
	assert.Equal(t, 1.0, st.CapacityMB())
}
