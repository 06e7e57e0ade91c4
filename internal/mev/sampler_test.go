package mev

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNormalDeterministicBySeed(t *testing.T) {
	a := NewLogNormal(15.0, 1.2, 7)
	b := NewLogNormal(15.0, 1.2, 7)
	c := NewLogNormal(15.0, 1.2, 8)

	same := true
	for i := 0; i < 100; i++ {
		va, vb := a.Draw(), b.Draw()
		assert.Equal(t, va, vb)
		assert.Greater(t, va, 0.0)
		if va != c.Draw() {
			same = false
		}
	}
	assert.False(t, same, "different seeds should diverge")
}

func TestFitLogNormal(t *testing.T) {
	// exp(mu) samples around e^14 with known log-domain moments.
	samples := []float64{
		math.Exp(13.5), math.Exp(14.0), math.Exp(14.5),
	}

	mu, sigma, err := FitLogNormal(samples)
	require.NoError(t, err)
	assert.InDelta(t, 14.0, mu, 1e-12)
	assert.InDelta(t, 0.5, sigma, 1e-12)
}

func TestFitLogNormalSkipsNonPositive(t *testing.T) {
	samples := []float64{0, -100, math.NaN(), math.Inf(1), math.E, math.E * math.E}

	mu, _, err := FitLogNormal(samples)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, mu, 1e-12)
}

func TestFitLogNormalNeedsTwoSamples(t *testing.T) {
	_, _, err := FitLogNormal([]float64{100})
	assert.Error(t, err)

	_, _, err = FitLogNormal(nil)
	assert.Error(t, err)
}

func TestEmpirical(t *testing.T) {
	samples := []float64{100, 200, 300}

	a, err := NewEmpirical(samples, 3)
	require.NoError(t, err)
	b, err := NewEmpirical(samples, 3)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		v := a.Draw()
		assert.Equal(t, v, b.Draw())
		assert.Contains(t, samples, v)
	}
}

func TestEmpiricalCopiesInput(t *testing.T) {
	samples := []float64{100, 200}
	s, err := NewEmpirical(samples, 1)
	require.NoError(t, err)

	samples[0] = -1
	for i := 0; i < 20; i++ {
		assert.Greater(t, s.Draw(), 0.0)
	}
}

func TestEmpiricalRejectsEmpty(t *testing.T) {
	_, err := NewEmpirical(nil, 1)
	assert.Error(t, err)
}
