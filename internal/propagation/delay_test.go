package propagation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baselineModel() Model {
	return Model{
		BaseDelayMs:  742,
		KappaMsPerMB: 26.40,
		BlockRate:    1.0 / 600.0,
	}
}

func TestDelays(t *testing.T) {
	m := baselineModel()

	hon, dev := m.Delays(1.0, 0.5)
	assert.InDelta(t, 0.76840, hon, 1e-9)
	assert.InDelta(t, 1.26840, dev, 1e-9)

	// Withholding never helps: zero withhold collapses both delays.
	hon, dev = m.Delays(1.0, 0)
	assert.Equal(t, hon, dev)
}

func TestOrphanRate(t *testing.T) {
	m := baselineModel()

	assert.InDelta(t, 0.0012798, m.OrphanRate(0.76840), 1e-6)
	assert.InDelta(t, 0.0021118, m.OrphanRate(1.26840), 1e-6)

	assert.Equal(t, 0.0, m.OrphanRate(0))
	assert.Equal(t, 0.0, m.OrphanRate(-1))

	// Huge delays saturate below 1 so the deviation ratio stays finite.
	rho := m.OrphanRate(1e12)
	assert.Less(t, rho, 1.0)
	assert.GreaterOrEqual(t, rho, 0.0)
}

func TestEvaluateOrdering(t *testing.T) {
	m := baselineModel()

	tests := []struct {
		name        string
		capacityMB  float64
		withholdSec float64
	}{
		{"one megabyte half second", 1.0, 0.5},
		{"two megabytes one second", 2.0, 1.0},
		{"no withholding", 1.5, 0},
		{"large withholding", 1.0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Evaluate(tt.capacityMB, tt.withholdSec)

			assert.GreaterOrEqual(t, res.RhoDev, res.RhoHonest)
			if tt.withholdSec == 0 {
				assert.Equal(t, res.RhoHonest, res.RhoDev)
			} else {
				assert.Greater(t, res.RhoDev, res.RhoHonest)
			}
			assert.GreaterOrEqual(t, res.RhoHonest, 0.0)
			assert.Less(t, res.RhoDev, 1.0)
		})
	}
}

func TestOrphanRateMonotoneInSizeAndWithhold(t *testing.T) {
	m := baselineModel()

	// Bigger blocks propagate slower.
	prev := m.Evaluate(0.5, 0.5)
	for _, capMB := range []float64{1.0, 1.5, 2.0, 4.0} {
		cur := m.Evaluate(capMB, 0.5)
		assert.Greater(t, cur.RhoHonest, prev.RhoHonest)
		assert.Greater(t, cur.RhoDev, prev.RhoDev)
		prev = cur
	}

	// Longer withholding raises only the deviating orphan rate.
	prev = m.Evaluate(1.0, 0)
	for _, w := range []float64{0.25, 0.5, 1.0, 5.0} {
		cur := m.Evaluate(1.0, w)
		assert.Equal(t, prev.RhoHonest, cur.RhoHonest)
		assert.Greater(t, cur.RhoDev, prev.RhoDev)
		prev = cur
	}
}
