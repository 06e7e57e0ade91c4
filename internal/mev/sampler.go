// Package mev supplies the per-round miner-extractable-value draws. The
// simulation treats the sampler as an opaque injected dependency; it has no
// opinion on how the distribution was built.
package mev

import (
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler yields one MEV amount (satoshi) per call. Implementations must be
// deterministic for a fixed seed so runs stay reproducible.
type Sampler interface {
	Draw() float64
}

// LogNormal draws from a lognormal distribution, the usual heavy-tailed shape
// of observed MEV amounts.
type LogNormal struct {
	dist distuv.LogNormal
}

func NewLogNormal(mu, sigma float64, seed uint64) *LogNormal {
	return &LogNormal{dist: distuv.LogNormal{
		Mu:    mu,
		Sigma: sigma,
		Src:   rand.NewSource(seed),
	}}
}

func (s *LogNormal) Draw() float64 {
	return s.dist.Rand()
}

// FitLogNormal estimates (mu, sigma) from empirical amounts by taking mean
// and standard deviation in the log domain. Non-positive samples are skipped;
// at least two positive samples are required.
func FitLogNormal(samples []float64) (mu, sigma float64, err error) {
	logs := make([]float64, 0, len(samples))
	for _, v := range samples {
		if v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			logs = append(logs, math.Log(v))
		}
	}
	if len(logs) < 2 {
		return 0, 0, errors.New("need at least two positive samples to fit")
	}
	mu = stat.Mean(logs, nil)
	sigma = stat.StdDev(logs, nil)
	return mu, sigma, nil
}

// Empirical resamples observed amounts uniformly with replacement.
type Empirical struct {
	samples []float64
	rng     *rand.Rand
}

func NewEmpirical(samples []float64, seed uint64) (*Empirical, error) {
	if len(samples) == 0 {
		return nil, errors.New("empirical sampler needs at least one sample")
	}
	cp := make([]float64, len(samples))
	copy(cp, samples)
	return &Empirical{
		samples: cp,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *Empirical) Draw() float64 {
	return s.samples[s.rng.Intn(len(s.samples))]
}
