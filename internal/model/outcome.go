package model

// Decision is a human-friendly label for a miner's per-round choice.
// Keep these values stable; they are intended for CSV output.
type Decision string

const (
	DecisionHonest  Decision = "HONEST"
	DecisionDeviate Decision = "DEVIATE"
)

func DecisionFromFlag(deviate bool) Decision {
	if deviate {
		return DecisionDeviate
	}
	return DecisionHonest
}

// RoundOutcome is one (round, miner) cell of a run's ledger. Produced once by
// the payoff engine and never mutated afterwards.
type RoundOutcome struct {
	Round      int
	MinerIndex int
	MinerID    int

	ProbHonest float64 // h_i * (1 - rho_honest)
	ProbDev    float64 // h_i * (1 - rho_dev)

	PayoffHonestSat float64
	PayoffDevSat    float64

	Deviate bool

	RhoHonest float64
	RhoDev    float64
}

func (o RoundOutcome) Decision() Decision {
	return DecisionFromFlag(o.Deviate)
}
