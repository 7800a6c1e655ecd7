// Package emission defines the observation models of a hidden Markov model.
//
// An Emission answers two questions for a hidden state: how likely is an
// observation (LogProb) and what does the state emit (Sample). The discrete
// variant is a lookup table over a finite alphabet; Gaussian emits real
// values.
package emission

import (
	"math/rand/v2"
)

// Emission is the capability a model needs from its observation model.
// Implementations must be safe for concurrent use once constructed.
type Emission[O any] interface {
	// States returns the number of hidden states covered.
	States() int

	// LogProb returns log P(obs | state).
	LogProb(state int, obs O) float64

	// Sample draws an observation from state using src.
	Sample(state int, src rand.Source) O

	// Validate reports whether obs belongs to the observation space.
	Validate(obs O) error

	// Name identifies the emission family in logs.
	Name() string
}
