package topology

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Ergodic is a fully connected topology: every state can reach every other
// state in a single step and the chain may start in any state.
type Ergodic struct {
	states int
	cfg    config
}

var _ Topology = (*Ergodic)(nil)

// NewErgodic creates an ergodic topology with uniform transitions and a
// uniform initial distribution.
func NewErgodic(states int, opts ...Option) (*Ergodic, error) {
	if err := checkStates(states); err != nil {
		return nil, err
	}
	return &Ergodic{states: states, cfg: newConfig(opts)}, nil
}

// States implements Topology.
func (e *Ergodic) States() int { return e.states }

// Name implements Topology.
func (e *Ergodic) Name() string { return "ergodic" }

// Create implements Topology.
func (e *Ergodic) Create(logarithm bool) (*mat.Dense, []float64, error) {
	n := e.states
	a := mat.NewDense(n, n, nil)
	var r *rand.Rand
	if e.cfg.random {
		r = rand.New(e.cfg.src)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if r != nil {
				a.Set(i, j, r.Float64())
			} else {
				a.Set(i, j, 1)
			}
		}
	}
	pi := make([]float64, n)
	for i := range pi {
		pi[i] = 1
	}
	a, pi = finish(a, pi, logarithm)
	return a, pi, nil
}
