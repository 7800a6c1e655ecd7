package topology

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// Forward is a left-to-right topology. State i may move to states
// i, i+1, ..., i+deepness-1; the chain always starts in state 0.
type Forward struct {
	states   int
	deepness int
	cfg      config
}

var _ Topology = (*Forward)(nil)

// NewForward creates a left-to-right topology. A deepness of 0 allows every
// forward transition.
func NewForward(states, deepness int, opts ...Option) (*Forward, error) {
	if err := checkStates(states); err != nil {
		return nil, err
	}
	if deepness < 0 {
		return nil, errors.NewValidationError("deepness", "must be non-negative", deepness)
	}
	if deepness == 0 || deepness > states {
		deepness = states
	}
	return &Forward{states: states, deepness: deepness, cfg: newConfig(opts)}, nil
}

// States implements Topology.
func (f *Forward) States() int { return f.states }

// Deepness returns the width of the transition band.
func (f *Forward) Deepness() int { return f.deepness }

// Name implements Topology.
func (f *Forward) Name() string { return "forward" }

// Create implements Topology.
func (f *Forward) Create(logarithm bool) (*mat.Dense, []float64, error) {
	n := f.states
	a := mat.NewDense(n, n, nil)
	var r *rand.Rand
	if f.cfg.random {
		r = rand.New(f.cfg.src)
	}
	for i := 0; i < n; i++ {
		for j := i; j < i+f.deepness && j < n; j++ {
			if r != nil {
				// keep every allowed transition strictly positive
				a.Set(i, j, r.Float64()+1e-3)
			} else {
				a.Set(i, j, 1)
			}
		}
	}
	pi := make([]float64, n)
	pi[0] = 1
	a, pi = finish(a, pi, logarithm)
	return a, pi, nil
}
