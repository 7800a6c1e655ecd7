package topology

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// Custom is a topology given directly by a transition matrix and an initial
// distribution.
type Custom struct {
	transitions *mat.Dense // log space
	initial     []float64  // log space
}

var _ Topology = (*Custom)(nil)

// NewCustom validates transitions (states × states) and initial (length
// states), given in linear space or, with logarithm set, in log space.
// Rows within tol of 1 are renormalised.
func NewCustom(transitions mat.Matrix, initial []float64, logarithm bool, tol float64) (*Custom, error) {
	if transitions == nil {
		return nil, errors.NewMissingArgumentError("transitions")
	}
	if initial == nil {
		return nil, errors.NewMissingArgumentError("initial")
	}
	r, c := transitions.Dims()
	if err := checkStates(r); err != nil {
		return nil, err
	}
	if r != c {
		return nil, errors.NewDimensionError("topology.NewCustom", r, c, 1)
	}
	if len(initial) != r {
		return nil, errors.NewDimensionError("topology.NewCustom", r, len(initial), 0)
	}
	if err := ValidateStochastic("transitions", transitions, logarithm, tol); err != nil {
		return nil, err
	}
	if err := ValidateDistribution("initial", initial, logarithm, tol); err != nil {
		return nil, err
	}

	var logA *mat.Dense
	var logPi []float64
	if logarithm {
		logA = mat.DenseCopyOf(transitions)
		logPi = append([]float64(nil), initial...)
	} else {
		logA = logmath.Log(transitions)
		logPi = logmath.LogVec(initial)
	}
	return &Custom{
		transitions: NormalizeRows(logA),
		initial:     logmath.Normalize(logPi),
	}, nil
}

// States implements Topology.
func (c *Custom) States() int { return len(c.initial) }

// Name implements Topology.
func (c *Custom) Name() string { return "custom" }

// Create implements Topology.
func (c *Custom) Create(logarithm bool) (*mat.Dense, []float64, error) {
	a := mat.DenseCopyOf(c.transitions)
	pi := append([]float64(nil), c.initial...)
	if logarithm {
		return a, pi, nil
	}
	return logmath.Exp(a), logmath.ExpVec(pi), nil
}

// NormalizeRows returns m (log space) with every row shifted so that it
// sums to one after exponentiation.
func NormalizeRows(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		out.SetRow(i, logmath.Normalize(m.RawRowView(i)))
	}
	return out
}
