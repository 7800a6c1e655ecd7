// Package topology builds the initial transition matrix and initial-state
// distribution of a hidden Markov model.
//
// A Topology only knows the structure of the state graph (which transitions
// are allowed and how the chain starts). Every matrix it produces is
// row-stochastic; Create returns it either in linear or in log space.
package topology

import (
	"math"
	"math/rand/v2"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// DefaultTolerance is the largest deviation from 1 accepted for a
// probability row before it is rejected.
const DefaultTolerance = 1e-6

// Topology produces the transition matrix A and the initial distribution π
// for a given number of states.
type Topology interface {
	// States returns the number of hidden states.
	States() int

	// Create returns A (states × states) and π (length states).
	// With logarithm set both are returned in log space.
	Create(logarithm bool) (*mat.Dense, []float64, error)

	// Name identifies the topology in logs and model files.
	Name() string
}

// Option configures Ergodic and Forward topologies.
type Option func(*config)

type config struct {
	random bool
	src    rand.Source
}

// WithRandom initialises allowed transitions with random weights drawn from
// src instead of uniform weights.
func WithRandom(src rand.Source) Option {
	return func(c *config) {
		c.random = true
		c.src = src
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.random && c.src == nil {
		c.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return c
}

// finish normalises every row of a and π in linear space and converts them
// to log space when requested.
func finish(a *mat.Dense, pi []float64, logarithm bool) (*mat.Dense, []float64) {
	r, _ := a.Dims()
	for i := 0; i < r; i++ {
		row := a.RawRowView(i)
		if s := floats.Sum(row); s > 0 {
			floats.Scale(1/s, row)
		}
	}
	if s := floats.Sum(pi); s > 0 {
		floats.Scale(1/s, pi)
	}
	if !logarithm {
		return a, pi
	}
	return logmath.Log(a), logmath.LogVec(pi)
}

// ValidateStochastic checks that m (states × cols) holds probability rows,
// in linear space or, with logarithm set, in log space. Every failing row is
// reported.
func ValidateStochastic(name string, m mat.Matrix, logarithm bool, tol float64) error {
	r, c := m.Dims()
	if err := errors.CheckMatrix(name, m, r, c); err != nil {
		return err
	}

	var result *multierror.Error
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, m)
		if err := validateRow(name, i, row, logarithm, tol); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return errors.MarkInvalidArgument(result.ErrorOrNil())
}

// ValidateDistribution checks a single probability vector.
func ValidateDistribution(name string, v []float64, logarithm bool, tol float64) error {
	if err := errors.CheckNumericalStability(name, v, 0); err != nil {
		return err
	}
	return validateRow(name, 0, v, logarithm, tol)
}

func validateRow(name string, i int, row []float64, logarithm bool, tol float64) error {
	var sum float64
	if logarithm {
		sum = math.Exp(logmath.LogSumAll(row))
	} else {
		for _, p := range row {
			if p < 0 {
				return errors.NewValidationError(name, "probabilities must be non-negative", p)
			}
		}
		sum = floats.Sum(row)
	}
	if math.Abs(sum-1) > tol {
		return errors.NewValidationError(name, "row does not sum to 1", map[string]float64{"row": float64(i), "sum": sum})
	}
	if math.Abs(sum-1) > 1e-12 {
		errors.Warn(errors.NewRenormalizationWarning(name, i, sum))
	}
	return nil
}

func checkStates(states int) error {
	if states <= 0 {
		return errors.NewValidationError("states", "must be positive", states)
	}
	return nil
}
