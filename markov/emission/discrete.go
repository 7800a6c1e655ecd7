package emission

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/gohmm/markov/topology"
	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// Discrete is a states × symbols table of log emission probabilities.
// It is immutable after construction.
type Discrete struct {
	logB *mat.Dense
}

var _ Emission[int] = (*Discrete)(nil)

// NewDiscrete builds a table from m, given in linear space or, with
// logarithm set, in log space. Each row must sum to one within tol.
func NewDiscrete(m mat.Matrix, logarithm bool, tol float64) (*Discrete, error) {
	if m == nil {
		return nil, errors.NewMissingArgumentError("emissions")
	}
	r, c := m.Dims()
	if r <= 0 {
		return nil, errors.NewValidationError("states", "must be positive", r)
	}
	if c <= 0 {
		return nil, errors.NewValidationError("symbols", "must be positive", c)
	}
	if err := topology.ValidateStochastic("emissions", m, logarithm, tol); err != nil {
		return nil, err
	}

	var logB *mat.Dense
	if logarithm {
		logB = mat.DenseCopyOf(m)
	} else {
		logB = logmath.Log(m)
	}
	return &Discrete{logB: topology.NormalizeRows(logB)}, nil
}

// NewUniformDiscrete gives every state the uniform distribution over
// symbols: each entry is log(1/symbols).
func NewUniformDiscrete(states, symbols int) (*Discrete, error) {
	if states <= 0 {
		return nil, errors.NewValidationError("states", "must be positive", states)
	}
	if symbols <= 0 {
		return nil, errors.NewValidationError("symbols", "must be positive", symbols)
	}
	logB := mat.NewDense(states, symbols, nil)
	v := -math.Log(float64(symbols))
	for i := 0; i < states; i++ {
		for k := 0; k < symbols; k++ {
			logB.Set(i, k, v)
		}
	}
	return &Discrete{logB: logB}, nil
}

// States implements Emission.
func (d *Discrete) States() int {
	r, _ := d.logB.Dims()
	return r
}

// Symbols returns the size of the output alphabet.
func (d *Discrete) Symbols() int {
	_, c := d.logB.Dims()
	return c
}

// Name implements Emission.
func (d *Discrete) Name() string { return "discrete" }

// LogProb implements Emission.
func (d *Discrete) LogProb(state, symbol int) float64 {
	return d.logB.At(state, symbol)
}

// Sample implements Emission by drawing from the exponentiated row of state.
func (d *Discrete) Sample(state int, src rand.Source) int {
	cat := distuv.NewCategorical(logmath.ExpVec(d.logB.RawRowView(state)), src)
	return int(cat.Rand())
}

// Validate implements Emission.
func (d *Discrete) Validate(symbol int) error {
	if symbol < 0 || symbol >= d.Symbols() {
		return errors.NewValidationError("observation", "symbol out of range", symbol)
	}
	return nil
}

// LogProbs returns a copy of the log emission matrix.
func (d *Discrete) LogProbs() *mat.Dense {
	return mat.DenseCopyOf(d.logB)
}

// Row returns a copy of the log emission row of state.
func (d *Discrete) Row(state int) []float64 {
	return append([]float64(nil), d.logB.RawRowView(state)...)
}
