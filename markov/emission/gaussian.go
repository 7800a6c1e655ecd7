package emission

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// Gaussian emits real values from one normal distribution per state.
type Gaussian struct {
	dists []distuv.Normal
}

var _ Emission[float64] = (*Gaussian)(nil)

// NewGaussian creates a Gaussian emission model; dists[i] belongs to state i.
func NewGaussian(dists []distuv.Normal) (*Gaussian, error) {
	if dists == nil {
		return nil, errors.NewMissingArgumentError("emissions")
	}
	if len(dists) == 0 {
		return nil, errors.NewValidationError("states", "must be positive", 0)
	}
	out := make([]distuv.Normal, len(dists))
	for i, d := range dists {
		if math.IsNaN(d.Mu) || math.IsInf(d.Mu, 0) {
			return nil, errors.NewValidationError("mu", "must be finite", d.Mu)
		}
		if !(d.Sigma > 0) || math.IsInf(d.Sigma, 0) {
			return nil, errors.NewValidationError("sigma", "must be positive and finite", d.Sigma)
		}
		out[i] = distuv.Normal{Mu: d.Mu, Sigma: d.Sigma}
	}
	return &Gaussian{dists: out}, nil
}

// States implements Emission.
func (g *Gaussian) States() int { return len(g.dists) }

// Name implements Emission.
func (g *Gaussian) Name() string { return "gaussian" }

// LogProb implements Emission.
func (g *Gaussian) LogProb(state int, x float64) float64 {
	return g.dists[state].LogProb(x)
}

// Sample implements Emission.
func (g *Gaussian) Sample(state int, src rand.Source) float64 {
	d := g.dists[state]
	d.Src = src
	return d.Rand()
}

// Validate implements Emission.
func (g *Gaussian) Validate(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return errors.NewValidationError("observation", "must be finite", x)
	}
	return nil
}

// Distribution returns the normal distribution of state.
func (g *Gaussian) Distribution(state int) distuv.Normal {
	return g.dists[state]
}
