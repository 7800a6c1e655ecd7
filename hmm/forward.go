package hmm

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// forward は対数空間の前向き格子 (T × states) と全体の対数尤度を計算します。
// len(obs) > 0 を前提とします。
func forward[O any](p *Parameters[O], obs []O) (*mat.Dense, float64) {
	states := len(p.Initial)
	lattice := mat.NewDense(len(obs), states, nil)

	row := lattice.RawRowView(0)
	for i := 0; i < states; i++ {
		row[i] = p.Initial[i] + p.Emission.LogProb(i, obs[0])
	}

	scratch := make([]float64, states)
	for t := 1; t < len(obs); t++ {
		prev := lattice.RawRowView(t - 1)
		cur := lattice.RawRowView(t)
		for j := 0; j < states; j++ {
			for i := 0; i < states; i++ {
				scratch[i] = prev[i] + p.Transitions.At(i, j)
			}
			cur[j] = logmath.LogSumAll(scratch) + p.Emission.LogProb(j, obs[t])
		}
	}
	return lattice, logmath.LogSumAll(lattice.RawRowView(len(obs) - 1))
}

// backward は後ろ向き格子 (T × states) を計算します。最終行は log 1 = 0 です。
func backward[O any](p *Parameters[O], obs []O) *mat.Dense {
	states := len(p.Initial)
	T := len(obs)
	lattice := mat.NewDense(T, states, nil)

	scratch := make([]float64, states)
	for t := T - 2; t >= 0; t-- {
		next := lattice.RawRowView(t + 1)
		cur := lattice.RawRowView(t)
		for i := 0; i < states; i++ {
			for j := 0; j < states; j++ {
				scratch[j] = p.Transitions.At(i, j) + p.Emission.LogProb(j, obs[t+1]) + next[j]
			}
			cur[i] = logmath.LogSumAll(scratch)
		}
	}
	return lattice
}

// Forward returns the forward lattice (T × states, log space) and the total
// log-likelihood of obs. For an empty sequence the lattice is nil and the
// log-likelihood is -Inf.
func (m *Model[O]) Forward(obs []O) (*mat.Dense, float64, error) {
	p := m.params.Load()
	if err := m.validate(p, obs); err != nil {
		return nil, 0, err
	}
	if len(obs) == 0 {
		return nil, logmath.Zero, nil
	}
	lattice, logLik := forward(p, obs)
	return lattice, logLik, nil
}

// Backward returns the backward lattice (T × states, log space).
func (m *Model[O]) Backward(obs []O) (*mat.Dense, error) {
	p := m.params.Load()
	if err := m.validate(p, obs); err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, nil
	}
	return backward(p, obs), nil
}

// Posterior は前向き・後ろ向きアルゴリズムによる各時刻の状態事後確率です。
type Posterior struct {
	// Marginals は log P(state_t = i | obs) を保持する T × states 行列です。
	Marginals *mat.Dense

	// Path は各時刻で事後確率が最大の状態です（同値は小さい添字を優先）。
	Path []int

	LogLikelihood float64
}

// Posterior computes per-time state marginals. An observation sequence with
// zero probability yields an error matching errors.ErrImpossibleSequence.
func (m *Model[O]) Posterior(obs []O) (*Posterior, error) {
	start := time.Now()
	p := m.params.Load()
	if err := m.validate(p, obs); err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return &Posterior{Path: []int{}, LogLikelihood: logmath.Zero}, nil
	}

	fwd, logLik := forward(p, obs)
	if isZero(logLik) {
		m.impossible(log.OperationPosterior, len(obs))
		return nil, errors.Wrap(errors.ErrImpossibleSequence, "posterior")
	}
	bwd := backward(p, obs)

	T, states := fwd.Dims()
	gamma := mat.NewDense(T, states, nil)
	path := make([]int, T)
	for t := 0; t < T; t++ {
		row := gamma.RawRowView(t)
		f, b := fwd.RawRowView(t), bwd.RawRowView(t)
		for i := 0; i < states; i++ {
			row[i] = f[i] + b[i] - logLik
		}
		path[t] = logmath.ArgMax(row)
	}

	m.trace(log.OperationPosterior, p, T, logLik, start)
	return &Posterior{Marginals: gamma, Path: path, LogLikelihood: logLik}, nil
}
