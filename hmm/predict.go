package hmm

import (
	"time"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// Prediction は Predict が返す将来のシンボル列です。
// すべてのスライスの長さは要求したステップ数と一致します。
type Prediction struct {
	// Symbols は各ステップで最も確率の高いシンボルです。
	Symbols []int

	// LogProbabilities[t][k] は t ステップ目にシンボル k が出る正規化済み対数確率です。
	LogProbabilities [][]float64

	// LogLikelihood は最終ステップで選んだシンボルの正規化済み対数確率です。
	// next が 0 の場合は観測系列の対数尤度です。
	LogLikelihood float64
}

// Predict continues obs by next symbols.
//
// The forward lattice of obs gives the state distribution at the last
// observed step. Each future step propagates that distribution through A,
// weights it by every symbol's emission row, normalises the per-symbol
// marginals and picks the most probable symbol (lowest index on ties). The
// selected symbol's unnormalised per-state weights seed the following step.
// With an empty obs the first step starts from π without a transition.
func (d *DiscreteModel) Predict(obs []int, next int) (*Prediction, error) {
	start := time.Now()
	p := d.params.Load()
	if err := d.validate(p, obs); err != nil {
		return nil, err
	}
	if next < 0 {
		return nil, errors.NewValidationError("next", "must be non-negative", next)
	}

	states := d.states
	logB := d.discrete(p)

	var current []float64
	logLik := logmath.Zero
	if len(obs) > 0 {
		lattice, ll := forward(p, obs)
		if isZero(ll) {
			d.impossible(log.OperationPredict, len(obs))
			return nil, errors.Wrap(errors.ErrImpossibleSequence, "predict")
		}
		current = lattice.RawRowView(len(obs) - 1)
		logLik = ll
	}

	out := &Prediction{
		Symbols:          make([]int, next),
		LogProbabilities: make([][]float64, next),
	}

	prior := make([]float64, states)
	scratch := make([]float64, states)
	for t := 0; t < next; t++ {
		// 状態分布を 1 ステップ進める
		for i := 0; i < states; i++ {
			if current == nil {
				prior[i] = p.Initial[i]
				continue
			}
			for j := 0; j < states; j++ {
				scratch[j] = current[j] + p.Transitions.At(j, i)
			}
			prior[i] = logmath.LogSumAll(scratch)
		}

		perState := make([][]float64, d.symbols)
		weights := make([]float64, d.symbols)
		for k := 0; k < d.symbols; k++ {
			row := make([]float64, states)
			for i := 0; i < states; i++ {
				row[i] = prior[i] + logB.LogProb(i, k)
			}
			perState[k] = row
			weights[k] = logmath.LogSumAll(row)
		}

		weights = logmath.Normalize(weights)
		best := logmath.ArgMax(weights)
		out.Symbols[t] = best
		out.LogProbabilities[t] = weights
		logLik = weights[best]
		current = perState[best]
	}
	out.LogLikelihood = logLik

	d.logger.Debug("predict finished",
		log.OperationKey, log.OperationPredict,
		log.ParamsVersionKey, p.Version,
		log.SequenceLengthKey, len(obs),
		log.StepsKey, next,
		log.LogLikelihoodKey, logLik,
		log.DurationMsKey, float64(time.Since(start).Microseconds())/1000,
	)
	return out, nil
}
