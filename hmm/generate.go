package hmm

import (
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// Sample はモデルから生成された観測系列と状態系列です。
type Sample[O any] struct {
	Observations []O
	Path         []int

	// LogLikelihood は生成された実現値の対数尤度です。各時刻の項は
	// モデルの Accumulation で累積されます。
	LogLikelihood float64
}

// Generate draws n steps from the generative process: a state from π (then
// from the previous state's row of A) and an observation from that state's
// emission. Generate serialises on the model's random source; the other
// operations are unaffected.
func (m *Model[O]) Generate(n int) (*Sample[O], error) {
	if n < 0 {
		return nil, errors.NewValidationError("n", "must be non-negative", n)
	}
	start := time.Now()
	p := m.params.Load()
	out := &Sample[O]{
		Observations:  make([]O, n),
		Path:          make([]int, n),
		LogLikelihood: logmath.Zero,
	}
	if n == 0 {
		return out, nil
	}

	m.rngMu.Lock()
	defer m.rngMu.Unlock()

	weights := p.Initial
	for t := 0; t < n; t++ {
		state := int(distuv.NewCategorical(logmath.ExpVec(weights), m.src).Rand())
		obs := p.Emission.Sample(state, m.src)
		term := weights[state] + p.Emission.LogProb(state, obs)
		if t == 0 {
			out.LogLikelihood = term
		} else {
			out.LogLikelihood = m.accumulation.combine(out.LogLikelihood, term)
		}
		out.Path[t] = state
		out.Observations[t] = obs
		weights = p.Transitions.RawRowView(state)
	}

	m.logger.Debug("generate finished",
		log.OperationKey, log.OperationGenerate,
		log.ParamsVersionKey, p.Version,
		log.StepsKey, n,
		log.LogLikelihoodKey, out.LogLikelihood,
		log.DurationMsKey, float64(time.Since(start).Microseconds())/1000,
	)
	return out, nil
}
