package hmm

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// viterbi は対数空間の Viterbi 動的計画法です。len(obs) > 0 を前提とします。
// 同値の場合は添字の小さい状態を優先します（厳密な > でのみ更新）。
func viterbi[O any](p *Parameters[O], obs []O) ([]int, float64) {
	states := len(p.Initial)
	T := len(obs)
	score := mat.NewDense(T, states, nil)
	backptr := make([]int, T*states)

	row := score.RawRowView(0)
	for i := 0; i < states; i++ {
		row[i] = p.Initial[i] + p.Emission.LogProb(i, obs[0])
	}

	for t := 1; t < T; t++ {
		prev := score.RawRowView(t - 1)
		cur := score.RawRowView(t)
		for j := 0; j < states; j++ {
			best := prev[0] + p.Transitions.At(0, j)
			arg := 0
			for i := 1; i < states; i++ {
				if v := prev[i] + p.Transitions.At(i, j); v > best {
					best = v
					arg = i
				}
			}
			cur[j] = best + p.Emission.LogProb(j, obs[t])
			backptr[t*states+j] = arg
		}
	}

	last := score.RawRowView(T - 1)
	state := logmath.ArgMax(last)
	logLik := last[state]

	path := make([]int, T)
	path[T-1] = state
	for t := T - 1; t > 0; t-- {
		state = backptr[t*states+state]
		path[t-1] = state
	}
	return path, logLik
}

// Decode はビタビアルゴリズムで最も尤もらしい状態系列とその対数尤度を返します。
// 長さ 0 の系列には空の経路と -Inf を返します。
func (m *Model[O]) Decode(obs []O) ([]int, float64, error) {
	start := time.Now()
	p := m.params.Load()
	if err := m.validate(p, obs); err != nil {
		return nil, 0, err
	}
	if len(obs) == 0 {
		return []int{}, logmath.Zero, nil
	}

	path, logLik := viterbi(p, obs)
	if isZero(logLik) {
		m.impossible(log.OperationDecode, len(obs))
	}
	m.trace(log.OperationDecode, p, len(obs), logLik, start)
	return path, logLik, nil
}
