package hmm

import (
	"time"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// Evaluate は前向きアルゴリズムで観測系列の対数尤度 log P(obs) を返します。
// 長さ 0 の系列には -Inf を返します。
func (m *Model[O]) Evaluate(obs []O) (float64, error) {
	start := time.Now()
	p := m.params.Load()
	if err := m.validate(p, obs); err != nil {
		return 0, err
	}
	if len(obs) == 0 {
		return logmath.Zero, nil
	}

	_, logLik := forward(p, obs)
	if isZero(logLik) {
		m.impossible(log.OperationEvaluate, len(obs))
	}
	m.trace(log.OperationEvaluate, p, len(obs), logLik, start)
	return logLik, nil
}

// EvaluatePath returns the log-likelihood of the joint realisation of obs
// and path. The per-step terms
//
//	log π[path[0]] + log B[path[0]][obs[0]]
//	log A[path[t-1]][path[t]] + log B[path[t]][obs[t]]
//
// are combined with the model's Accumulation: LogSum by default, plain
// addition with AccumulateSum.
func (m *Model[O]) EvaluatePath(obs []O, path []int) (float64, error) {
	start := time.Now()
	p := m.params.Load()
	if err := m.validate(p, obs); err != nil {
		return 0, err
	}
	if path == nil {
		return 0, errors.NewMissingArgumentError("path")
	}
	if len(path) != len(obs) {
		return 0, errors.NewDimensionError("hmm.EvaluatePath", len(obs), len(path), 0)
	}
	for t, s := range path {
		if s < 0 || s >= m.states {
			return 0, errors.Wrapf(errors.NewValidationError("path", "state out of range", s), "path at t=%d", t)
		}
	}
	if len(obs) == 0 {
		return logmath.Zero, nil
	}

	logLik := p.Initial[path[0]] + p.Emission.LogProb(path[0], obs[0])
	for t := 1; t < len(obs); t++ {
		term := p.Transitions.At(path[t-1], path[t]) + p.Emission.LogProb(path[t], obs[t])
		logLik = m.accumulation.combine(logLik, term)
	}
	m.trace(log.OperationEvaluate, p, len(obs), logLik, start)
	return logLik, nil
}
