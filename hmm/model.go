// Package hmm は対数空間で動作する隠れマルコフモデルを提供します。
//
// Model[O] はトポロジー由来の遷移行列 A と初期分布 π、そして観測モデル
// emission.Emission[O] を組み合わせたものです。確率はすべて自然対数で保持し、
// math.Inf(-1) が確率 0 を表します。
//
// 推論（Decode, Evaluate, EvaluatePath, Posterior, Generate）はパラメータを
// 読み取るだけなので、複数の goroutine から同時に呼び出せます。パラメータの
// 入れ替えは SetParameters がスナップショット単位で行います。
//
// 使用例:
//
//	topo, _ := topology.NewErgodic(2)
//	model, _ := hmm.NewDiscrete(topo, b, false)
//	path, logLik, err := model.Decode([]int{0, 1, 2})
package hmm

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gohmm/markov/emission"
	"github.com/YuminosukeSato/gohmm/markov/topology"
	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// Parameters は推論が読み取るパラメータのスナップショットです。
// 公開後は変更されません。
type Parameters[O any] struct {
	Transitions *mat.Dense // log A (states × states)
	Initial     []float64  // log π
	Emission    emission.Emission[O]
	Version     uint64
}

// Model is a hidden Markov model over observations of type O.
type Model[O any] struct {
	id           string
	name         string
	topology     string
	states       int
	accumulation Accumulation
	tolerance    float64
	logger       log.Logger

	params  atomic.Pointer[Parameters[O]]
	writeMu sync.Mutex

	// checkEmission は SetParameters が受け付ける観測モデルを制限します（nil なら制限なし）。
	checkEmission func(emission.Emission[O]) error

	rngMu sync.Mutex
	src   rand.Source
}

// New は topo と em から汎用モデルを構築します。
func New[O any](topo topology.Topology, em emission.Emission[O], opts ...Option) (*Model[O], error) {
	if topo == nil {
		return nil, errors.NewMissingArgumentError("topology")
	}
	if em == nil {
		return nil, errors.NewMissingArgumentError("emissions")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !(o.tolerance > 0) {
		return nil, errors.NewValidationError("tolerance", "must be positive", o.tolerance)
	}

	states := topo.States()
	if states <= 0 {
		return nil, errors.NewValidationError("states", "must be positive", states)
	}
	if em.States() != states {
		return nil, errors.NewDimensionError("hmm.New", states, em.States(), 0)
	}

	logA, logPi, err := topo.Create(true)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s topology", topo.Name())
	}

	name := o.name
	if name == "" {
		name = em.Name() + "-hmm"
	}
	m := &Model[O]{
		id:           uuid.NewString(),
		name:         name,
		topology:     topo.Name(),
		states:       states,
		accumulation: o.accumulation,
		tolerance:    o.tolerance,
		src:          o.randSource(),
	}
	logger := o.logger
	if logger == nil {
		logger = log.GetLoggerWithName("hmm")
	}
	m.logger = logger.With(
		log.ModelNameKey, m.name,
		log.ModelIDKey, m.id,
		log.StatesKey, states,
		log.TopologyKey, m.topology,
	)
	if o.seeded {
		m.logger = m.logger.With(log.RandomSeedKey, o.seed)
	}

	m.params.Store(&Parameters[O]{
		Transitions: logA,
		Initial:     logPi,
		Emission:    em,
		Version:     1,
	})
	m.logger.Debug("model created")
	return m, nil
}

// ID returns the instance identifier assigned at construction.
func (m *Model[O]) ID() string { return m.id }

// Name returns the model name.
func (m *Model[O]) Name() string { return m.name }

// Topology returns the name of the topology the model was built from.
func (m *Model[O]) Topology() string { return m.topology }

// States returns the number of hidden states.
func (m *Model[O]) States() int { return m.states }

// Accumulation returns the path accumulation mode.
func (m *Model[O]) Accumulation() Accumulation { return m.accumulation }

// Parameters returns a copy of the current snapshot. Changing the copy does
// not affect the model; use SetParameters to replace the parameters.
func (m *Model[O]) Parameters() *Parameters[O] {
	p := m.params.Load()
	return &Parameters[O]{
		Transitions: mat.DenseCopyOf(p.Transitions),
		Initial:     append([]float64(nil), p.Initial...),
		Emission:    p.Emission,
		Version:     p.Version,
	}
}

// Version returns the version of the current parameter snapshot.
func (m *Model[O]) Version() uint64 { return m.params.Load().Version }

// Emission returns the current observation model.
func (m *Model[O]) Emission() emission.Emission[O] { return m.params.Load().Emission }

// LogTransitions returns a copy of log A.
func (m *Model[O]) LogTransitions() *mat.Dense {
	return mat.DenseCopyOf(m.params.Load().Transitions)
}

// LogInitial returns a copy of log π.
func (m *Model[O]) LogInitial() []float64 {
	return append([]float64(nil), m.params.Load().Initial...)
}

// Transitions returns A in linear space.
func (m *Model[O]) Transitions() *mat.Dense {
	return logmath.Exp(m.params.Load().Transitions)
}

// Initial returns π in linear space.
func (m *Model[O]) Initial() []float64 {
	return logmath.ExpVec(m.params.Load().Initial)
}

// SetParameters は A, π, 観測モデルをまとめて置き換えます。
// 外部の学習アルゴリズムが使う入口で、状態数は変更できません。
// 検証に失敗した場合、現在のスナップショットはそのまま残ります。
func (m *Model[O]) SetParameters(transitions mat.Matrix, initial []float64, em emission.Emission[O], logarithm bool) error {
	if transitions == nil {
		return errors.NewMissingArgumentError("transitions")
	}
	if initial == nil {
		return errors.NewMissingArgumentError("initial")
	}
	if em == nil {
		return errors.NewMissingArgumentError("emissions")
	}
	if em.States() != m.states {
		return errors.NewDimensionError("hmm.SetParameters", m.states, em.States(), 0)
	}
	if m.checkEmission != nil {
		if err := m.checkEmission(em); err != nil {
			return err
		}
	}
	if r, _ := transitions.Dims(); r != m.states {
		return errors.NewDimensionError("hmm.SetParameters", m.states, r, 0)
	}
	custom, err := topology.NewCustom(transitions, initial, logarithm, m.tolerance)
	if err != nil {
		return err
	}
	logA, logPi, err := custom.Create(true)
	if err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	prev := m.params.Load()
	next := &Parameters[O]{
		Transitions: logA,
		Initial:     logPi,
		Emission:    em,
		Version:     prev.Version + 1,
	}
	m.params.Store(next)
	m.logger.Info("parameters replaced", log.ParamsVersionKey, next.Version)
	return nil
}

// validate はパラメータ計算の前に観測系列を検査します。
func (m *Model[O]) validate(p *Parameters[O], obs []O) error {
	if obs == nil {
		return errors.NewMissingArgumentError("observations")
	}
	for t, o := range obs {
		if err := p.Emission.Validate(o); err != nil {
			return errors.Wrapf(err, "observation at t=%d", t)
		}
	}
	return nil
}

// trace logs a finished inference call at debug level.
func (m *Model[O]) trace(op string, p *Parameters[O], length int, logLik float64, start time.Time) {
	if !m.logger.Enabled(context.Background(), log.LevelDebug) {
		return
	}
	m.logger.Debug(op+" finished",
		log.OperationKey, op,
		log.ParamsVersionKey, p.Version,
		log.SequenceLengthKey, length,
		log.LogLikelihoodKey, logLik,
		log.DurationMsKey, float64(time.Since(start).Microseconds())/1000,
	)
}

// impossible reports a zero-probability observation sequence.
func (m *Model[O]) impossible(op string, length int) {
	w := errors.NewImpossibleSequenceWarning(op, length)
	errors.Warn(w)
	m.logger.Debug("impossible sequence", log.OperationKey, op, log.ErrorCodeKey, log.ErrorImpossible)
}

func isZero(x float64) bool { return math.IsInf(x, -1) }
