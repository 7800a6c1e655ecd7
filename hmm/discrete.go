package hmm

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gohmm/markov/emission"
	"github.com/YuminosukeSato/gohmm/markov/topology"
	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// DiscreteModel は有限のシンボル集合 [0, symbols) を出力する HMM です。
type DiscreteModel struct {
	*Model[int]
	symbols int
}

// NewDiscrete は topo と states × symbols の出力確率行列から離散 HMM を構築します。
// logarithm が true のとき emissions は対数空間で与えられたものとして扱います。
func NewDiscrete(topo topology.Topology, emissions mat.Matrix, logarithm bool, opts ...Option) (*DiscreteModel, error) {
	if topo == nil {
		return nil, errors.NewMissingArgumentError("topology")
	}
	if emissions == nil {
		return nil, errors.NewMissingArgumentError("emissions")
	}
	if r, _ := emissions.Dims(); r != topo.States() {
		return nil, errors.NewDimensionError("hmm.NewDiscrete", topo.States(), r, 0)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	em, err := emission.NewDiscrete(emissions, logarithm, o.tolerance)
	if err != nil {
		return nil, err
	}
	return newDiscrete(topo, em, opts)
}

// NewDiscreteUniform は各状態の出力分布を一様分布 log(1/symbols) で初期化します。
func NewDiscreteUniform(topo topology.Topology, symbols int, opts ...Option) (*DiscreteModel, error) {
	if topo == nil {
		return nil, errors.NewMissingArgumentError("topology")
	}
	em, err := emission.NewUniformDiscrete(topo.States(), symbols)
	if err != nil {
		return nil, err
	}
	return newDiscrete(topo, em, opts)
}

// NewDiscreteFromMatrices は遷移行列・出力行列・初期分布から直接モデルを構築します。
// 内部で topology.Custom を作り NewDiscrete に委譲します。
func NewDiscreteFromMatrices(transitions, emissions mat.Matrix, initial []float64, logarithm bool, opts ...Option) (*DiscreteModel, error) {
	if emissions == nil {
		return nil, errors.NewMissingArgumentError("emissions")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	topo, err := topology.NewCustom(transitions, initial, logarithm, o.tolerance)
	if err != nil {
		return nil, err
	}
	return NewDiscrete(topo, emissions, logarithm, opts...)
}

func newDiscrete(topo topology.Topology, em *emission.Discrete, opts []Option) (*DiscreteModel, error) {
	m, err := New[int](topo, em, opts...)
	if err != nil {
		return nil, err
	}
	symbols := em.Symbols()
	m.logger = m.logger.With(log.SymbolsKey, symbols)
	// 埋め込んだ Model 経由の SetParameters でもシンボル数を固定する
	m.checkEmission = func(e emission.Emission[int]) error {
		return checkDiscrete(e, symbols)
	}
	return &DiscreteModel{Model: m, symbols: symbols}, nil
}

// checkDiscrete は e が symbols 個のシンボルを持つ *emission.Discrete であることを確認します。
func checkDiscrete(e emission.Emission[int], symbols int) error {
	de, ok := e.(*emission.Discrete)
	if !ok || de == nil {
		return errors.NewValidationError("emissions", "must be a discrete emission table", e)
	}
	if de.Symbols() != symbols {
		return errors.NewDimensionError("hmm.SetParameters", symbols, de.Symbols(), 1)
	}
	return nil
}

// Symbols returns the size of the output alphabet.
func (d *DiscreteModel) Symbols() int { return d.symbols }

// discrete returns the emission table of the current snapshot.
func (d *DiscreteModel) discrete(p *Parameters[int]) *emission.Discrete {
	return p.Emission.(*emission.Discrete)
}

// LogEmissions returns a copy of log B.
func (d *DiscreteModel) LogEmissions() *mat.Dense {
	return d.discrete(d.params.Load()).LogProbs()
}

// Emissions returns B in linear space.
func (d *DiscreteModel) Emissions() *mat.Dense {
	return logmath.Exp(d.discrete(d.params.Load()).LogProbs())
}

// SetMatrices は A, B, π をまとめて置き換えます。シンボル数は変更できません。
func (d *DiscreteModel) SetMatrices(transitions, emissions mat.Matrix, initial []float64, logarithm bool) error {
	if emissions == nil {
		return errors.NewMissingArgumentError("emissions")
	}
	if _, c := emissions.Dims(); c != d.symbols {
		return errors.NewDimensionError("hmm.SetMatrices", d.symbols, c, 1)
	}
	em, err := emission.NewDiscrete(emissions, logarithm, d.tolerance)
	if err != nil {
		return err
	}
	return d.SetParameters(transitions, initial, em, logarithm)
}

// SetParameters replaces A, π and the emission table. em must be a
// *emission.Discrete over the same alphabet.
func (d *DiscreteModel) SetParameters(transitions mat.Matrix, initial []float64, em emission.Emission[int], logarithm bool) error {
	if em == nil {
		return errors.NewMissingArgumentError("emissions")
	}
	if err := checkDiscrete(em, d.symbols); err != nil {
		return err
	}
	return d.Model.SetParameters(transitions, initial, em, logarithm)
}
