package hmm

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gohmm/core/model"
	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

const discreteModelType = "discrete-hmm"

var _ model.WeightExporter = (*DiscreteModel)(nil)

// ExportWeights は現在のパラメータを線形空間の model.Weights として書き出します。
func (d *DiscreteModel) ExportWeights() (*model.Weights, error) {
	p := d.params.Load()
	return &model.Weights{
		ModelType:    discreteModelType,
		Version:      model.FormatVersion,
		Name:         d.name,
		Topology:     d.topology,
		States:       d.states,
		Symbols:      d.symbols,
		Transitions:  rows(p.Transitions),
		Emissions:    rows(d.discrete(p).LogProbs()),
		Initial:      logmath.ExpVec(p.Initial),
		Accumulation: d.accumulation.String(),
		Metadata:     map[string]string{"model_id": d.id},
	}, nil
}

// ImportWeights replaces the parameters with w. The shape of w must match
// the model.
func (d *DiscreteModel) ImportWeights(w *model.Weights) error {
	if w == nil {
		return errors.NewMissingArgumentError("weights")
	}
	if err := w.Validate(); err != nil {
		return err
	}
	if w.States != d.states {
		return errors.NewDimensionError("hmm.ImportWeights", d.states, w.States, 0)
	}
	a, b := dense(w.Transitions), dense(w.Emissions)
	return d.SetMatrices(a, b, w.Initial, false)
}

// NewDiscreteFromWeights は model.Weights から新しい離散 HMM を構築します。
func NewDiscreteFromWeights(w *model.Weights, opts ...Option) (*DiscreteModel, error) {
	if w == nil {
		return nil, errors.NewMissingArgumentError("weights")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if w.ModelType != discreteModelType {
		return nil, errors.NewValidationError("model_type", "unsupported model type", w.ModelType)
	}
	acc, ok := ParseAccumulation(w.Accumulation)
	if !ok {
		return nil, errors.NewValidationError("accumulation", "must be logsum or sum", w.Accumulation)
	}

	base := []Option{WithPathAccumulation(acc)}
	if w.Name != "" {
		base = append(base, WithName(w.Name))
	}
	d, err := NewDiscreteFromMatrices(dense(w.Transitions), dense(w.Emissions), w.Initial, false, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("model loaded", log.OperationKey, log.OperationLoad)
	return d, nil
}

// rows converts a log-space matrix into linear-space rows.
func rows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = logmath.ExpVec(m.RawRowView(i))
	}
	return out
}

func dense(rows [][]float64) *mat.Dense {
	c := len(rows[0])
	m := mat.NewDense(len(rows), c, nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}
