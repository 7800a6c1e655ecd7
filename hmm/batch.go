package hmm

import (
	"github.com/YuminosukeSato/gohmm/core/parallel"
	"github.com/YuminosukeSato/gohmm/pkg/errors"
	"github.com/YuminosukeSato/gohmm/pkg/log"
)

// batchThreshold 以下の系列数では逐次処理します。
const batchThreshold = 16

// EvaluateBatch は複数の観測系列の対数尤度を並列に計算します。
// いずれかの系列が不正な場合、添字が最も小さいもののエラーを返します。
func (m *Model[O]) EvaluateBatch(sequences [][]O) ([]float64, error) {
	if sequences == nil {
		return nil, errors.NewMissingArgumentError("sequences")
	}
	out := make([]float64, len(sequences))
	idx, err := parallel.ForEach(len(sequences), batchThreshold, func(i int) error {
		ll, err := m.Evaluate(sequences[i])
		out[i] = ll
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "sequence %d", idx)
	}
	m.logger.Debug("evaluate batch finished", log.SequencesKey, len(sequences))
	return out, nil
}

// DecodeBatch runs Decode over every sequence in parallel.
func (m *Model[O]) DecodeBatch(sequences [][]O) ([][]int, []float64, error) {
	if sequences == nil {
		return nil, nil, errors.NewMissingArgumentError("sequences")
	}
	paths := make([][]int, len(sequences))
	logLiks := make([]float64, len(sequences))
	idx, err := parallel.ForEach(len(sequences), batchThreshold, func(i int) error {
		path, ll, err := m.Decode(sequences[i])
		paths[i], logLiks[i] = path, ll
		return err
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "sequence %d", idx)
	}
	m.logger.Debug("decode batch finished", log.SequencesKey, len(sequences))
	return paths, logLiks, nil
}
