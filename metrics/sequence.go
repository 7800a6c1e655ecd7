// Package metrics は系列モデルの評価指標を提供します。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// PathAccuracy は復元した状態系列が正解と一致する時刻の割合を返します。
func PathAccuracy(truth, decoded []int) (float64, error) {
	if truth == nil || decoded == nil {
		return 0, errors.NewMissingArgumentError("path")
	}
	if len(truth) != len(decoded) {
		return 0, errors.NewDimensionError("PathAccuracy", len(truth), len(decoded), 0)
	}
	if len(truth) == 0 {
		return 0, errors.NewValueError("PathAccuracy", "empty path")
	}
	var hits int
	for i := range truth {
		if truth[i] == decoded[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(truth)), nil
}

// StateConfusion は states × states の混同行列を返します。
// 要素 (i, j) は正解 i を j と復元した回数です。
func StateConfusion(truth, decoded []int, states int) (*mat.Dense, error) {
	if truth == nil || decoded == nil {
		return nil, errors.NewMissingArgumentError("path")
	}
	if len(truth) != len(decoded) {
		return nil, errors.NewDimensionError("StateConfusion", len(truth), len(decoded), 0)
	}
	if states <= 0 {
		return nil, errors.NewValidationError("states", "must be positive", states)
	}
	cm := mat.NewDense(states, states, nil)
	for t := range truth {
		i, j := truth[t], decoded[t]
		if i < 0 || i >= states || j < 0 || j >= states {
			return nil, errors.NewValidationError("path", "state out of range", [2]int{i, j})
		}
		cm.Set(i, j, cm.At(i, j)+1)
	}
	return cm, nil
}

// Perplexity returns exp(-Σ logLiks / Σ lengths), the per-symbol
// perplexity of a set of sequences.
func Perplexity(logLiks []float64, lengths []int) (float64, error) {
	if len(logLiks) != len(lengths) {
		return 0, errors.NewDimensionError("Perplexity", len(logLiks), len(lengths), 0)
	}
	var total int
	for _, n := range lengths {
		if n < 0 {
			return 0, errors.NewValidationError("lengths", "must be non-negative", n)
		}
		total += n
	}
	if total == 0 {
		return 0, errors.NewValueError("Perplexity", "no observations")
	}
	return math.Exp(-floats.Sum(logLiks) / float64(total)), nil
}

// MeanLogLikelihood は対数尤度の平均と標準偏差を返します。
// -Inf を含む場合、平均は -Inf です。
func MeanLogLikelihood(logLiks []float64) (mean, std float64, err error) {
	if len(logLiks) == 0 {
		return 0, 0, errors.NewValueError("MeanLogLikelihood", "empty input")
	}
	for _, v := range logLiks {
		if math.IsInf(v, -1) {
			return math.Inf(-1), math.NaN(), nil
		}
	}
	if len(logLiks) == 1 {
		return logLiks[0], 0, nil
	}
	mean, std = stat.MeanStdDev(logLiks, nil)
	return mean, std, nil
}
