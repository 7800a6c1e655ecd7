// Package preprocessing は観測系列をモデルに渡す前の変換を提供します。
// 連続値系列の標準化、連続値から離散シンボルへの量子化、ラベルとシンボル番号の対応付けを扱います。
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// StandardScaler は連続値の観測系列を平均0、標準偏差1に変換する
// 統計量はすべての系列をまとめて計算する
type StandardScaler struct {
	// Mean は観測値の平均
	Mean float64

	// Scale は観測値の標準偏差
	Scale float64

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool

	fitted bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	scaled, err := scaler.FitTransform(sequences)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// IsFitted reports whether Fit has succeeded.
func (s *StandardScaler) IsFitted() bool {
	return s.fitted
}

// Fit は系列群から平均と標準偏差を計算する
//
// パラメータ:
//   - seqs: 観測系列の集合。nil の系列は不正な引数として扱う
//
// 戻り値:
//   - error: 値が1つもない場合や NaN/Inf を含む場合
func (s *StandardScaler) Fit(seqs [][]float64) error {
	values, err := flatten("StandardScaler.Fit", seqs)
	if err != nil {
		return err
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	s.Mean, s.Scale = 0, 1
	if s.WithMean {
		s.Mean = mean
	}
	if s.WithStd {
		if !s.WithMean {
			// 平均を引かない場合は原点まわりの二乗平均を使う
			std = math.Sqrt(stat.PopVariance(values, nil) + mean*mean)
		}
		// 分散がほぼ0のときはゼロ除算を避ける
		if std > 1e-8 {
			s.Scale = std
		}
	}
	s.fitted = true
	return nil
}

// Transform は学習済みの統計量で各系列を標準化する
func (s *StandardScaler) Transform(seqs [][]float64) ([][]float64, error) {
	return s.apply("StandardScaler.Transform", seqs, func(v float64) float64 {
		return (v - s.Mean) / s.Scale
	})
}

// FitTransform は Fit の後に同じ系列を変換する
func (s *StandardScaler) FitTransform(seqs [][]float64) ([][]float64, error) {
	if err := s.Fit(seqs); err != nil {
		return nil, err
	}
	return s.Transform(seqs)
}

// InverseTransform は標準化された系列を元のスケールに戻す
func (s *StandardScaler) InverseTransform(seqs [][]float64) ([][]float64, error) {
	return s.apply("StandardScaler.InverseTransform", seqs, func(v float64) float64 {
		return v*s.Scale + s.Mean
	})
}

func (s *StandardScaler) apply(op string, seqs [][]float64, fn func(float64) float64) ([][]float64, error) {
	if !s.fitted {
		return nil, errors.NewModelError(op, "not fitted", nil)
	}
	if seqs == nil {
		return nil, errors.NewMissingArgumentError("sequences")
	}
	out := make([][]float64, len(seqs))
	for i, seq := range seqs {
		if seq == nil {
			return nil, errors.Wrapf(errors.NewMissingArgumentError("sequence"), "sequence %d", i)
		}
		out[i] = make([]float64, len(seq))
		for t, v := range seq {
			out[i][t] = fn(v)
		}
	}
	return out, nil
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.fitted {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, mean=%.6g, scale=%.6g)",
		s.WithMean, s.WithStd, s.Mean, s.Scale)
}

// flatten は系列群を1本のスライスにまとめ、値を検証する
func flatten(op string, seqs [][]float64) ([]float64, error) {
	if seqs == nil {
		return nil, errors.NewMissingArgumentError("sequences")
	}
	var values []float64
	for i, seq := range seqs {
		if seq == nil {
			return nil, errors.Wrapf(errors.NewMissingArgumentError("sequence"), "sequence %d", i)
		}
		values = append(values, seq...)
	}
	if len(values) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.NewNumericalInstabilityError(op, []float64{v}, i)
		}
	}
	return values, nil
}
