package preprocessing

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// BinStrategy は Discretizer のビン境界の決め方です。
type BinStrategy int

const (
	// UniformBins は最小値から最大値までを等幅に分割する
	UniformBins BinStrategy = iota
	// QuantileBins は各ビンの観測数がほぼ等しくなるよう経験分位点で分割する
	QuantileBins
)

func (s BinStrategy) String() string {
	switch s {
	case UniformBins:
		return "uniform"
	case QuantileBins:
		return "quantile"
	default:
		return fmt.Sprintf("BinStrategy(%d)", int(s))
	}
}

// Discretizer は連続値の観測を 0..Bins-1 の離散シンボルに量子化する。
// 結果は DiscreteModel の観測としてそのまま使える。
type Discretizer struct {
	Bins     int
	Strategy BinStrategy

	// Edges は昇順の内部境界 (Bins-1 個)。値 v のシンボルは v 以下の境界の数
	Edges []float64
}

// NewDiscretizer は bins 個のシンボルに量子化する Discretizer を作成する
func NewDiscretizer(bins int, strategy BinStrategy) (*Discretizer, error) {
	if bins <= 0 {
		return nil, errors.NewValidationError("bins", "must be positive", bins)
	}
	if strategy != UniformBins && strategy != QuantileBins {
		return nil, errors.NewValidationError("strategy", "unknown bin strategy", strategy)
	}
	return &Discretizer{Bins: bins, Strategy: strategy}, nil
}

// Symbols はシンボル数（= Bins）を返す
func (d *Discretizer) Symbols() int {
	return d.Bins
}

// Fit は系列群からビン境界を計算する
func (d *Discretizer) Fit(seqs [][]float64) error {
	values, err := flatten("Discretizer.Fit", seqs)
	if err != nil {
		return err
	}
	sort.Float64s(values)

	edges := make([]float64, d.Bins-1)
	switch d.Strategy {
	case UniformBins:
		if d.Bins > 1 {
			bounds := make([]float64, d.Bins+1)
			floats.Span(bounds, values[0], values[len(values)-1])
			copy(edges, bounds[1:d.Bins])
		}
	case QuantileBins:
		for i := range edges {
			p := float64(i+1) / float64(d.Bins)
			edges[i] = stat.Quantile(p, stat.Empirical, values, nil)
		}
	}
	d.Edges = edges
	return nil
}

// Transform は各観測値をシンボルに変換する
func (d *Discretizer) Transform(seqs [][]float64) ([][]int, error) {
	if d.Edges == nil {
		return nil, errors.NewModelError("Discretizer.Transform", "not fitted", nil)
	}
	if seqs == nil {
		return nil, errors.NewMissingArgumentError("sequences")
	}
	out := make([][]int, len(seqs))
	for i, seq := range seqs {
		if seq == nil {
			return nil, errors.Wrapf(errors.NewMissingArgumentError("sequence"), "sequence %d", i)
		}
		out[i] = make([]int, len(seq))
		for t, v := range seq {
			if math.IsNaN(v) {
				return nil, errors.NewNumericalInstabilityError("Discretizer.Transform", []float64{v}, t)
			}
			out[i][t] = d.symbol(v)
		}
	}
	return out, nil
}

// FitTransform は Fit の後に同じ系列を変換する
func (d *Discretizer) FitTransform(seqs [][]float64) ([][]int, error) {
	if err := d.Fit(seqs); err != nil {
		return nil, err
	}
	return d.Transform(seqs)
}

func (d *Discretizer) symbol(v float64) int {
	return sort.Search(len(d.Edges), func(i int) bool { return d.Edges[i] > v })
}
