package hmm

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/gohmm/markov/topology"
	"github.com/YuminosukeSato/gohmm/pkg/log"
	"github.com/YuminosukeSato/gohmm/pkg/logmath"
)

// Accumulation は経路尤度を時刻方向に累積する演算です。
type Accumulation int

const (
	// AccumulateLogSum は各時刻の項を LogSum で結合します（既定）。
	AccumulateLogSum Accumulation = iota

	// AccumulateSum は各時刻の項を単純に加算し、同時確率の対数を返します。
	AccumulateSum
)

// String returns the option name used in model files and flags.
func (a Accumulation) String() string {
	switch a {
	case AccumulateSum:
		return "sum"
	default:
		return "logsum"
	}
}

// ParseAccumulation は "logsum" または "sum" を Accumulation に変換します。
func ParseAccumulation(s string) (Accumulation, bool) {
	switch s {
	case "", "logsum":
		return AccumulateLogSum, true
	case "sum":
		return AccumulateSum, true
	default:
		return AccumulateLogSum, false
	}
}

func (a Accumulation) combine(acc, term float64) float64 {
	if a == AccumulateSum {
		return acc + term
	}
	return logmath.LogSum(acc, term)
}

// Option はモデル構築時の設定を行う関数です。
type Option func(*options)

type options struct {
	name         string
	logger       log.Logger
	accumulation Accumulation
	tolerance    float64
	src          rand.Source
	seed         uint64
	seeded       bool
}

func defaultOptions() options {
	return options{
		accumulation: AccumulateLogSum,
		tolerance:    topology.DefaultTolerance,
	}
}

// WithName sets the model name reported in logs and exported weights.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger はモデルが使うロガーを設定します。
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPathAccumulation selects how EvaluatePath and Generate combine the
// per-step log-probabilities.
func WithPathAccumulation(a Accumulation) Option {
	return func(o *options) {
		o.accumulation = a
	}
}

// WithTolerance sets the accepted deviation of probability rows from 1.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithRandomState は Generate の乱数シードを固定します。
func WithRandomState(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
		o.src = nil
	}
}

// WithRandSource は Generate が使う乱数源を直接指定します。
func WithRandSource(src rand.Source) Option {
	return func(o *options) {
		o.src = src
		o.seeded = false
	}
}

func (o *options) randSource() rand.Source {
	if o.src != nil {
		return o.src
	}
	if o.seeded {
		return rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)
	}
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}
