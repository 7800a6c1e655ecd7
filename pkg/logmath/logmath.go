// Package logmath implements arithmetic on log-probabilities.
//
// Probabilities are represented by their natural logarithm; math.Inf(-1)
// stands for probability zero. Addition of probabilities becomes LogSum and
// multiplication becomes plain addition.
package logmath

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Zero is log(0).
var Zero = math.Inf(-1)

// LogSum returns log(exp(a) + exp(b)) without overflow or underflow.
// LogSum(a, -Inf) == a and LogSum(-Inf, -Inf) == -Inf.
func LogSum(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// LogSumAll reduces values with LogSum. An empty slice yields -Inf.
func LogSumAll(values []float64) float64 {
	if len(values) == 0 {
		return Zero
	}
	return floats.LogSumExp(values)
}

// Normalize returns a copy of logs shifted so that the exponentiated entries
// sum to one. If every entry is -Inf the result is all -Inf.
func Normalize(logs []float64) []float64 {
	out := make([]float64, len(logs))
	total := LogSumAll(logs)
	if math.IsInf(total, -1) {
		for i := range out {
			out[i] = Zero
		}
		return out
	}
	for i, v := range logs {
		out[i] = v - total
	}
	return out
}

// ArgMax returns the first index holding the maximum value, scanning with a
// strict comparison so that ties resolve to the lowest index. It returns -1
// for an empty slice.
func ArgMax(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

// LogVec returns the element-wise natural logarithm of v.
func LogVec(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Log(x)
	}
	return out
}

// ExpVec returns the element-wise exponential of v.
func ExpVec(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Exp(x)
	}
	return out
}

// Log returns the element-wise natural logarithm of m.
func Log(m mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return math.Log(v) }, m)
	return &out
}

// Exp returns the element-wise exponential of m.
func Exp(m mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return math.Exp(v) }, m)
	return &out
}

// RowLogSums returns LogSumAll of every row of m.
func RowLogSums(m mat.Matrix) []float64 {
	r, c := m.Dims()
	sums := make([]float64, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, m)
		sums[i] = LogSumAll(row)
	}
	return sums
}
