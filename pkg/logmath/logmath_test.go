package logmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-12

func TestLogSum(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"both finite", math.Log(0.25), math.Log(0.5), math.Log(0.75)},
		{"right zero", -1.5, math.Inf(-1), -1.5},
		{"left zero", math.Inf(-1), 2, 2},
		{"both zero", math.Inf(-1), math.Inf(-1), math.Inf(-1)},
		{"large magnitudes", 1000, 1000, 1000 + math.Ln2},
		{"tiny magnitudes", -1000, -1000, -1000 + math.Ln2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogSum(tt.a, tt.b)
			if math.IsInf(tt.want, -1) {
				assert.True(t, math.IsInf(got, -1))
				return
			}
			assert.InDelta(t, tt.want, got, tol)
		})
	}
}

func TestLogSumCommutativeAssociative(t *testing.T) {
	values := []float64{-3.2, -0.1, -7.5, math.Inf(-1), -2}
	for i := range values {
		for j := range values {
			ab := LogSum(values[i], values[j])
			ba := LogSum(values[j], values[i])
			if math.IsInf(ab, -1) {
				assert.True(t, math.IsInf(ba, -1))
				continue
			}
			assert.InDelta(t, ab, ba, tol)
		}
	}

	left := LogSum(LogSum(values[0], values[1]), values[2])
	right := LogSum(values[0], LogSum(values[1], values[2]))
	assert.InDelta(t, left, right, tol)
}

func TestLogSumAllMatchesPairwise(t *testing.T) {
	values := []float64{-1, -2.5, math.Inf(-1), -0.3, -12}
	acc := math.Inf(-1)
	for _, v := range values {
		acc = LogSum(acc, v)
	}
	assert.InDelta(t, acc, LogSumAll(values), tol)
	assert.True(t, math.IsInf(LogSumAll(nil), -1))
	assert.True(t, math.IsInf(LogSumAll([]float64{math.Inf(-1), math.Inf(-1)}), -1))
}

func TestNormalize(t *testing.T) {
	norm := Normalize([]float64{math.Log(2), math.Log(6), math.Inf(-1)})
	assert.InDelta(t, 1.0, floats.Sum(ExpVec(norm)), 1e-12)
	assert.InDelta(t, math.Log(0.25), norm[0], tol)
	assert.True(t, math.IsInf(norm[2], -1))

	allZero := Normalize([]float64{math.Inf(-1), math.Inf(-1)})
	assert.True(t, math.IsInf(allZero[0], -1))
}

func TestArgMaxFirstIndexOnTies(t *testing.T) {
	assert.Equal(t, 1, ArgMax([]float64{-2, -1, -1, -3}))
	assert.Equal(t, 0, ArgMax([]float64{math.Inf(-1), math.Inf(-1)}))
	assert.Equal(t, -1, ArgMax(nil))
}

func TestLogExpRoundTrip(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{0.1, 0.4, 0.5, 0.6, 0.3, 0.1})
	back := Exp(Log(m))
	assert.True(t, mat.EqualApprox(m, back, 1e-14))

	zero := Log(mat.NewDense(1, 2, []float64{0, 1}))
	assert.True(t, math.IsInf(zero.At(0, 0), -1))

	sums := RowLogSums(Log(m))
	assert.InDelta(t, 0, sums[0], 1e-12)
	assert.InDelta(t, 0, sums[1], 1e-12)
}
