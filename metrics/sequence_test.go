package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

func TestPathAccuracy(t *testing.T) {
	acc, err := PathAccuracy([]int{0, 1, 1, 0}, []int{0, 1, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-15)

	_, err = PathAccuracy(nil, []int{})
	assert.True(t, errors.IsInvalidArgument(err))
	_, err = PathAccuracy([]int{0}, []int{0, 1})
	assert.True(t, errors.IsInvalidArgument(err))
	_, err = PathAccuracy([]int{}, []int{})
	assert.Error(t, err)
}

func TestStateConfusion(t *testing.T) {
	cm, err := StateConfusion([]int{0, 1, 1, 0}, []int{0, 1, 0, 0}, 2)
	require.NoError(t, err)
	want := mat.NewDense(2, 2, []float64{2, 0, 1, 1})
	assert.True(t, mat.Equal(want, cm))

	_, err = StateConfusion([]int{0, 2}, []int{0, 1}, 2)
	assert.True(t, errors.IsInvalidArgument(err))
	_, err = StateConfusion([]int{0}, []int{0}, 0)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestPerplexity(t *testing.T) {
	// 一様な 4 シンボルの系列はパープレキシティ 4
	ll := 3 * math.Log(0.25)
	p, err := Perplexity([]float64{ll, 2 * math.Log(0.25)}, []int{3, 2})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, p, 1e-12)

	_, err = Perplexity([]float64{ll}, []int{3, 2})
	assert.True(t, errors.IsInvalidArgument(err))
	_, err = Perplexity([]float64{0}, []int{0})
	assert.Error(t, err)
}

func TestMeanLogLikelihood(t *testing.T) {
	mean, std, err := MeanLogLikelihood([]float64{-1, -3})
	require.NoError(t, err)
	assert.InDelta(t, -2.0, mean, 1e-15)
	assert.InDelta(t, math.Sqrt2, std, 1e-12)

	mean, _, err = MeanLogLikelihood([]float64{-1, math.Inf(-1)})
	require.NoError(t, err)
	assert.True(t, math.IsInf(mean, -1))

	_, _, err = MeanLogLikelihood(nil)
	assert.Error(t, err)
}
