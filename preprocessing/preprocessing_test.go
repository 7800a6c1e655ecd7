package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	seqs := [][]float64{{1, 2, 3}, {4, 5}, {}}

	t.Run("fit transform round trip", func(t *testing.T) {
		s := NewStandardScalerDefault()
		scaled, err := s.FitTransform(seqs)
		require.NoError(t, err)
		assert.True(t, s.IsFitted())
		assert.InDelta(t, 3.0, s.Mean, 1e-12)
		assert.InDelta(t, math.Sqrt(2), s.Scale, 1e-12)

		require.Len(t, scaled, 3)
		assert.Len(t, scaled[2], 0)
		assert.InDelta(t, -2/math.Sqrt(2), scaled[0][0], 1e-12)
		assert.InDelta(t, 0, scaled[0][2], 1e-12)

		back, err := s.InverseTransform(scaled)
		require.NoError(t, err)
		for i := range seqs {
			assert.InDeltaSlice(t, seqs[i], back[i], 1e-12)
		}
	})

	t.Run("constant data keeps unit scale", func(t *testing.T) {
		s := NewStandardScalerDefault()
		require.NoError(t, s.Fit([][]float64{{7, 7, 7}}))
		assert.Equal(t, 1.0, s.Scale)
	})

	t.Run("without mean", func(t *testing.T) {
		s := NewStandardScaler(false, true)
		require.NoError(t, s.Fit([][]float64{{3, 4}}))
		assert.Equal(t, 0.0, s.Mean)
		assert.InDelta(t, math.Sqrt(12.5), s.Scale, 1e-12)
	})

	t.Run("errors", func(t *testing.T) {
		s := NewStandardScalerDefault()
		_, err := s.Transform(seqs)
		require.Error(t, err)

		err = s.Fit(nil)
		assert.True(t, errors.IsInvalidArgument(err))

		err = s.Fit([][]float64{{}, {}})
		assert.True(t, errors.Is(err, errors.ErrEmptyData))

		err = s.Fit([][]float64{{1, math.NaN()}})
		var numErr *errors.NumericalInstabilityError
		assert.True(t, errors.As(err, &numErr))

		require.NoError(t, s.Fit(seqs))
		_, err = s.Transform([][]float64{nil})
		assert.True(t, errors.IsInvalidArgument(err))
	})
}

func TestDiscretizer(t *testing.T) {
	t.Run("uniform", func(t *testing.T) {
		d, err := NewDiscretizer(4, UniformBins)
		require.NoError(t, err)
		out, err := d.FitTransform([][]float64{{0, 1, 2.5}, {3.9, 4}})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, d.Edges)
		assert.Equal(t, [][]int{{0, 1, 2}, {3, 3}}, out)
		assert.Equal(t, 4, d.Symbols())
	})

	t.Run("quantile", func(t *testing.T) {
		d, err := NewDiscretizer(4, QuantileBins)
		require.NoError(t, err)
		out, err := d.FitTransform([][]float64{{8, 7, 6, 5, 4, 3, 2, 1}})
		require.NoError(t, err)
		require.Len(t, d.Edges, 3)
		assert.True(t, d.Edges[0] <= d.Edges[1] && d.Edges[1] <= d.Edges[2])
		for _, s := range out[0] {
			assert.GreaterOrEqual(t, s, 0)
			assert.Less(t, s, 4)
		}
		// 大きい値ほど大きいシンボル
		assert.Equal(t, 3, out[0][0])
		assert.Equal(t, 0, out[0][7])
	})

	t.Run("single bin", func(t *testing.T) {
		d, err := NewDiscretizer(1, UniformBins)
		require.NoError(t, err)
		out, err := d.FitTransform([][]float64{{-3, 10}})
		require.NoError(t, err)
		assert.Equal(t, [][]int{{0, 0}}, out)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := NewDiscretizer(0, UniformBins)
		assert.True(t, errors.IsInvalidArgument(err))
		_, err = NewDiscretizer(2, BinStrategy(9))
		assert.True(t, errors.IsInvalidArgument(err))

		d, err := NewDiscretizer(2, UniformBins)
		require.NoError(t, err)
		_, err = d.Transform([][]float64{{1}})
		require.Error(t, err)
		assert.Equal(t, "quantile", QuantileBins.String())
	})
}

func TestSymbolEncoder(t *testing.T) {
	e, err := NewSymbolEncoder("walk", "shop", "clean")
	require.NoError(t, err)
	assert.Equal(t, []string{"clean", "shop", "walk"}, e.Classes())
	assert.Equal(t, 3, e.Symbols())

	sym, err := e.Encode([]string{"walk", "shop", "clean"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 0}, sym)

	labels, err := e.Decode(sym)
	require.NoError(t, err)
	assert.Equal(t, []string{"walk", "shop", "clean"}, labels)

	empty, err := e.Encode([]string{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = e.Encode([]string{"swim"})
	assert.True(t, errors.IsInvalidArgument(err))
	_, err = e.Decode([]int{3})
	assert.True(t, errors.IsInvalidArgument(err))
	_, err = e.Encode(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewSymbolEncoder("a", "a")
	assert.True(t, errors.IsInvalidArgument(err))

	var fitted SymbolEncoder
	require.NoError(t, fitted.Fit([][]string{{"b", "a"}, {"b"}}))
	assert.Equal(t, []string{"a", "b"}, fitted.Classes())
}
