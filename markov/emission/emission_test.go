package emission

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

func TestNewDiscrete(t *testing.T) {
	b := mat.NewDense(2, 3, []float64{
		0.1, 0.4, 0.5,
		0.6, 0.3, 0.1,
	})
	d, err := NewDiscrete(b, false, 1e-6)
	require.NoError(t, err)

	assert.Equal(t, 2, d.States())
	assert.Equal(t, 3, d.Symbols())
	assert.Equal(t, "discrete", d.Name())
	assert.InDelta(t, math.Log(0.4), d.LogProb(0, 1), 1e-12)
	assert.InDelta(t, math.Log(0.6), d.LogProb(1, 0), 1e-12)

	row := d.Row(1)
	row[0] = 0
	assert.InDelta(t, math.Log(0.6), d.LogProb(1, 0), 1e-12, "Row must return a copy")

	logB := d.LogProbs()
	logB.Set(0, 0, 0)
	assert.InDelta(t, math.Log(0.1), d.LogProb(0, 0), 1e-12, "LogProbs must return a copy")
}

func TestNewDiscreteLogSpace(t *testing.T) {
	b := mat.NewDense(1, 2, []float64{math.Log(0.25), math.Log(0.75)})
	d, err := NewDiscrete(b, true, 1e-6)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(0.75), d.LogProb(0, 1), 1e-12)
}

func TestNewDiscreteZeroProbability(t *testing.T) {
	b := mat.NewDense(1, 2, []float64{0, 1})
	d, err := NewDiscrete(b, false, 1e-6)
	require.NoError(t, err)
	assert.True(t, math.IsInf(d.LogProb(0, 0), -1))
	assert.Equal(t, 0.0, d.LogProb(0, 1))
}

func TestNewDiscreteInvalid(t *testing.T) {
	tests := []struct {
		name string
		m    mat.Matrix
	}{
		{"nil", nil},
		{"row sum", mat.NewDense(1, 2, []float64{0.5, 0.6})},
		{"negative", mat.NewDense(1, 2, []float64{-0.5, 1.5})},
		{"nan", mat.NewDense(1, 2, []float64{math.NaN(), 1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDiscrete(tt.m, false, 1e-6)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestNewUniformDiscrete(t *testing.T) {
	d, err := NewUniformDiscrete(2, 4)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for k := 0; k < 4; k++ {
			assert.InDelta(t, math.Log(0.25), d.LogProb(i, k), 1e-15)
		}
	}

	_, err = NewUniformDiscrete(0, 4)
	assert.True(t, errors.IsInvalidArgument(err))
	_, err = NewUniformDiscrete(2, 0)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestDiscreteValidate(t *testing.T) {
	d, err := NewUniformDiscrete(2, 3)
	require.NoError(t, err)
	assert.NoError(t, d.Validate(0))
	assert.NoError(t, d.Validate(2))
	assert.True(t, errors.IsInvalidArgument(d.Validate(3)))
	assert.True(t, errors.IsInvalidArgument(d.Validate(-1)))
}

func TestDiscreteSample(t *testing.T) {
	b := mat.NewDense(2, 3, []float64{
		0, 1, 0,
		0.5, 0, 0.5,
	})
	d, err := NewDiscrete(b, false, 1e-6)
	require.NoError(t, err)

	src := rand.NewPCG(7, 11)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, d.Sample(0, src))
		s := d.Sample(1, src)
		assert.Contains(t, []int{0, 2}, s)
	}
}

func TestGaussian(t *testing.T) {
	g, err := NewGaussian([]distuv.Normal{
		{Mu: 0, Sigma: 1},
		{Mu: 5, Sigma: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, g.States())
	assert.Equal(t, "gaussian", g.Name())

	want := -0.5 * math.Log(2*math.Pi)
	assert.InDelta(t, want, g.LogProb(0, 0), 1e-12)
	assert.Greater(t, g.LogProb(1, 5), g.LogProb(0, 5))

	assert.NoError(t, g.Validate(1.5))
	assert.True(t, errors.IsInvalidArgument(g.Validate(math.NaN())))
	assert.True(t, errors.IsInvalidArgument(g.Validate(math.Inf(1))))

	src := rand.NewPCG(3, 4)
	var sum float64
	for i := 0; i < 2000; i++ {
		sum += g.Sample(1, src)
	}
	assert.InDelta(t, 5.0, sum/2000, 0.3)
}

func TestNewGaussianInvalid(t *testing.T) {
	_, err := NewGaussian(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewGaussian([]distuv.Normal{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewGaussian([]distuv.Normal{{Mu: 0, Sigma: 0}})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewGaussian([]distuv.Normal{{Mu: math.NaN(), Sigma: 1}})
	assert.True(t, errors.IsInvalidArgument(err))
}
