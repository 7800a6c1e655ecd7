package hmm

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/gohmm/markov/topology"
	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

func TestGenerateLengths(t *testing.T) {
	m := newWeather(t, WithRandomState(1))
	for _, n := range []int{1, 2, 5, 50, 200} {
		sample, err := m.Generate(n)
		require.NoError(t, err)
		assert.Len(t, sample.Observations, n)
		assert.Len(t, sample.Path, n)
		assert.False(t, math.IsInf(sample.LogLikelihood, 0))
		assert.False(t, math.IsNaN(sample.LogLikelihood))
		for i := 0; i < n; i++ {
			assert.True(t, sample.Path[i] >= 0 && sample.Path[i] < m.States())
			assert.True(t, sample.Observations[i] >= 0 && sample.Observations[i] < m.Symbols())
		}
	}
}

func TestGenerateZeroAndNegative(t *testing.T) {
	m := newWeather(t)

	sample, err := m.Generate(0)
	require.NoError(t, err)
	assert.Empty(t, sample.Observations)
	assert.Empty(t, sample.Path)
	assert.True(t, math.IsInf(sample.LogLikelihood, -1))

	_, err = m.Generate(-1)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestGenerateIsReproducible(t *testing.T) {
	s1, err := newWeather(t, WithRandomState(42)).Generate(30)
	require.NoError(t, err)
	s2, err := newWeather(t, WithRandomState(42)).Generate(30)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)

	s3, err := newWeather(t, WithRandSource(rand.NewPCG(5, 6))).Generate(30)
	require.NoError(t, err)
	s4, err := newWeather(t, WithRandSource(rand.NewPCG(5, 6))).Generate(30)
	require.NoError(t, err)
	assert.Equal(t, s3, s4)
}

func TestGenerateLikelihoodMatchesEvaluatePath(t *testing.T) {
	for _, acc := range []Accumulation{AccumulateLogSum, AccumulateSum} {
		t.Run(acc.String(), func(t *testing.T) {
			m := newWeather(t, WithRandomState(3), WithPathAccumulation(acc))
			sample, err := m.Generate(25)
			require.NoError(t, err)
			ll, err := m.EvaluatePath(sample.Observations, sample.Path)
			require.NoError(t, err)
			assert.InDelta(t, ll, sample.LogLikelihood, 1e-12)
		})
	}
}

func TestGenerateFollowsForwardTopology(t *testing.T) {
	topo, err := topology.NewForward(4, 2)
	require.NoError(t, err)
	m, err := NewDiscreteUniform(topo, 3, WithRandomState(9))
	require.NoError(t, err)

	sample, err := m.Generate(100)
	require.NoError(t, err)
	assert.Equal(t, 0, sample.Path[0])
	for t0 := 1; t0 < len(sample.Path); t0++ {
		step := sample.Path[t0] - sample.Path[t0-1]
		assert.True(t, step == 0 || step == 1, "illegal transition at t=%d", t0)
	}
}

func TestGaussianModel(t *testing.T) {
	topo, err := topology.NewErgodic(2)
	require.NoError(t, err)
	m, err := NewGaussian(topo, []distuv.Normal{
		{Mu: 0, Sigma: 1},
		{Mu: 10, Sigma: 1},
	}, WithRandomState(11))
	require.NoError(t, err)
	assert.Equal(t, "gaussian-hmm", m.Name())

	path, _, err := m.Decode([]float64{0.1, -0.3, 9.8, 10.4})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, path)

	ll, err := m.Evaluate([]float64{0.1, 10})
	require.NoError(t, err)
	assert.False(t, math.IsInf(ll, 0))

	_, err = m.Evaluate([]float64{math.NaN()})
	assert.True(t, errors.IsInvalidArgument(err))

	sample, err := m.Generate(40)
	require.NoError(t, err)
	require.Len(t, sample.Observations, 40)
	for i, x := range sample.Observations {
		if sample.Path[i] == 0 {
			assert.Less(t, x, 5.0)
		} else {
			assert.Greater(t, x, 5.0)
		}
	}
}
