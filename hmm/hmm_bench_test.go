package hmm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gohmm/markov/topology"
)

func benchModel(b *testing.B) (*DiscreteModel, []int) {
	b.Helper()
	topo, err := topology.NewErgodic(8, topology.WithRandom(nil))
	require.NoError(b, err)
	m, err := NewDiscreteUniform(topo, 16, WithRandomState(1))
	require.NoError(b, err)
	sample, err := m.Generate(500)
	require.NoError(b, err)
	return m, sample.Observations
}

func BenchmarkDecode(b *testing.B) {
	m, obs := benchModel(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = m.Decode(obs)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	m, obs := benchModel(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Evaluate(obs)
	}
}

func BenchmarkPredict(b *testing.B) {
	m, obs := benchModel(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Predict(obs, 10)
	}
}
