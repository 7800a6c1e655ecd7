package hmm

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/gohmm/markov/emission"
	"github.com/YuminosukeSato/gohmm/markov/topology"
	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// NewGaussian は各状態が正規分布で実数値を出力する HMM を構築します。
// dists[i] が状態 i の出力分布です。
func NewGaussian(topo topology.Topology, dists []distuv.Normal, opts ...Option) (*Model[float64], error) {
	if topo == nil {
		return nil, errors.NewMissingArgumentError("topology")
	}
	if dists != nil && len(dists) != topo.States() {
		return nil, errors.NewDimensionError("hmm.NewGaussian", topo.States(), len(dists), 0)
	}
	em, err := emission.NewGaussian(dists)
	if err != nil {
		return nil, err
	}
	return New[float64](topo, em, opts...)
}
