// Package model はシーケンスモデルが実装する共通インターフェースと、
// パラメータのシリアライズ形式を定義します。
package model

// Evaluator は観測系列の対数尤度を計算できるモデルです。
type Evaluator[O any] interface {
	// Evaluate returns log P(obs).
	Evaluate(obs []O) (float64, error)
}

// Decoder は観測系列から最も尤もらしい状態系列を復元できるモデルです。
type Decoder[O any] interface {
	// Decode returns the most likely state path and its log-likelihood.
	Decode(obs []O) ([]int, float64, error)
}

// SequenceModel combines decoding and evaluation.
type SequenceModel[O any] interface {
	Evaluator[O]
	Decoder[O]

	// States returns the number of hidden states.
	States() int
}

// WeightExporter is implemented by models whose parameters can be written
// out as Weights and read back.
type WeightExporter interface {
	ExportWeights() (*Weights, error)
	ImportWeights(w *Weights) error
}
