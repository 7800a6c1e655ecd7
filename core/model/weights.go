package model

import (
	"encoding/json"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// FormatVersion は Weights のシリアライズ形式のバージョンです。
const FormatVersion = "1"

// Weights は離散 HMM のパラメータ (A, B, π) を線形空間で表したものです。
// JSON と YAML のどちらでも読み書きできます。
type Weights struct {
	// ModelType はモデルの種類（"discrete-hmm" など）
	ModelType string `json:"model_type" yaml:"model_type"`

	// Version は形式のバージョン（互換性チェック用）
	Version string `json:"version" yaml:"version"`

	// Name はモデル名（オプション）
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Topology は生成元トポロジーの名前（オプション）
	Topology string `json:"topology,omitempty" yaml:"topology,omitempty"`

	States  int `json:"states" yaml:"states"`
	Symbols int `json:"symbols" yaml:"symbols"`

	// Transitions は states × states の遷移確率行列 A
	Transitions [][]float64 `json:"transitions" yaml:"transitions"`

	// Emissions は states × symbols の出力確率行列 B
	Emissions [][]float64 `json:"emissions" yaml:"emissions"`

	// Initial は初期状態分布 π
	Initial []float64 `json:"initial" yaml:"initial"`

	// Accumulation は経路尤度の累積方法（"logsum" または "sum"）
	Accumulation string `json:"accumulation,omitempty" yaml:"accumulation,omitempty"`

	// Metadata は追加のメタデータ
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ToJSON は Weights を整形済み JSON にシリアライズします。
func (w *Weights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}

// FromJSON は JSON から Weights をデシリアライズします。
func (w *Weights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, w); err != nil {
		return errors.Wrap(err, "decode weights json")
	}
	return nil
}

// ToYAML serialises the weights as YAML.
func (w *Weights) ToYAML() ([]byte, error) {
	return yaml.Marshal(w)
}

// FromYAML decodes YAML into w.
func (w *Weights) FromYAML(data []byte) error {
	if err := yaml.Unmarshal(data, w); err != nil {
		return errors.Wrap(err, "decode weights yaml")
	}
	return nil
}

// Validate は形状と値の範囲を検査します。行和の検査はモデル構築時に行います。
func (w *Weights) Validate() error {
	if w.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", w.ModelType)
	}
	if w.Version == "" {
		return errors.NewValidationError("version", "is required", w.Version)
	}
	if w.States <= 0 {
		return errors.NewValidationError("states", "must be positive", w.States)
	}
	if w.Symbols <= 0 {
		return errors.NewValidationError("symbols", "must be positive", w.Symbols)
	}
	if err := checkRows("transitions", w.Transitions, w.States, w.States); err != nil {
		return err
	}
	if err := checkRows("emissions", w.Emissions, w.States, w.Symbols); err != nil {
		return err
	}
	if len(w.Initial) != w.States {
		return errors.NewDimensionError("initial", w.States, len(w.Initial), 0)
	}
	return checkValues("initial", w.Initial)
}

func checkRows(name string, rows [][]float64, r, c int) error {
	if len(rows) != r {
		return errors.NewDimensionError(name, r, len(rows), 0)
	}
	for _, row := range rows {
		if len(row) != c {
			return errors.NewDimensionError(name, c, len(row), 1)
		}
		if err := checkValues(name, row); err != nil {
			return err
		}
	}
	return nil
}

func checkValues(name string, v []float64) error {
	for _, x := range v {
		if math.IsNaN(x) || x < 0 || x > 1+1e-9 {
			return errors.NewValidationError(name, "probabilities must lie in [0, 1]", x)
		}
	}
	return nil
}

// Clone は Weights のディープコピーを作成します。
func (w *Weights) Clone() *Weights {
	clone := *w
	clone.Transitions = cloneRows(w.Transitions)
	clone.Emissions = cloneRows(w.Emissions)
	clone.Initial = append([]float64(nil), w.Initial...)
	if w.Metadata != nil {
		clone.Metadata = make(map[string]string, len(w.Metadata))
		for k, v := range w.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}

func cloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
