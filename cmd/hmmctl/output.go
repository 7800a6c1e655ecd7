package main

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// Float は JSON でも -Inf を表現できる float64 です。
type Float float64

// MarshalJSON encodes infinities and NaN as strings.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

func floats(v []float64) []Float {
	out := make([]Float, len(v))
	for i, x := range v {
		out[i] = Float(x)
	}
	return out
}

type decodeResult struct {
	Path          []int `json:"path" yaml:"path"`
	LogLikelihood Float `json:"log_likelihood" yaml:"log_likelihood"`
}

type evaluateResult struct {
	LogLikelihood Float  `json:"log_likelihood" yaml:"log_likelihood"`
	Accumulation  string `json:"accumulation,omitempty" yaml:"accumulation,omitempty"`
}

type predictResult struct {
	Symbols          []int     `json:"symbols" yaml:"symbols"`
	LogProbabilities [][]Float `json:"log_probabilities" yaml:"log_probabilities"`
	LogLikelihood    Float     `json:"log_likelihood" yaml:"log_likelihood"`
}

type generateResult struct {
	Observations  []int `json:"observations" yaml:"observations"`
	Path          []int `json:"path" yaml:"path"`
	LogLikelihood Float `json:"log_likelihood" yaml:"log_likelihood"`
}

func writeResult(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encode json")
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "flush yaml")
	default:
		return errors.NewValidationError("format", "must be yaml or json", format)
	}
}
