package preprocessing

import (
	"sort"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// SymbolEncoder maps string labels (weather names, activity names, ...) to
// the symbol indices a discrete model consumes, and back. Indices follow the
// sorted label order.
type SymbolEncoder struct {
	classes []string
	index   map[string]int
}

// NewSymbolEncoder returns an encoder for a fixed alphabet. Duplicate labels
// are rejected.
func NewSymbolEncoder(labels ...string) (*SymbolEncoder, error) {
	e := &SymbolEncoder{}
	if err := e.fit(labels, true); err != nil {
		return nil, err
	}
	return e, nil
}

// Fit learns the alphabet from label sequences.
func (e *SymbolEncoder) Fit(seqs [][]string) error {
	if seqs == nil {
		return errors.NewMissingArgumentError("sequences")
	}
	var labels []string
	for _, seq := range seqs {
		labels = append(labels, seq...)
	}
	return e.fit(labels, false)
}

func (e *SymbolEncoder) fit(labels []string, strict bool) error {
	if len(labels) == 0 {
		return errors.NewModelError("SymbolEncoder.Fit", "empty data", errors.ErrEmptyData)
	}
	index := make(map[string]int, len(labels))
	for _, l := range labels {
		if _, ok := index[l]; ok && strict {
			return errors.NewValidationError("labels", "duplicate label", l)
		}
		index[l] = 0
	}
	classes := make([]string, 0, len(index))
	for l := range index {
		classes = append(classes, l)
	}
	sort.Strings(classes)
	for i, l := range classes {
		index[l] = i
	}
	e.classes, e.index = classes, index
	return nil
}

// Classes returns the labels in symbol order.
func (e *SymbolEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Symbols returns the alphabet size.
func (e *SymbolEncoder) Symbols() int {
	return len(e.classes)
}

// Encode converts one label sequence. Unknown labels are invalid arguments.
func (e *SymbolEncoder) Encode(labels []string) ([]int, error) {
	if e.index == nil {
		return nil, errors.NewModelError("SymbolEncoder.Encode", "not fitted", nil)
	}
	if labels == nil {
		return nil, errors.NewMissingArgumentError("labels")
	}
	out := make([]int, len(labels))
	for t, l := range labels {
		s, ok := e.index[l]
		if !ok {
			return nil, errors.Wrapf(errors.NewValidationError("label", "unknown label", l), "t=%d", t)
		}
		out[t] = s
	}
	return out, nil
}

// Decode converts symbols (or a decoded state path) back to labels.
func (e *SymbolEncoder) Decode(symbols []int) ([]string, error) {
	if e.index == nil {
		return nil, errors.NewModelError("SymbolEncoder.Decode", "not fitted", nil)
	}
	if symbols == nil {
		return nil, errors.NewMissingArgumentError("symbols")
	}
	out := make([]string, len(symbols))
	for t, s := range symbols {
		if s < 0 || s >= len(e.classes) {
			return nil, errors.Wrapf(errors.NewValidationError("symbol", "out of range", s), "t=%d", t)
		}
		out[t] = e.classes[s]
	}
	return out, nil
}
