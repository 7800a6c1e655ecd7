package model

import (
	"encoding/gob"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// SaveModel は Weights を gob 形式でファイルに保存します。
//
// 使用例:
//
//	w, _ := model.ExportWeights()
//	err := model.SaveModel(w, "weather.gob")
func SaveModel(w *Weights, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()
	return SaveModelToWriter(w, file)
}

// LoadModel は gob 形式のファイルから Weights を読み込みます。
func LoadModel(filename string) (*Weights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()
	return LoadModelFromReader(file)
}

// SaveModelToWriter は Weights を gob 形式で w に書き込みます。
func SaveModelToWriter(weights *Weights, w io.Writer) error {
	if weights == nil {
		return errors.NewMissingArgumentError("weights")
	}
	if err := gob.NewEncoder(w).Encode(weights); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader は r から gob 形式の Weights を読み込み検証します。
func LoadModelFromReader(r io.Reader) (*Weights, error) {
	var w Weights
	if err := gob.NewDecoder(r).Decode(&w); err != nil {
		return nil, errors.Wrap(err, "failed to decode model")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// ReadFile loads weights from a .json, .yaml/.yml or .gob file, chosen by
// extension.
func ReadFile(filename string) (*Weights, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".gob" {
		return LoadModel(filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	var w Weights
	switch ext {
	case ".json":
		err = w.FromJSON(data)
	case ".yaml", ".yml":
		err = w.FromYAML(data)
	default:
		return nil, errors.NewValidationError("filename", "unsupported extension", ext)
	}
	if err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// WriteFile stores weights in the format selected by the file extension.
func WriteFile(w *Weights, filename string) error {
	if w == nil {
		return errors.NewMissingArgumentError("weights")
	}
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gob":
		return SaveModel(w, filename)
	case ".json":
		data, err = w.ToJSON()
	case ".yaml", ".yml":
		data, err = w.ToYAML()
	default:
		return errors.NewValidationError("filename", "unsupported extension", filepath.Ext(filename))
	}
	if err != nil {
		return errors.Wrap(err, "encode weights")
	}
	return errors.Wrapf(os.WriteFile(filename, data, 0o644), "write %s", filename)
}
