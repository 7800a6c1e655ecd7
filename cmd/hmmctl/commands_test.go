package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/gohmm/core/model"
	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

func writeWeatherModel(t *testing.T) string {
	t.Helper()
	w := &model.Weights{
		ModelType:   "discrete-hmm",
		Version:     model.FormatVersion,
		Name:        "weather",
		States:      2,
		Symbols:     3,
		Transitions: [][]float64{{0.7, 0.3}, {0.4, 0.6}},
		Emissions:   [][]float64{{0.1, 0.4, 0.5}, {0.6, 0.3, 0.1}},
		Initial:     []float64{0.6, 0.4},
	}
	path := filepath.Join(t.TempDir(), "weather.yaml")
	require.NoError(t, model.WriteFile(w, path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeCommand(t *testing.T) {
	modelPath := writeWeatherModel(t)
	out, err := run(t, "decode", "--model", modelPath, "--obs", "0,1,2")
	require.NoError(t, err)

	var res struct {
		Path          []int   `yaml:"path"`
		LogLikelihood float64 `yaml:"log_likelihood"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{1, 0, 0}, res.Path)
	assert.InDelta(t, -4.3095199438871337, res.LogLikelihood, 1e-12)
}

func TestEvaluateCommand(t *testing.T) {
	modelPath := writeWeatherModel(t)

	out, err := run(t, "evaluate", "-m", modelPath, "--obs", "0,1,2", "--format", "json")
	require.NoError(t, err)
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, -3.3928721329161653, res["log_likelihood"], 1e-12)

	out, err = run(t, "evaluate", "-m", modelPath, "--obs", "0,1,2", "--path", "1,0,0", "--sum-paths")
	require.NoError(t, err)
	assert.Contains(t, out, "accumulation: sum")

	// 空の系列は -Inf（JSON では文字列）
	out, err = run(t, "evaluate", "-m", modelPath, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"-Inf"`)
}

func TestPredictAndGenerateCommands(t *testing.T) {
	modelPath := writeWeatherModel(t)

	out, err := run(t, "predict", "-m", modelPath, "--obs", "0,1,2", "--next", "3")
	require.NoError(t, err)
	var pred struct {
		Symbols []int `yaml:"symbols"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &pred))
	assert.Equal(t, []int{1, 1, 1}, pred.Symbols)

	out1, err := run(t, "generate", "-m", modelPath, "-n", "8", "--seed", "4")
	require.NoError(t, err)
	out2, err := run(t, "generate", "-m", modelPath, "-n", "8", "--seed", "4")
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestInitAndPlotCommands(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "left-right.json")
	_, err := run(t, "init", "--states", "3", "--symbols", "4", "--topology", "forward", "--deepness", "2", "--out", modelPath)
	require.NoError(t, err)

	w, err := model.ReadFile(modelPath)
	require.NoError(t, err)
	assert.Equal(t, 3, w.States)
	assert.Equal(t, 4, w.Symbols)
	assert.Equal(t, "forward", w.Topology)

	pngPath := filepath.Join(dir, "path.png")
	_, err = run(t, "plot", "-m", modelPath, "--obs", "0,1,2,3", "--out", pngPath)
	require.NoError(t, err)
	info, err := os.Stat(pngPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	svgPath := filepath.Join(dir, "next.svg")
	_, err = run(t, "plot", "-m", modelPath, "--kind", "predict", "--obs", "0", "--out", svgPath)
	require.NoError(t, err)
}

func TestCommandErrors(t *testing.T) {
	modelPath := writeWeatherModel(t)

	_, err := run(t, "decode", "--obs", "0")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = run(t, "decode", "-m", modelPath, "--obs", "0,7")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = run(t, "decode", "-m", modelPath, "--obs", "0", "--format", "xml")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = run(t, "init", "--topology", "ring", "--out", filepath.Join(t.TempDir(), "m.yaml"))
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = run(t, "decode", "-m", modelPath, "--log-level", "loud")
	assert.Error(t, err)
}
