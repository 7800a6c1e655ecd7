package visualize

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// StatePath は復元した状態系列をタイムラインとして描画します。
// labels が nil でなければ状態 i の行に labels[i] を表示します。
func StatePath(path []int, labels []string) (*plot.Plot, error) {
	if path == nil {
		return nil, errors.NewMissingArgumentError("path")
	}
	states := 0
	for _, s := range path {
		if s < 0 {
			return nil, errors.NewValidationError("path", "state must be non-negative", s)
		}
		if s+1 > states {
			states = s + 1
		}
	}
	if labels != nil && len(labels) < states {
		return nil, errors.NewDimensionError("visualize.StatePath", states, len(labels), 0)
	}

	p := plot.New()
	p.Title.Text = "Decoded state path"
	p.X.Label.Text = "t"
	p.Add(plotter.NewGrid(), NewStateTimeline(path))
	if labels == nil {
		labels = make([]string, states)
		for i := range labels {
			labels[i] = fmt.Sprintf("state %d", i)
		}
	}
	p.NominalY(labels...)
	return p, nil
}

// LikelihoodTrace は系列ごとの対数尤度を折れ線で描画します。-Inf は描画できません。
func LikelihoodTrace(logLiks []float64) (*plot.Plot, error) {
	if len(logLiks) == 0 {
		return nil, errors.NewValidationError("logLiks", "must not be empty", len(logLiks))
	}
	pts := make(plotter.XYs, len(logLiks))
	for i, v := range logLiks {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, errors.NewValidationError("logLiks", "values must be finite", v)
		}
		pts[i].X = float64(i)
		pts[i].Y = v
	}

	p := plot.New()
	p.Title.Text = "Log-likelihood"
	p.X.Label.Text = "sequence"
	p.Y.Label.Text = "log P(obs)"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p, "loglik", pts); err != nil {
		return nil, errors.Wrap(err, "add likelihood line")
	}
	return p, nil
}

// PredictedDistribution は 1 ステップ分の予測分布（対数確率）を棒グラフにします。
func PredictedDistribution(logProbs []float64, symbols []string) (*plot.Plot, error) {
	if len(logProbs) == 0 {
		return nil, errors.NewValidationError("logProbs", "must not be empty", len(logProbs))
	}
	if symbols != nil && len(symbols) != len(logProbs) {
		return nil, errors.NewDimensionError("visualize.PredictedDistribution", len(logProbs), len(symbols), 0)
	}
	values := make(plotter.Values, len(logProbs))
	for i, lp := range logProbs {
		values[i] = math.Exp(lp)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "build bar chart")
	}
	bars.Color = plotutil.Color(0)

	p := plot.New()
	p.Title.Text = "Predicted symbol distribution"
	p.Y.Label.Text = "P(symbol)"
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(bars)
	if symbols == nil {
		symbols = make([]string, len(logProbs))
		for i := range symbols {
			symbols[i] = fmt.Sprint(i)
		}
	}
	p.NominalX(symbols...)
	return p, nil
}
