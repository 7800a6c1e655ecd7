// Package visualize は状態系列・尤度・予測分布を gonum/plot で描画します。
package visualize

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Interval は同じ状態が続く時刻の区間 [Start, End) です。
type Interval struct {
	State int
	Start int
	End   int
}

// Intervals は状態系列を連続区間に分割します。
func Intervals(path []int) []Interval {
	var out []Interval
	start := 0
	for start < len(path) {
		end := start + 1
		for end < len(path) && path[end] == path[start] {
			end++
		}
		out = append(out, Interval{State: path[start], Start: start, End: end})
		start = end
	}
	return out
}

// StateTimeline draws one filled box per interval on the row of its state.
type StateTimeline struct {
	Intervals []Interval
	Height    vg.Length
	BoxStyle  draw.LineStyle
	Colors    func(state int) color.Color
}

var _ plot.Plotter = (*StateTimeline)(nil)

// NewStateTimeline は path から StateTimeline を作成します。
func NewStateTimeline(path []int) *StateTimeline {
	return &StateTimeline{
		Intervals: Intervals(path),
		Height:    vg.Points(12),
		BoxStyle:  plotter.DefaultLineStyle,
		Colors:    plotutil.Color,
	}
}

// Plot implements plot.Plotter.
func (s *StateTimeline) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, iv := range s.Intervals {
		y := trY(float64(iv.State))
		if !c.ContainsY(y) {
			continue
		}
		xStart, xEnd := trX(float64(iv.Start)), trX(float64(iv.End))
		pts := []vg.Point{
			{X: xStart, Y: y - s.Height/2},
			{X: xEnd, Y: y - s.Height/2},
			{X: xEnd, Y: y + s.Height/2},
			{X: xStart, Y: y + s.Height/2},
			{X: xStart, Y: y - s.Height/2},
		}
		c.FillPolygon(s.Colors(iv.State), c.ClipPolygonX(pts[0:4]))
		c.StrokeLines(s.BoxStyle, c.ClipLinesX(pts)...)
	}
}

// DataRange implements plot.DataRanger.
func (s *StateTimeline) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(s.Intervals) == 0 {
		return 0, 1, 0, 1
	}
	xmin, xmax = float64(s.Intervals[0].Start), float64(s.Intervals[len(s.Intervals)-1].End)
	ymin, ymax = float64(s.Intervals[0].State), float64(s.Intervals[0].State)
	for _, iv := range s.Intervals {
		if v := float64(iv.State); v < ymin {
			ymin = v
		} else if v > ymax {
			ymax = v
		}
	}
	return xmin, xmax, ymin - 0.5, ymax + 0.5
}
