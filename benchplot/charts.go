// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/flux-utah/confirm-analysis/benchcolor"
	"github.com/flux-utah/confirm-analysis/benchframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const boxWidth = 20

// BoxPlot returns a figure with one box per distinct value of column
// x, summarizing the numeric column y, filled with the category's
// color from cmap. NaN values of y are ignored.
func BoxPlot(t *table.Table, x, y string, cmap benchcolor.Map) (*Figure, error) {
	cats, err := benchframe.Unique(t, x)
	if err != nil {
		return nil, err
	}
	keys, err := benchframe.Strings(t, x)
	if err != nil {
		return nil, err
	}
	ys, err := benchframe.Floats(t, y)
	if err != nil {
		return nil, err
	}

	byCat := make(map[string]plotter.Values)
	for i, k := range keys {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		byCat[k] = append(byCat[k], ys[i])
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s by %s", y, x)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())

	names := make([]string, len(cats))
	for i, cat := range cats {
		names[i] = fmt.Sprint(cat)
		vals := byCat[names[i]]
		if len(vals) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(boxWidth), float64(i), vals)
		if err != nil {
			return nil, fmt.Errorf("box for %s=%s: %v", x, names[i], err)
		}
		box.FillColor = cmap.Get(cat)
		p.Add(box)
	}
	p.NominalX(names...)
	return NewFigure(p), nil
}

// Scatter returns a figure plotting numeric column y against numeric
// column x, with one series per distinct value of column by, drawn in
// that value's color from cmap and named in the legend.
func Scatter(t *table.Table, x, y, by string, cmap benchcolor.Map) (*Figure, error) {
	cats, err := benchframe.Unique(t, by)
	if err != nil {
		return nil, err
	}
	keys, err := benchframe.Strings(t, by)
	if err != nil {
		return nil, err
	}
	xs, err := benchframe.Floats(t, x)
	if err != nil {
		return nil, err
	}
	ys, err := benchframe.Floats(t, y)
	if err != nil {
		return nil, err
	}

	byCat := make(map[string]plotter.XYs)
	for i, k := range keys {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		byCat[k] = append(byCat[k], plotter.XY{X: xs[i], Y: ys[i]})
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", y, x)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	for _, cat := range cats {
		name := fmt.Sprint(cat)
		pts := byCat[name]
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("series %s=%s: %v", by, name, err)
		}
		s.GlyphStyle.Color = cmap.Get(cat)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(name, s)
	}
	return NewFigure(p), nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
