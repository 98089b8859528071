// Package chart renders dashboard series as PNG images.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/anrid/lifecycle-stats/pkg/stats"
)

// ErrUnknownChart is returned by Render for an unknown chart name.
var ErrUnknownChart = errors.New("unknown chart")

// Names of the charts available for a report.
const (
	Counts     = "counts"
	Ratios     = "ratios"
	Comparison = "comparison"
)

var (
	width  = 10 * vg.Inch
	height = 5 * vg.Inch

	palette = []color.Color{
		color.RGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF},
		color.RGBA{R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
		color.RGBA{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
		color.RGBA{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF},
	}
	referenceColor = color.Gray{Y: 128}
	highlightColor = color.RGBA{R: 0xDC, G: 0x14, B: 0x3C, A: 0xFF}
	dashes         = []vg.Length{vg.Points(5), vg.Points(5)}
)

// Render writes the named chart of r as PNG.
func Render(w io.Writer, name string, r *stats.Report) error {
	switch name {
	case Counts:
		return Lines(w, r.Counts)
	case Ratios:
		return Lines(w, r.Ratios)
	case Comparison:
		return Scatter(w, r.Comparison, r.Region)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
}

// Lines plots date series with their dashed reference lines.
func Lines(w io.Writer, c stats.Chart) error {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XAxis
	p.Y.Label.Text = c.YAxis
	p.X.Tick.Marker = plot.TimeTicks{Format: stats.DateLayout}
	p.Add(plotter.NewGrid())

	for i, s := range c.Series {
		pts := make(plotter.XYs, 0, len(s.Data))
		for _, d := range s.Data {
			if d.Value.IsNaN() {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(d.Date.Unix()), Y: float64(d.Value)})
		}
		if len(pts) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Name, err)
		}
		line.Color = palette[i%len(palette)]
		points.GlyphStyle.Color = palette[i%len(palette)]
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
	}

	for _, ref := range c.References {
		if ref.Value.IsNaN() {
			continue
		}
		y := float64(ref.Value)
		f := plotter.NewFunction(func(float64) float64 { return y })
		f.Color = referenceColor
		f.Dashes = dashes
		p.Add(f)
		p.Legend.Add(ref.Name, f)
	}

	return write(w, p)
}

// Scatter plots every region's mean DUI against mean BUBI, marks the
// selected region and draws the benchmark crosshair.
func Scatter(w io.Writer, c stats.Comparison, selected string) error {
	p := plot.New()
	p.Title.Text = "National Comparison"
	p.X.Label.Text = "DUI"
	p.Y.Label.Text = "BUBI"
	p.Add(plotter.NewGrid())

	var (
		pts    plotter.XYs
		labels []string
		minY   = math.Inf(1)
		maxY   = math.Inf(-1)
	)
	for _, r := range c.Regions {
		if r.DUI.IsNaN() || r.BUBI.IsNaN() {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(r.DUI), Y: float64(r.BUBI)})
		labels = append(labels, r.Region)
		minY = math.Min(minY, float64(r.BUBI))
		maxY = math.Max(maxY, float64(r.BUBI))
	}
	if len(pts) == 0 {
		return write(w, p)
	}

	regions, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	regions.GlyphStyle.Color = palette[0]
	regions.GlyphStyle.Radius = vg.Points(4)
	regions.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(regions)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(names)

	if c.Selected != nil && !c.Selected.DUI.IsNaN() && !c.Selected.BUBI.IsNaN() {
		star, err := plotter.NewScatter(plotter.XYs{{X: float64(c.Selected.DUI), Y: float64(c.Selected.BUBI)}})
		if err != nil {
			return err
		}
		star.GlyphStyle.Color = highlightColor
		star.GlyphStyle.Radius = vg.Points(9)
		star.GlyphStyle.Shape = draw.PyramidGlyph{}
		p.Add(star)
		p.Legend.Add(selected, star)
	}

	if !c.Benchmark.BUBI.IsNaN() {
		bubi := float64(c.Benchmark.BUBI)
		h := plotter.NewFunction(func(float64) float64 { return bubi })
		h.Color = referenceColor
		h.Dashes = dashes
		p.Add(h)
		minY = math.Min(minY, bubi)
		maxY = math.Max(maxY, bubi)
	}
	if !c.Benchmark.DUI.IsNaN() {
		dui := float64(c.Benchmark.DUI)
		v, err := plotter.NewLine(plotter.XYs{{X: dui, Y: minY}, {X: dui, Y: maxY}})
		if err != nil {
			return err
		}
		v.Color = referenceColor
		v.Dashes = dashes
		p.Add(v)
	}

	return write(w, p)
}

func write(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
