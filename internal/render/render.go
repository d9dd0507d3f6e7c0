// Package render draws a wheel layout as a polar bar chart and encodes it as
// PNG.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/godilite/wheel-of-life/internal/layout"
)

var (
	ErrEmptyLayout   = errors.New("layout has no bars")
	ErrInvalidRadius = errors.New("bar radius is not finite")
)

const (
	arcStep        = math.Pi / 90
	legendRowScale = 1.8
)

type Options struct {
	DPI        float64
	FontSize   float64
	BarAlpha   float64
	EdgeWidth  float64
	PlotRadius float64
	Legend     bool
}

type Option func(*Options)

func WithDPI(dpi float64) Option {
	return func(o *Options) { o.DPI = dpi }
}

func WithFontSize(points float64) Option {
	return func(o *Options) { o.FontSize = points }
}

func WithBarAlpha(alpha float64) Option {
	return func(o *Options) { o.BarAlpha = alpha }
}

// WithPlotRadius sets the pixel radius of the tallest bar.
func WithPlotRadius(px float64) Option {
	return func(o *Options) { o.PlotRadius = px }
}

func WithLegend(enabled bool) Option {
	return func(o *Options) { o.Legend = enabled }
}

type Renderer struct {
	opts Options
}

// New creates a Renderer. Defaults produce a 300 DPI chart with 9pt labels
// and half-transparent bars.
func New(opts ...Option) (*Renderer, error) {
	options := Options{
		DPI:        300,
		FontSize:   9,
		BarAlpha:   0.5,
		EdgeWidth:  2,
		PlotRadius: 600,
		Legend:     true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.DPI <= 0 {
		return nil, fmt.Errorf("invalid dpi %v", options.DPI)
	}
	if options.FontSize <= 0 {
		return nil, fmt.Errorf("invalid font size %v", options.FontSize)
	}
	if options.BarAlpha < 0 || options.BarAlpha > 1 {
		return nil, fmt.Errorf("invalid bar alpha %v: must be within [0, 1]", options.BarAlpha)
	}
	if options.PlotRadius < 1 {
		return nil, fmt.Errorf("invalid plot radius %v", options.PlotRadius)
	}
	return &Renderer{opts: options}, nil
}

func (r *Renderer) Options() Options {
	return r.opts
}

// frame is the pixel geometry of one chart.
type frame struct {
	center  point
	scale   float64
	margin  float64
	textH   float64
	legendX float64
	width   int
	height  int
}

// Render draws l and writes it to w as PNG.
func (r *Renderer) Render(w io.Writer, l layout.Layout) error {
	if len(l.Bars) == 0 {
		return ErrEmptyLayout
	}
	for _, b := range l.Bars {
		if math.IsNaN(b.Radius) || math.IsInf(b.Radius, 0) {
			return fmt.Errorf("%w: %s/%s is %v", ErrInvalidRadius, b.Category, b.Key, b.Radius)
		}
	}

	measure, err := r.canvas(1, 1)
	if err != nil {
		return err
	}
	f := r.measure(measure, l)

	rr, err := r.canvas(f.width, f.height)
	if err != nil {
		return err
	}

	fillRect(rr, drawing.ColorWhite, f.width, f.height)
	r.drawBars(rr, f, l)
	r.drawLabels(rr, f, l)
	if r.opts.Legend {
		r.drawLegend(rr, f, l)
	}

	if err := rr.Save(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (r *Renderer) canvas(width, height int) (chart.Renderer, error) {
	rr, err := chart.PNG(width, height)
	if err != nil {
		return nil, fmt.Errorf("create canvas: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	rr.SetDPI(r.opts.DPI)
	rr.SetFont(font)
	rr.SetFontSize(r.opts.FontSize)
	rr.SetFontColor(drawing.ColorBlack)
	return rr, nil
}

// measure sizes the canvas so the longest label and the legend fit.
func (r *Renderer) measure(rr chart.Renderer, l layout.Layout) frame {
	maxR := math.Max(l.MaxRadius(), 1)
	scale := r.opts.PlotRadius / maxR

	var labelW, textH float64
	for _, b := range l.Bars {
		box := rr.MeasureText(b.Label)
		labelW = math.Max(labelW, float64(box.Width()))
		textH = math.Max(textH, float64(box.Height()))
	}

	margin := math.Round(r.opts.DPI / 6)
	reach := (layout.LowerLimit+maxR+layout.LabelPadding)*scale + labelW
	half := math.Ceil(reach + margin)

	f := frame{
		center:  point{X: half, Y: half},
		scale:   scale,
		margin:  margin,
		textH:   textH,
		legendX: 2 * half,
		width:   int(2 * half),
		height:  int(2 * half),
	}

	if r.opts.Legend {
		var nameW float64
		for _, e := range l.Legend {
			box := rr.MeasureText(e.Category)
			nameW = math.Max(nameW, float64(box.Width()))
			f.textH = math.Max(f.textH, float64(box.Height()))
		}
		row := f.textH * legendRowScale
		f.width += int(math.Ceil(row + nameW + 2*margin))
		legendH := int(math.Ceil(row*float64(len(l.Legend)) + 2*margin))
		if legendH > f.height {
			f.height = legendH
		}
	}
	return f
}

func (r *Renderer) drawBars(rr chart.Renderer, f frame, l layout.Layout) {
	rr.SetStrokeColor(drawing.ColorWhite)
	rr.SetStrokeWidth(r.opts.EdgeWidth)
	for _, b := range l.Bars {
		radius := math.Max(b.Radius, 0) * f.scale
		rr.SetFillColor(toDrawing(b.Color, r.opts.BarAlpha))
		trace(rr, wedge(f.center, b.AngleStart, b.AngularWidth, radius, arcStep))
		rr.FillStroke()
	}
}

func (r *Renderer) drawLabels(rr chart.Renderer, f frame, l layout.Layout) {
	rr.SetFontColor(drawing.ColorBlack)
	for _, b := range l.Bars {
		p := b.LabelPlacement()
		anchor := polar(f.center, p.Angle, p.Radius*f.scale)
		box := rr.MeasureText(b.Label)
		o := textOrigin(anchor, float64(box.Width()), float64(box.Height()), p.Rotation, p.Align)

		rr.SetTextRotation(-p.Rotation * math.Pi / 180)
		rr.Text(b.Label, round(o.X), round(o.Y))
		rr.ClearTextRotation()
	}
}

func (r *Renderer) drawLegend(rr chart.Renderer, f frame, l layout.Layout) {
	row := f.textH * legendRowScale
	markerR := f.textH / 2
	x := f.legendX
	y := f.margin + row/2

	for _, e := range l.Legend {
		c := toDrawing(e.Color, 1)
		rr.SetFillColor(c)
		trace(rr, circle(point{X: x + markerR, Y: y}, markerR))
		rr.Fill()

		rr.SetFontColor(drawing.ColorBlack)
		rr.Text(e.Category, round(x+3*markerR), round(y+f.textH/2))
		y += row
	}
}

func fillRect(rr chart.Renderer, c drawing.Color, width, height int) {
	rr.SetFillColor(c)
	rr.MoveTo(0, 0)
	rr.LineTo(width, 0)
	rr.LineTo(width, height)
	rr.LineTo(0, height)
	rr.Close()
	rr.Fill()
}

func trace(rr chart.Renderer, pts []point) {
	if len(pts) == 0 {
		return
	}
	rr.MoveTo(round(pts[0].X), round(pts[0].Y))
	for _, p := range pts[1:] {
		rr.LineTo(round(p.X), round(p.Y))
	}
	rr.Close()
}

func toDrawing(c layout.Color, alpha float64) drawing.Color {
	r, g, b, _ := c.RGBA8()
	a := layout.Color{A: alpha * c.A}
	_, _, _, a8 := a.RGBA8()
	return drawing.Color{R: r, G: g, B: b, A: a8}
}

func round(v float64) int {
	return int(math.Round(v))
}
