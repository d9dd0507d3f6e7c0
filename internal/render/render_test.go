package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/wheel-of-life/internal/layout"
)

const eps = 1e-9

func sampleLayout() layout.Layout {
	base := layout.Tab10()
	w := math.Pi / 2
	return layout.Layout{
		Bars: []layout.Bar{
			{Category: "Health", Key: "q1", Label: "How well do you sleep?", AngleStart: 0, AngularWidth: w, Radius: 8, Color: layout.Shade(base[0], 0.3)},
			{Category: "Health", Key: "q2", Label: "How well do you eat?", AngleStart: w, AngularWidth: w, Radius: 6, Color: base[0]},
			{Category: "Career", Key: "q1", Label: "How much do you enjoy your work?", AngleStart: 2 * w, AngularWidth: w, Radius: 9, Color: layout.Shade(base[1], 0.3)},
			{Category: "Career", Key: "q2", Label: "How clear is your next step?", AngleStart: 3 * w, AngularWidth: w, Radius: 7, Color: base[1]},
		},
		Legend: []layout.LegendEntry{
			{Category: "Health", Color: base[0]},
			{Category: "Career", Color: base[1]},
		},
		Categories:           2,
		QuestionsPerCategory: 2,
	}
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r, err := New()

		require.NoError(t, err)
		assert.Equal(t, 300.0, r.Options().DPI)
		assert.Equal(t, 9.0, r.Options().FontSize)
		assert.Equal(t, 0.5, r.Options().BarAlpha)
		assert.True(t, r.Options().Legend)
	})

	invalid := map[string]Option{
		"zero dpi":        WithDPI(0),
		"negative font":   WithFontSize(-1),
		"alpha above one": WithBarAlpha(1.5),
		"tiny radius":     WithPlotRadius(0.5),
	}
	for name, opt := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := New(opt)
			assert.Error(t, err)
		})
	}
}

func TestRender(t *testing.T) {
	t.Run("writes a png", func(t *testing.T) {
		r, err := New(WithDPI(72), WithPlotRadius(80))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, sampleLayout()))

		cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Greater(t, cfg.Width, 160)
		assert.GreaterOrEqual(t, cfg.Width, cfg.Height, "legend sits to the right of the wheel")
	})

	t.Run("legend disabled gives a square canvas", func(t *testing.T) {
		r, err := New(WithDPI(72), WithPlotRadius(80), WithLegend(false))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, sampleLayout()))

		cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, cfg.Width, cfg.Height)
	})

	t.Run("scores beyond the nominal range stay on canvas", func(t *testing.T) {
		l := sampleLayout()
		l.Bars[0].Radius = 500
		l.Bars[1].Radius = -4
		r, err := New(WithDPI(72), WithPlotRadius(80))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, l))

		img, err := png.Decode(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Greater(t, img.Bounds().Dx(), 160)
	})

	for name, radius := range map[string]float64{
		"nan":          math.NaN(),
		"inf":          math.Inf(1),
		"negative inf": math.Inf(-1),
	} {
		t.Run(name+" radius", func(t *testing.T) {
			l := sampleLayout()
			l.Bars[2].Radius = radius
			r, err := New(WithDPI(72))
			require.NoError(t, err)

			var buf bytes.Buffer
			err = r.Render(&buf, l)

			assert.ErrorIs(t, err, ErrInvalidRadius)
			assert.ErrorContains(t, err, "Career/q1")
			assert.Zero(t, buf.Len())
		})
	}

	t.Run("empty layout", func(t *testing.T) {
		r, err := New()
		require.NoError(t, err)

		var buf bytes.Buffer
		err = r.Render(&buf, layout.Layout{})

		assert.ErrorIs(t, err, ErrEmptyLayout)
		assert.Zero(t, buf.Len())
	})
}

func TestPolar(t *testing.T) {
	c := point{X: 100, Y: 100}

	east := polar(c, 0, 10)
	north := polar(c, math.Pi/2, 10)
	west := polar(c, math.Pi, 10)

	assert.InDelta(t, 110, east.X, eps)
	assert.InDelta(t, 100, east.Y, eps)
	assert.InDelta(t, 100, north.X, eps)
	assert.InDelta(t, 90, north.Y, eps, "y grows downward")
	assert.InDelta(t, 90, west.X, eps)
}

func TestWedge(t *testing.T) {
	c := point{X: 0, Y: 0}

	pts := wedge(c, 0, math.Pi/2, 10, math.Pi/8)

	require.Len(t, pts, 6)
	assert.Equal(t, c, pts[0])
	assert.InDelta(t, 10, pts[1].X, eps)
	assert.InDelta(t, -10, pts[len(pts)-1].Y, eps)
	for _, p := range pts[1:] {
		assert.InDelta(t, 10, math.Hypot(p.X, p.Y), eps)
	}

	tiny := wedge(c, 0, 0, 10, math.Pi/8)
	assert.Len(t, tiny, 3)
}

func TestTextOrigin(t *testing.T) {
	anchor := point{X: 50, Y: 50}

	t.Run("left aligned, horizontal", func(t *testing.T) {
		o := textOrigin(anchor, 40, 10, 0, layout.AlignLeft)

		assert.InDelta(t, 50, o.X, eps)
		assert.InDelta(t, 55, o.Y, eps)
	})

	t.Run("right aligned, flipped", func(t *testing.T) {
		o := textOrigin(anchor, 40, 10, 180, layout.AlignRight)

		// Text reads right-to-left on screen, so its start is 40px east of the anchor.
		assert.InDelta(t, 90, o.X, 1e-6)
		assert.InDelta(t, 45, o.Y, 1e-6)
	})

	t.Run("vertical text", func(t *testing.T) {
		o := textOrigin(anchor, 40, 10, 90, layout.AlignLeft)

		assert.InDelta(t, 55, o.X, 1e-6)
		assert.InDelta(t, 50, o.Y, 1e-6)
	})
}

func TestToDrawing(t *testing.T) {
	c := toDrawing(layout.Color{R: 1, G: 0, B: 0.5, A: 1}, 0.5)

	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(128), c.B)
	assert.Equal(t, uint8(128), c.A)
}
