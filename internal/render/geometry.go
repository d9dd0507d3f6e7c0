package render

import (
	"math"

	"github.com/godilite/wheel-of-life/internal/layout"
)

type point struct {
	X, Y float64
}

// polar converts a chart angle (radians, counter-clockwise from east) and a
// pixel radius to image coordinates, where y grows downward.
func polar(center point, theta, r float64) point {
	return point{
		X: center.X + r*math.Cos(theta),
		Y: center.Y - r*math.Sin(theta),
	}
}

// wedge returns the closed outline of a circular sector from the center out
// to radius r, sampled every maxStep radians or finer.
func wedge(center point, start, width, r, maxStep float64) []point {
	steps := int(math.Ceil(width / maxStep))
	if steps < 1 {
		steps = 1
	}
	pts := make([]point, 0, steps+2)
	pts = append(pts, center)
	for i := 0; i <= steps; i++ {
		pts = append(pts, polar(center, start+width*float64(i)/float64(steps), r))
	}
	return pts
}

func circle(center point, r float64) []point {
	pts := wedge(center, 0, 2*math.Pi, r, math.Pi/24)
	return pts[1:]
}

// textOrigin returns the baseline start of a string of the given pixel size
// so that the text is vertically centered on anchor and extends away from it
// (left alignment) or ends at it (right alignment). rotation is in degrees,
// counter-clockwise.
func textOrigin(anchor point, w, h, rotation float64, align layout.Alignment) point {
	phi := rotation * math.Pi / 180
	dir := point{X: math.Cos(phi), Y: -math.Sin(phi)}
	down := point{X: math.Sin(phi), Y: math.Cos(phi)}

	o := point{
		X: anchor.X + down.X*h/2,
		Y: anchor.Y + down.Y*h/2,
	}
	if align == layout.AlignRight {
		o.X -= dir.X * w
		o.Y -= dir.Y * w
	}
	return o
}
