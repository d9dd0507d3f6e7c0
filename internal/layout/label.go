package layout

import "math"

type Alignment string

const (
	AlignLeft  Alignment = "left"
	AlignRight Alignment = "right"
)

// LabelPlacement positions a bar label in polar coordinates. Rotation is in
// degrees, counter-clockwise.
type LabelPlacement struct {
	Angle    float64
	Radius   float64
	Rotation float64
	Align    Alignment
}

// PlaceLabel anchors a label just past the end of a bar of the given height.
// Labels on the left half of the wheel, θ in [π/2, 3π/2), are flipped by 180°
// and right-aligned so they stay upright.
func PlaceLabel(angle, height float64) LabelPlacement {
	p := LabelPlacement{
		Angle:    angle,
		Radius:   LowerLimit + height + LabelPadding,
		Rotation: angle * 180 / math.Pi,
		Align:    AlignLeft,
	}
	if angle >= math.Pi/2 && angle < 3*math.Pi/2 {
		p.Align = AlignRight
		p.Rotation += 180
	}
	return p
}

// LabelPlacement returns where the bar's label is drawn.
func (b Bar) LabelPlacement() LabelPlacement {
	return PlaceLabel(b.AngleStart, b.Radius)
}
