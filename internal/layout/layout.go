// Package layout partitions the full circle into one slice per answered
// question and computes the bar, color and label geometry of a wheel.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/godilite/wheel-of-life/internal/responses"
)

const (
	// LowerLimit and UpperLimit are the nominal display bounds of a score.
	// Scores outside them are laid out unchanged.
	LowerLimit     = 2.0
	UpperLimit     = 50.0
	LabelPadding   = 2.0
	MaxLabelLength = 70
)

var (
	ErrEmptyInput        = errors.New("empty response set")
	ErrInconsistentShape = errors.New("categories have differing question counts")
)

// QuestionLookup resolves question text for a (category, key) pair.
type QuestionLookup interface {
	Lookup(category, key string) (string, error)
}

// Bar is one slice of the wheel.
type Bar struct {
	Category     string  `json:"category"`
	Key          string  `json:"key"`
	Label        string  `json:"label"`
	AngleStart   float64 `json:"angle_start"`
	AngularWidth float64 `json:"angular_width"`
	Radius       float64 `json:"radius"`
	Color        Color   `json:"color"`
}

// LegendEntry maps a category to its base color.
type LegendEntry struct {
	Category string `json:"category"`
	Color    Color  `json:"color"`
}

type Layout struct {
	Bars                 []Bar         `json:"bars"`
	Legend               []LegendEntry `json:"legend"`
	Categories           int           `json:"categories"`
	QuestionsPerCategory int           `json:"questions_per_category"`
}

// MaxRadius returns the largest bar radius, or 0 for an empty layout.
func (l Layout) MaxRadius() float64 {
	var maxR float64
	for i, b := range l.Bars {
		if i == 0 || b.Radius > maxR {
			maxR = b.Radius
		}
	}
	return maxR
}

// OutOfRange returns the bars whose radius falls outside
// [LowerLimit, UpperLimit]. They are still drawn at their raw height.
func (l Layout) OutOfRange() []Bar {
	var out []Bar
	for _, b := range l.Bars {
		if b.Radius < LowerLimit || b.Radius > UpperLimit {
			out = append(out, b)
		}
	}
	return out
}

type options struct {
	palette []Color
}

type Option func(*options)

// WithPalette overrides the category base colors.
func WithPalette(palette []Color) Option {
	return func(o *options) {
		if len(palette) > 0 {
			o.palette = palette
		}
	}
}

// Build lays out every (category, question) pair of set on a full circle.
// Slice idx = categoryIndex*Q + questionIndex starts at idx*2π/(C*Q).
func Build(set responses.Set, questions QuestionLookup, opts ...Option) (Layout, error) {
	o := &options{palette: Tab10()}
	for _, opt := range opts {
		opt(o)
	}

	if set.Len() == 0 {
		return Layout{}, ErrEmptyInput
	}
	q, err := questionCount(set)
	if err != nil {
		return Layout{}, err
	}

	c := set.Len()
	width := 2 * math.Pi / float64(c*q)

	out := Layout{
		Bars:                 make([]Bar, 0, c*q),
		Legend:               make([]LegendEntry, 0, c),
		Categories:           c,
		QuestionsPerCategory: q,
	}

	for i, category := range set.Categories {
		base := o.palette[(i%c)%len(o.palette)]
		out.Legend = append(out.Legend, LegendEntry{Category: category.Name, Color: base})

		for j, answer := range category.Answers {
			text, err := questions.Lookup(category.Name, answer.Key)
			if err != nil {
				return Layout{}, err
			}

			idx := i*q + j
			out.Bars = append(out.Bars, Bar{
				Category:     category.Name,
				Key:          answer.Key,
				Label:        truncate(text, MaxLabelLength),
				AngleStart:   float64(idx) * width,
				AngularWidth: width,
				Radius:       answer.Score,
				Color:        Shade(base, ShadeFraction(j, q)),
			})
		}
	}
	return out, nil
}

// questionCount returns the uniform per-category question count, taken from
// the first category.
func questionCount(set responses.Set) (int, error) {
	first := set.Categories[0]
	q := len(first.Answers)
	if q == 0 {
		return 0, fmt.Errorf("%w: category %q has no questions", ErrEmptyInput, first.Name)
	}
	for _, c := range set.Categories[1:] {
		if len(c.Answers) != q {
			return 0, fmt.Errorf("%w: %q has %d, %q has %d",
				ErrInconsistentShape, first.Name, q, c.Name, len(c.Answers))
		}
	}
	return q, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
