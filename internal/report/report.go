// Package report formats wheels, render history and the question catalog as
// terminal tables.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/godilite/wheel-of-life/internal/catalog"
	"github.com/godilite/wheel-of-life/internal/layout"
	"github.com/godilite/wheel-of-life/internal/repository/models"
	"github.com/godilite/wheel-of-life/internal/responses"
)

const timeFormat = "2006-01-02 15:04:05"

var (
	borderColor = lipgloss.Color("#6c757d")

	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Foreground(borderColor).Italic(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers(headers...)
}

// Summary lists every category of a wheel with its legend color and score
// statistics.
func Summary(l layout.Layout, set responses.Set) string {
	t := newTable("", "Category", "Questions", "Mean", "Min", "Max", "Off-scale")

	offScale := make(map[string]int)
	for _, b := range l.OutOfRange() {
		offScale[b.Category]++
	}

	var swatches []lipgloss.Style
	for _, entry := range l.Legend {
		cat, ok := set.Category(entry.Category)
		if !ok {
			continue
		}
		mean, lo, hi := cat.Stats()
		swatches = append(swatches, cellStyle.Foreground(lipgloss.Color(entry.Color.Hex())))
		t.Row("██", entry.Category,
			fmt.Sprint(len(cat.Answers)),
			fmt.Sprintf("%.1f", mean),
			fmt.Sprintf("%.1f", lo),
			fmt.Sprintf("%.1f", hi),
			fmt.Sprint(offScale[entry.Category]))
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 0 && row < len(swatches):
			return swatches[row]
		case col >= 2:
			return numberStyle
		default:
			return cellStyle
		}
	})

	title := titleStyle.Render(fmt.Sprintf("Wheel of Life: %d categories × %d questions",
		l.Categories, l.QuestionsPerCategory))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.String())
}

// History lists past renders, newest first.
func History(records []models.RenderRecord) string {
	if len(records) == 0 {
		return mutedStyle.Render("no renders recorded")
	}

	t := newTable("ID", "Created", "Shape", "Input", "Output")
	for _, r := range records {
		t.Row(r.ID,
			r.CreatedAt.Local().Format(timeFormat),
			fmt.Sprintf("%d×%d", r.Categories, r.Questions),
			r.InputPath,
			r.OutputPath)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	return t.String()
}

// Averages lists the mean score per category of one stored render.
func Averages(avgs []models.CategoryAverage) string {
	t := newTable("Category", "Answers", "Average")
	for _, a := range avgs {
		t.Row(a.Category, fmt.Sprint(a.Count), fmt.Sprintf("%.2f", a.Average))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col > 0:
			return numberStyle
		default:
			return cellStyle
		}
	})
	return t.String()
}

// Scores lists the per-question scores of one render in wheel order.
func Scores(rows []models.ScoreRow) string {
	t := newTable("#", "Category", "Question", "Score")
	for _, r := range rows {
		t.Row(fmt.Sprint(r.Position+1), r.Category, r.Key, fmt.Sprintf("%g", r.Score))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 0 || col == 3:
			return numberStyle
		default:
			return cellStyle
		}
	})
	return t.String()
}

// Catalog prints every category with its question keys and text.
func Catalog(c *catalog.Catalog) string {
	var b strings.Builder
	for i, name := range c.Categories() {
		if i > 0 {
			b.WriteString("\n")
		}
		t := newTable("Key", "Question")
		for _, q := range c.Questions(name) {
			t.Row(q.Key, q.Question)
		}
		t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(name), t.String()))
		b.WriteString("\n")
	}
	return b.String()
}
