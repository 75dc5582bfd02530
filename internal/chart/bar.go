// Package chart shapes labeled counts into a bar chart and renders it either
// as HTML bar geometry or to a terminal.
package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// Style is the presentation config handed to the renderer.
type Style struct {
	Title string `json:"title"`
	Color string `json:"color"`
	Font  string `json:"font"`
}

var DefaultStyle = Style{
	Title: "Number of Recipes per Category",
	Color: "#667558",
	Font:  "Raleway",
}

type Point struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Bar is a categorical bar chart. Points keep their given order.
type Bar struct {
	Style  Style   `json:"style"`
	Points []Point `json:"points"`
	Max    int     `json:"max"`
}

func NewBar(style Style, points []Point) Bar {
	top := 0
	if len(points) > 0 {
		top = lo.MaxBy(points, func(a, b Point) bool { return a.Value > b.Value }).Value
	}
	return Bar{Style: style, Points: points, Max: top}
}

// Height is v as a percentage of the tallest bar. Everything is 0 when all
// bars are 0; any positive value is at least 1.
func (b Bar) Height(v int) int {
	if b.Max <= 0 || v <= 0 {
		return 0
	}
	return max(1, v*100/b.Max)
}

// Render draws the chart as horizontal bars, scaled so the tallest bar is width cells.
func (b Bar) Render(w io.Writer, width int) error {
	if width < 1 {
		width = 40
	}
	title := lipgloss.NewStyle().Bold(true)
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Style.Color))

	labelWidth := 0
	for _, p := range b.Points {
		labelWidth = max(labelWidth, lipgloss.Width(p.Label))
	}

	var sb strings.Builder
	sb.WriteString(title.Render(b.Style.Title))
	sb.WriteString("\n")
	for _, p := range b.Points {
		cells := 0
		if b.Max > 0 && p.Value > 0 {
			cells = max(1, p.Value*width/b.Max)
		}
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(p.Label))
		fmt.Fprintf(&sb, "%s%s │%s %d\n", p.Label, pad, bar.Render(strings.Repeat("█", cells)), p.Value)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
