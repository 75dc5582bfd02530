package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"mealdb/internal/mealdb"
	"mealdb/internal/recipes"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	colorHeader = color.New(color.Bold)
	colorStats  = color.New(color.FgGreen)
	colorWarn   = color.New(color.FgYellow)
	colorMuted  = color.New(color.FgWhite, color.Faint)
)

func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func disableColor() {
	color.NoColor = true
}

const nameWidth = 36

func printListing(w io.Writer, l recipes.Listing, width int, withChart bool) error {
	if len(l.FailedLetters) > 0 {
		colorWarn.Fprintf(w, "warning: meals starting with %s could not be loaded\n\n", strings.Join(l.FailedLetters, ", "))
	}

	if withChart {
		// leave room for the labels and counts
		if err := l.Chart.Render(w, max(10, min(width-24, 60))); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	colorHeader.Fprintf(w, "%-7s %-*s %-14s %-12s %s\n", "ID", nameWidth, "Name", "Category", "Area", "Ingredients")
	for _, r := range l.Rows {
		fmt.Fprintf(w, "%-7s %-*s %-14s %-12s %d\n", r.ID, nameWidth, clip(r.Name, nameWidth), r.Category, r.Area, r.Ingredients)
	}
	if len(l.Rows) == 0 {
		colorMuted.Fprintln(w, "no meals match")
	}

	fmt.Fprintln(w)
	colorStats.Fprintf(w, "Total # of Meals: %d\n", l.Total)
	colorStats.Fprintf(w, "Displaying: %d meals\n", l.Displaying)
	colorStats.Fprintf(w, "Mean of No. of Ingredients: %s\n", l.Summary.MeanString())
	colorStats.Fprintf(w, "Mode of No. of Ingredients: %s\n", l.Summary.ModeString())
	colorStats.Fprintf(w, "Range of No. of Ingredients: %s\n", l.Summary.RangeString())
	return nil
}

func printMeal(w io.Writer, m mealdb.Meal) error {
	colorHeader.Fprintf(w, "Meal: %s\n", m.Name)
	colorMuted.Fprintf(w, "%s · %s\n", m.Category, m.Area)
	if tags := m.TagList(); len(tags) > 0 {
		colorMuted.Fprintf(w, "Tags: %s\n", strings.Join(tags, ", "))
	}

	fmt.Fprintln(w)
	colorHeader.Fprintln(w, "Ingredients")
	for _, ing := range m.IngredientList() {
		if ing.Measure != "" {
			fmt.Fprintf(w, "  - %s %s\n", ing.Measure, ing.Name)
			continue
		}
		fmt.Fprintf(w, "  - %s\n", ing.Name)
	}

	fmt.Fprintln(w)
	colorHeader.Fprintln(w, "Recipe")
	fmt.Fprintln(w, strings.TrimSpace(m.Instructions))
	if m.YouTube != "" {
		fmt.Fprintf(w, "\nYoutube Link: %s\n", m.YouTube)
	}
	if m.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", m.Source)
	}
	_, err := fmt.Fprintln(w)
	return err
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
