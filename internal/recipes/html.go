package recipes

import (
	"io"
	"net/http"

	"mealdb/internal/chart"
	"mealdb/internal/mealdb"
	"mealdb/internal/templates"
)

// FormatListingHTML renders the listing view: filters, chart, statistics and table.
func FormatListingHTML(l Listing, writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Listing.Execute(writer, l); err != nil {
		http.Error(writer, "listing template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// FormatMealHTML renders a single meal.
func FormatMealHTML(meal mealdb.Meal, style chart.Style, writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderMeal(meal, style, writer); err != nil {
		http.Error(writer, "meal template error: "+err.Error(), http.StatusInternalServerError)
	}
}

func RenderMeal(meal mealdb.Meal, style chart.Style, w io.Writer) error {
	data := struct {
		Meal        mealdb.Meal
		Ingredients []mealdb.Ingredient
		Style       chart.Style
	}{
		Meal:        meal,
		Ingredients: meal.IngredientList(),
		Style:       style,
	}
	return templates.Meal.Execute(w, data)
}
