package recipes

import (
	"mealdb/internal/mealdb"
)

type statsResponse struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Modes []int    `json:"modes"`
	Range *int     `json:"range"`
}

type listingResponse struct {
	Criteria       Criteria        `json:"criteria"`
	Total          int             `json:"total"`
	Displaying     int             `json:"displaying"`
	Stats          statsResponse   `json:"stats"`
	CategoryCounts []CategoryCount `json:"category_counts"`
	Meals          []Row           `json:"meals"`
	Categories     []string        `json:"categories"`
	Areas          []string        `json:"areas"`
	FailedLetters  []string        `json:"failed_letters,omitempty"`
}

// statistics over an empty set are null rather than NaN
func newListingResponse(l Listing) listingResponse {
	stats := statsResponse{Count: l.Summary.Count, Modes: l.Summary.Modes}
	if l.Summary.HasData {
		mean, spread := l.Summary.Mean, l.Summary.Range
		stats.Mean = &mean
		stats.Range = &spread
	}
	if stats.Modes == nil {
		stats.Modes = []int{}
	}
	rows := l.Rows
	if rows == nil {
		rows = []Row{}
	}
	categories, areas := l.Categories, l.Areas
	if categories == nil {
		categories = []string{}
	}
	if areas == nil {
		areas = []string{}
	}
	return listingResponse{
		Criteria:       l.Criteria,
		Total:          l.Total,
		Displaying:     l.Displaying,
		Stats:          stats,
		CategoryCounts: l.CategoryCount,
		Meals:          rows,
		Categories:     categories,
		Areas:          areas,
		FailedLetters:  l.FailedLetters,
	}
}

type mealResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	Area         string              `json:"area"`
	Thumbnail    string              `json:"thumbnail"`
	Instructions string              `json:"instructions"`
	YouTube      string              `json:"youtube,omitempty"`
	Source       string              `json:"source,omitempty"`
	Tags         []string            `json:"tags,omitempty"`
	Ingredients  []mealdb.Ingredient `json:"ingredients"`
}

func newMealResponse(m mealdb.Meal) mealResponse {
	return mealResponse{
		ID:           m.ID,
		Name:         m.Name,
		Category:     m.Category,
		Area:         m.Area,
		Thumbnail:    m.Thumbnail,
		Instructions: m.Instructions,
		YouTube:      m.YouTube,
		Source:       m.Source,
		Tags:         m.TagList(),
		Ingredients:  m.IngredientList(),
	}
}
