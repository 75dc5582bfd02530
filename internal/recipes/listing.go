package recipes

import (
	"mealdb/internal/catalog"
	"mealdb/internal/chart"
	"mealdb/internal/mealdb"

	"github.com/samber/lo"
)

// CategoryCount is one bar of the per-category chart.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountByCategory counts meals per known category, in the order categories
// are given. Categories with no meals are kept with a zero count.
func CountByCategory(meals []mealdb.Meal, categories []string) []CategoryCount {
	byCategory := lo.CountValuesBy(meals, func(m mealdb.Meal) string { return m.Category })
	return lo.Map(categories, func(c string, _ int) CategoryCount {
		return CategoryCount{Label: c, Count: byCategory[c]}
	})
}

// Row is one line of the listing table.
type Row struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Area        string `json:"area"`
	Thumbnail   string `json:"thumbnail"`
	Ingredients int    `json:"ingredients"`
}

// Listing is everything the listing view renders for one set of criteria.
type Listing struct {
	Criteria      Criteria        `json:"criteria"`
	Total         int             `json:"total"`
	Displaying    int             `json:"displaying"`
	Rows          []Row           `json:"meals"`
	Summary       Summary         `json:"stats"`
	CategoryCount []CategoryCount `json:"category_counts"`
	Chart         chart.Bar       `json:"-"`
	Categories    []string        `json:"categories"`
	Areas         []string        `json:"areas"`
	FailedLetters []string        `json:"failed_letters,omitempty"`
}

// BuildListing filters the corpus and derives the table, chart and statistics.
// It is pure; call it again whenever the criteria or corpus change.
func BuildListing(corpus *catalog.Corpus, c Criteria, style chart.Style) Listing {
	filtered := Filter(corpus.Meals, c)
	counts := IngredientCounts(filtered)

	rows := make([]Row, len(filtered))
	for i, m := range filtered {
		rows[i] = Row{
			ID:          m.ID,
			Name:        m.Name,
			Category:    m.Category,
			Area:        m.Area,
			Thumbnail:   m.Thumbnail,
			Ingredients: counts[i],
		}
	}

	byCategory := CountByCategory(filtered, corpus.Categories)
	points := lo.Map(byCategory, func(cc CategoryCount, _ int) chart.Point {
		return chart.Point{Label: cc.Label, Value: cc.Count}
	})

	return Listing{
		Criteria:      c,
		Total:         len(corpus.Meals),
		Displaying:    len(filtered),
		Rows:          rows,
		Summary:       Summarize(counts),
		CategoryCount: byCategory,
		Chart:         chart.NewBar(style, points),
		Categories:    corpus.Categories,
		Areas:         corpus.Areas,
		FailedLetters: corpus.FailedLetters,
	}
}

// ClearAreasURL is the target of the "Unselect All" control: the same
// listing with no areas selected.
func (l Listing) ClearAreasURL() string {
	q := l.Criteria.WithoutAreas().Query()
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
