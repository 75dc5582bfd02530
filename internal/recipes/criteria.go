package recipes

import (
	"net/url"
	"slices"
	"strings"

	"mealdb/internal/mealdb"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

// AllCategories is the category selection that disables category filtering.
const AllCategories = "All"

// Criteria is the listing filter. All three conditions must hold for a meal
// to be shown. Treat it as a value: NewCriteria copies Areas.
type Criteria struct {
	Term     string   `json:"term"`
	Category string   `json:"category"`
	Areas    []string `json:"areas"`
}

// NewCriteria normalizes its inputs: a blank category means AllCategories,
// blank and duplicate areas are dropped. Any other category is kept verbatim
// so it only matches that exact label.
func NewCriteria(term, category string, areas []string) Criteria {
	if strings.TrimSpace(category) == "" {
		category = AllCategories
	}
	cleaned := lo.FilterMap(areas, func(a string, _ int) (string, bool) {
		a = strings.TrimSpace(a)
		return a, a != ""
	})
	return Criteria{
		Term:     term,
		Category: category,
		Areas:    lo.Uniq(cleaned),
	}
}

// DefaultCriteria matches every meal.
func DefaultCriteria() Criteria {
	return NewCriteria("", AllCategories, nil)
}

// CriteriaFromQuery reads ?q=, ?category= and repeated ?area= parameters.
func CriteriaFromQuery(q url.Values) Criteria {
	return NewCriteria(q.Get("q"), q.Get("category"), q["area"])
}

// Query is the inverse of CriteriaFromQuery.
func (c Criteria) Query() url.Values {
	q := url.Values{}
	if c.Term != "" {
		q.Set("q", c.Term)
	}
	if c.Category != "" && c.Category != AllCategories {
		q.Set("category", c.Category)
	}
	for _, a := range c.Areas {
		q.Add("area", a)
	}
	return q
}

// WithoutAreas clears the area selection.
func (c Criteria) WithoutAreas() Criteria {
	return NewCriteria(c.Term, c.Category, nil)
}

func (c Criteria) IsDefault() bool {
	return c.Term == "" && c.allCategories() && len(c.Areas) == 0
}

func (c Criteria) HasArea(area string) bool {
	return slices.Contains(c.Areas, area)
}

func (c Criteria) allCategories() bool {
	return c.Category == "" || c.Category == AllCategories
}

// Filter returns the meals matching c, preserving corpus order.
func Filter(meals []mealdb.Meal, c Criteria) []mealdb.Meal {
	// a Caser holds state, so each call gets its own
	fold := cases.Fold()
	term := fold.String(c.Term)

	return lo.Filter(meals, func(m mealdb.Meal, _ int) bool {
		if !c.allCategories() && m.Category != c.Category {
			return false
		}
		if len(c.Areas) > 0 && !slices.Contains(c.Areas, m.Area) {
			return false
		}
		return term == "" || strings.Contains(fold.String(m.Name), term)
	})
}
