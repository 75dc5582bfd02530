package recipes

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"mealdb/internal/mealdb"

	"github.com/samber/lo"
)

// absent is shown in place of statistics over an empty set.
const absent = "–"

// IngredientCount counts the non-blank ingredient slots of m.
func IngredientCount(m mealdb.Meal) int {
	return m.IngredientCount()
}

// IngredientCounts maps meals to their ingredient counts, in order.
func IngredientCounts(meals []mealdb.Meal) []int {
	return lo.Map(meals, func(m mealdb.Meal, _ int) int {
		return IngredientCount(m)
	})
}

// Mean is the arithmetic mean of values. ok is false for an empty slice.
func Mean(values []int) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	return float64(lo.Sum(values)) / float64(len(values)), true
}

// Mode returns every value that occurs with the highest frequency, ascending.
// It returns nil for an empty slice.
func Mode(values []int) []int {
	if len(values) == 0 {
		return nil
	}
	counts := lo.CountValues(values)
	top := lo.Max(lo.Values(counts))
	modes := lo.Filter(lo.Keys(counts), func(v int, _ int) bool {
		return counts[v] == top
	})
	slices.Sort(modes)
	return modes
}

// Range is max minus min. ok is false for an empty slice.
func Range(values []int) (spread int, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	return lo.Max(values) - lo.Min(values), true
}

// Summary holds the descriptive statistics shown under the chart.
type Summary struct {
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	Modes   []int   `json:"modes"`
	Range   int     `json:"range"`
	HasData bool    `json:"has_data"`
}

func Summarize(values []int) Summary {
	mean, ok := Mean(values)
	spread, _ := Range(values)
	return Summary{
		Count:   len(values),
		Mean:    mean,
		Modes:   Mode(values),
		Range:   spread,
		HasData: ok,
	}
}

// MeanString formats the mean to two decimals.
func (s Summary) MeanString() string {
	if !s.HasData {
		return absent
	}
	return fmt.Sprintf("%.2f", s.Mean)
}

// ModeString joins tied modes with ", ".
func (s Summary) ModeString() string {
	if !s.HasData {
		return absent
	}
	return strings.Join(lo.Map(s.Modes, func(v int, _ int) string { return strconv.Itoa(v) }), ", ")
}

func (s Summary) RangeString() string {
	if !s.HasData {
		return absent
	}
	return strconv.Itoa(s.Range)
}
