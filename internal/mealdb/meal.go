package mealdb

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// IngredientSlots is how many strIngredientN/strMeasureN pairs a meal can carry.
const IngredientSlots = 30

// Meal is a single MealDB record. The API flattens ingredients into numbered
// keys, so decoding collects them into fixed arrays.
type Meal struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Thumbnail    string
	Instructions string
	YouTube      string
	Tags         string
	Source       string
	Ingredients  [IngredientSlots]string
	Measures     [IngredientSlots]string
}

// Ingredient pairs a present ingredient slot with its measure.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure,omitempty"`
}

func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal meal: %w", err)
	}

	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}

	*m = Meal{
		ID:           str("idMeal"),
		Name:         str("strMeal"),
		Category:     str("strCategory"),
		Area:         str("strArea"),
		Thumbnail:    str("strMealThumb"),
		Instructions: str("strInstructions"),
		YouTube:      str("strYoutube"),
		Tags:         str("strTags"),
		Source:       str("strSource"),
	}
	for i := range IngredientSlots {
		n := strconv.Itoa(i + 1)
		m.Ingredients[i] = str("strIngredient" + n)
		m.Measures[i] = str("strMeasure" + n)
	}
	return nil
}

// MarshalJSON writes the flat MealDB shape back out, so fixtures and mocks can
// round trip through the same decoder the client uses.
func (m Meal) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"idMeal":          m.ID,
		"strMeal":         m.Name,
		"strCategory":     m.Category,
		"strArea":         m.Area,
		"strMealThumb":    m.Thumbnail,
		"strInstructions": m.Instructions,
		"strYoutube":      m.YouTube,
		"strTags":         nullable(m.Tags),
		"strSource":       nullable(m.Source),
	}
	for i := range IngredientSlots {
		n := strconv.Itoa(i + 1)
		out["strIngredient"+n] = nullable(m.Ingredients[i])
		out["strMeasure"+n] = nullable(m.Measures[i])
	}
	return json.Marshal(out)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// IngredientCount is the number of ingredient slots that are non-blank after trimming.
func (m Meal) IngredientCount() int {
	count := 0
	for _, ing := range m.Ingredients {
		if strings.TrimSpace(ing) != "" {
			count++
		}
	}
	return count
}

// IngredientList returns the present ingredients in slot order.
func (m Meal) IngredientList() []Ingredient {
	var list []Ingredient
	for i, ing := range m.Ingredients {
		name := strings.TrimSpace(ing)
		if name == "" {
			continue
		}
		list = append(list, Ingredient{Name: name, Measure: strings.TrimSpace(m.Measures[i])})
	}
	return list
}

// TagList splits the comma separated strTags value.
func (m Meal) TagList() []string {
	var tags []string
	for _, t := range strings.Split(m.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

type mealsEnvelope struct {
	Meals []Meal `json:"meals"`
}

// ParseMeals decodes a search or lookup payload. A null collection means no match
// and decodes to an empty slice.
func ParseMeals(data []byte) ([]Meal, error) {
	var env mealsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal meals: %w", err)
	}
	return env.Meals, nil
}

// ParseLabels decodes a list.php payload, returning the named field of each entry
// (strCategory for categories, strArea for areas).
func ParseLabels(data []byte, field string) ([]string, error) {
	var env struct {
		Meals []map[string]any `json:"meals"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal %s list: %w", field, err)
	}
	labels := make([]string, 0, len(env.Meals))
	for _, entry := range env.Meals {
		if label, ok := entry[field].(string); ok && label != "" {
			labels = append(labels, label)
		}
	}
	return labels, nil
}
