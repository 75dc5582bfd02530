package mealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Mock serves a small fixed corpus in process. It backs MOCKS_ENABLE and the
// end to end tests.
type Mock struct {
	meals      []Meal
	categories []string
	areas      []string
}

func NewMock() *Mock {
	return &Mock{
		meals:      mockMeals(),
		categories: []string{"Beef", "Chicken", "Dessert", "Seafood", "Vegetarian"},
		areas:      []string{"British", "Canadian", "French", "Italian", "Japanese", "Mexican"},
	}
}

func (m *Mock) SearchByFirstLetter(ctx context.Context, letter string) ([]Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	letter = strings.ToLower(letter)
	return lo.Filter(m.meals, func(meal Meal, _ int) bool {
		return strings.HasPrefix(strings.ToLower(meal.Name), letter)
	}), nil
}

func (m *Mock) ListCategories(ctx context.Context) ([]string, error) {
	return append([]string(nil), m.categories...), ctx.Err()
}

func (m *Mock) ListAreas(ctx context.Context) ([]string, error) {
	return append([]string(nil), m.areas...), ctx.Err()
}

func (m *Mock) LookupByID(ctx context.Context, id string) (*Meal, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	meal, ok := lo.Find(m.meals, func(meal Meal) bool { return meal.ID == id })
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &meal, ctx.Err()
}

func (m *Mock) Ready(ctx context.Context) error {
	return ctx.Err()
}

func mockMeal(id, name, category, area string, ingredients ...string) Meal {
	meal := Meal{
		ID:           id,
		Name:         name,
		Category:     category,
		Area:         area,
		Thumbnail:    "https://www.themealdb.com/images/media/meals/" + id + ".jpg",
		Instructions: "Combine the " + strings.ToLower(name) + " ingredients and cook until done.",
		YouTube:      "https://www.youtube.com/watch?v=" + id,
	}
	for i, ing := range ingredients {
		if i >= IngredientSlots {
			break
		}
		meal.Ingredients[i] = ing
		meal.Measures[i] = "1 cup"
	}
	return meal
}

func mockMeals() []Meal {
	return []Meal{
		mockMeal("52772", "Apple Frangipan Tart", "Dessert", "British", "digestive biscuits", "butter", "apples", "caster sugar", "eggs"),
		mockMeal("52874", "Beef and Mustard Pie", "Beef", "British", "beef", "plain flour", "rapeseed oil", "red wine", "beef stock", "onion", "carrots"),
		mockMeal("52940", "Brown Stew Chicken", "Chicken", "Japanese", "chicken", "tomato", "onions", "garlic"),
		mockMeal("52803", "Chicken Marengo", "Chicken", "French", "olive oil", "mushrooms", "chicken legs", "passata"),
		mockMeal("52959", "Baked salmon with fennel", "Seafood", "British", "fennel", "salmon", "lemon", "olive oil"),
		mockMeal("52785", "Dal fry", "Vegetarian", "Canadian", "toor dal", "water", "salt", "turmeric", "ghee", "onion", "cumin"),
		mockMeal("52771", "Spicy Arrabiata Penne", "Vegetarian", "Italian", "penne rigate", "olive oil", "garlic", "chopped tomatoes", "red chile flakes", "italian seasoning", "basil", "parmigiano-reggiano"),
		mockMeal("52807", "Tacos al pastor", "Beef", "Mexican", "pork", "pineapple", "tortillas", "onion", "coriander"),
		mockMeal("52893", "Yorkshire Pudding", "Dessert", "British", "plain flour", "eggs", "milk", "sunflower oil"),
	}
}
