package recipes

import (
	"context"
	"net/url"
	"slices"
	"testing"

	"mealdb/internal/mealdb"

	"github.com/samber/lo"
)

func corpusMeals(t *testing.T) []mealdb.Meal {
	t.Helper()
	mock := mealdb.NewMock()
	var meals []mealdb.Meal
	for _, letter := range "abcdefghijklmnopqrstuvwy" {
		found, err := mock.SearchByFirstLetter(context.Background(), string(letter))
		if err != nil {
			t.Fatalf("mock search %c: %v", letter, err)
		}
		meals = append(meals, found...)
	}
	return meals
}

func names(meals []mealdb.Meal) []string {
	return lo.Map(meals, func(m mealdb.Meal, _ int) string { return m.Name })
}

func TestFilterDefaultIsIdentity(t *testing.T) {
	t.Parallel()
	meals := corpusMeals(t)
	got := Filter(meals, DefaultCriteria())
	if !slices.Equal(names(got), names(meals)) {
		t.Fatalf("default criteria changed the corpus: %v", names(got))
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	meals := corpusMeals(t)
	for _, term := range []string{"chicken", "CHICKEN", "ChIcKeN"} {
		got := names(Filter(meals, NewCriteria(term, "", nil)))
		want := []string{"Brown Stew Chicken", "Chicken Marengo"}
		if !slices.Equal(got, want) {
			t.Fatalf("term %q: got %v, want %v", term, got, want)
		}
	}
}

func TestFilterCategoryIsExact(t *testing.T) {
	t.Parallel()
	meals := corpusMeals(t)
	got := names(Filter(meals, NewCriteria("", "Dessert", nil)))
	if !slices.Equal(got, []string{"Apple Frangipan Tart", "Yorkshire Pudding"}) {
		t.Fatalf("unexpected desserts: %v", got)
	}
	if got := Filter(meals, NewCriteria("", "dessert", nil)); len(got) != 0 {
		t.Fatalf("category match should be case sensitive, got %v", names(got))
	}
	for _, category := range []string{" Dessert", "Dessert "} {
		c := NewCriteria("", category, nil)
		if c.Category != category {
			t.Fatalf("category %q was rewritten to %q", category, c.Category)
		}
		if got := Filter(meals, c); len(got) != 0 {
			t.Fatalf("category %q should not match Dessert, got %v", category, names(got))
		}
	}
}

func TestFilterAreasAreAnyOf(t *testing.T) {
	t.Parallel()
	meals := corpusMeals(t)
	got := Filter(meals, NewCriteria("", AllCategories, []string{"Italian", "Mexican"}))
	if !slices.Equal(names(got), []string{"Spicy Arrabiata Penne", "Tacos al pastor"}) {
		t.Fatalf("unexpected meals: %v", names(got))
	}
	for _, m := range got {
		if m.Area != "Italian" && m.Area != "Mexican" {
			t.Fatalf("meal %s from unselected area %s", m.Name, m.Area)
		}
	}
}

func TestFilterConditionsCommute(t *testing.T) {
	t.Parallel()
	meals := corpusMeals(t)
	term := NewCriteria("e", "", nil)
	category := NewCriteria("", "Dessert", nil)
	areas := NewCriteria("", "", []string{"British"})
	all := NewCriteria("e", "Dessert", []string{"British"})

	direct := names(Filter(meals, all))
	chained := names(Filter(Filter(Filter(meals, areas), category), term))
	reversed := names(Filter(Filter(Filter(meals, term), category), areas))
	if !slices.Equal(direct, chained) || !slices.Equal(direct, reversed) {
		t.Fatalf("filter order changed the result: %v %v %v", direct, chained, reversed)
	}
	if len(direct) != 2 {
		t.Fatalf("expected 2 british desserts containing e, got %v", direct)
	}
}

func TestFilterNoMatchesIsEmpty(t *testing.T) {
	t.Parallel()
	got := Filter(corpusMeals(t), NewCriteria("zzz", "", nil))
	if len(got) != 0 {
		t.Fatalf("expected no meals, got %v", names(got))
	}
}

func TestNewCriteriaNormalizes(t *testing.T) {
	t.Parallel()
	c := NewCriteria("pie", " ", []string{"British", "", " British ", "French"})
	if c.Category != AllCategories {
		t.Fatalf("expected blank category to mean all, got %q", c.Category)
	}
	if !slices.Equal(c.Areas, []string{"British", "French"}) {
		t.Fatalf("unexpected areas %v", c.Areas)
	}
	if c.IsDefault() {
		t.Fatal("criteria with a term is not the default")
	}
	if !DefaultCriteria().IsDefault() {
		t.Fatal("DefaultCriteria should be default")
	}
}

func TestCriteriaQueryRoundTrip(t *testing.T) {
	t.Parallel()
	q, err := url.ParseQuery("q=tart&category=Dessert&area=British&area=French")
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	c := CriteriaFromQuery(q)
	if c.Term != "tart" || c.Category != "Dessert" || !c.HasArea("French") {
		t.Fatalf("unexpected criteria %+v", c)
	}
	back := CriteriaFromQuery(c.Query())
	if back.Term != c.Term || back.Category != c.Category || !slices.Equal(back.Areas, c.Areas) {
		t.Fatalf("round trip changed criteria: %+v vs %+v", back, c)
	}
	cleared := c.WithoutAreas().Query()
	if cleared.Has("area") || cleared.Get("q") != "tart" || cleared.Get("category") != "Dessert" {
		t.Fatalf("clearing areas should keep the rest: %v", cleared)
	}
}
