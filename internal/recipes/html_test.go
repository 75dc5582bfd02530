package recipes

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"mealdb/internal/chart"
	"mealdb/internal/mealdb"

	"golang.org/x/net/html"
)

func isValidHTML(t *testing.T, htmlStr string) {
	t.Helper()
	if htmlStr == "" {
		t.Fatal("rendered HTML is empty")
	}
	_, err := html.Parse(bytes.NewBufferString(htmlStr))
	if err != nil {
		t.Fatalf("rendered HTML is not valid: %v\nHTML:\n%s", err, htmlStr)
	}
}

func TestRenderMealEscapesContent(t *testing.T) {
	t.Parallel()
	var m mealdb.Meal
	m.ID = "1"
	m.Name = `<script>alert("x")</script> Pie`
	m.Instructions = "Bake & serve."
	m.Ingredients[0] = "flour"
	m.Measures[0] = "2 cups"

	var buf bytes.Buffer
	if err := RenderMeal(m, chart.DefaultStyle, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	isValidHTML(t, out)
	if strings.Contains(out, "<script>alert") {
		t.Fatal("meal name was not escaped")
	}
	if !strings.Contains(out, "2 cups flour") {
		t.Fatal("expected measured ingredient")
	}
	if strings.Contains(out, `id="video"`) {
		t.Fatal("meal without a video should not link one")
	}
}

func TestListingChartHeights(t *testing.T) {
	t.Parallel()
	l := BuildListing(testCorpus(t), NewCriteria("", "", []string{"British"}), chart.DefaultStyle)
	rr := httptest.NewRecorder()
	FormatListingHTML(l, rr)
	body := rr.Body.String()
	isValidHTML(t, body)

	// british meals: two desserts, one beef, one seafood
	if !strings.Contains(body, `data-label="Dessert" data-count="2"`) {
		t.Fatal("expected dessert bar with count 2")
	}
	if !strings.Contains(body, "height: 100%") || !strings.Contains(body, "height: 50%") || !strings.Contains(body, "height: 0%") {
		t.Fatal("expected bars scaled to the tallest category")
	}
}
