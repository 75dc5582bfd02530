package mealdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"mealdb/internal/config"
	"mealdb/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.MealDBConfig{
		BaseURL:    server.URL + "/api/json/v1",
		APIKey:     "1",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestSearchByFirstLetter_SetsPathAndQuery(t *testing.T) {
	t.Parallel()

	var capturedReq *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		_, _ = w.Write([]byte(`{"meals":[{"idMeal":"52772","strMeal":"Apple Frangipan Tart","strCategory":"Dessert","strArea":"British","strIngredient1":"apples","strIngredient2":" ","strIngredient3":null}]}`))
	})

	meals, err := client.SearchByFirstLetter(context.Background(), "A")
	if err != nil {
		t.Fatalf("search by first letter: %v", err)
	}
	if len(meals) != 1 || meals[0].Name != "Apple Frangipan Tart" {
		t.Fatalf("unexpected meals: %+v", meals)
	}
	if got := meals[0].IngredientCount(); got != 1 {
		t.Fatalf("expected 1 ingredient, got %d", got)
	}

	if capturedReq == nil {
		t.Fatal("expected request to be captured")
	}
	if capturedReq.URL.Path != "/api/json/v1/1/search.php" {
		t.Fatalf("unexpected path: %s", capturedReq.URL.Path)
	}
	if got := capturedReq.URL.Query().Get("f"); got != "a" {
		t.Fatalf("unexpected f query value: %q", got)
	}
	if got := capturedReq.Header.Get("Accept"); got != "application/json" {
		t.Fatalf("unexpected accept header: %q", got)
	}
}

func TestSearchByFirstLetter_NullMeals(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	})

	meals, err := client.SearchByFirstLetter(context.Background(), "x")
	if err != nil {
		t.Fatalf("search by first letter: %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("expected no meals, got %d", len(meals))
	}
}

func TestSearchByFirstLetter_RejectsBadLetter(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	for _, letter := range []string{"", "ab", "1", "é"} {
		if _, err := client.SearchByFirstLetter(context.Background(), letter); err == nil {
			t.Fatalf("expected error for letter %q", letter)
		}
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no upstream calls, got %d", calls.Load())
	}
}

func TestListCategoriesAndAreas(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Query().Get("c") == "list":
			_, _ = w.Write([]byte(`{"meals":[{"strCategory":"Beef"},{"strCategory":"Chicken"},{"strCategory":""}]}`))
		case r.URL.Query().Get("a") == "list":
			_, _ = w.Write([]byte(`{"meals":[{"strArea":"American"},{"strArea":"British"}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	categories, err := client.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Beef" || categories[1] != "Chicken" {
		t.Fatalf("unexpected categories: %v", categories)
	}

	areas, err := client.ListAreas(context.Background())
	if err != nil {
		t.Fatalf("list areas: %v", err)
	}
	if len(areas) != 2 || areas[1] != "British" {
		t.Fatalf("unexpected areas: %v", areas)
	}
}

func TestLookupByID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("i") == "52772" {
			_, _ = w.Write([]byte(`{"meals":[{"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole","strYoutube":"https://www.youtube.com/watch?v=4aZr5hZXP_s","strIngredient1":"soy sauce","strMeasure1":"3/4 cup"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"meals":null}`))
	})

	meal, err := client.LookupByID(context.Background(), "52772")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if meal.Name != "Teriyaki Chicken Casserole" || meal.YouTube == "" {
		t.Fatalf("unexpected meal: %+v", meal)
	}
	list := meal.IngredientList()
	if len(list) != 1 || list[0].Measure != "3/4 cup" {
		t.Fatalf("unexpected ingredient list: %+v", list)
	}

	_, err = client.LookupByID(context.Background(), "1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = client.LookupByID(context.Background(), "../etc")
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestStatusError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	_, err := client.ListAreas(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("unexpected status code: %d", statusErr.StatusCode)
	}
	if statusErr.Body != "nope" {
		t.Fatalf("unexpected body: %q", statusErr.Body)
	}
	if !statusErr.Temporary() {
		t.Fatal("expected 502 to be temporary")
	}
}

func TestRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"meals":[{"strArea":"Greek"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(config.MealDBConfig{
		BaseURL:    server.URL,
		RetryMax:   1,
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	areas, err := client.ListAreas(context.Background())
	if err != nil {
		t.Fatalf("list areas: %v", err)
	}
	if len(areas) != 1 || areas[0] != "Greek" {
		t.Fatalf("unexpected areas: %v", areas)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.SearchByFirstLetter(ctx, "b"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// Not parallel: it reads process-wide counters.
func TestLookupCountsOneOutcomePerRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("i") == "52772" {
			_, _ = w.Write([]byte(`{"meals":[{"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"meals":null}`))
	})
	success := metrics.UpstreamRequests.WithLabelValues("lookup", "success")
	notFound := metrics.UpstreamRequests.WithLabelValues("lookup", "not_found")
	successBefore, notFoundBefore := testutil.ToFloat64(success), testutil.ToFloat64(notFound)

	if _, err := client.LookupByID(context.Background(), "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := testutil.ToFloat64(success) - successBefore; got != 0 {
		t.Fatalf("expected no success count for a missing meal, got %v", got)
	}
	if got := testutil.ToFloat64(notFound) - notFoundBefore; got != 1 {
		t.Fatalf("expected one not_found count, got %v", got)
	}

	if _, err := client.LookupByID(context.Background(), "52772"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got := testutil.ToFloat64(success) - successBefore; got != 1 {
		t.Fatalf("expected one success count, got %v", got)
	}
	if got := testutil.ToFloat64(notFound) - notFoundBefore; got != 1 {
		t.Fatalf("expected not_found count to stay at 1, got %v", got)
	}
}
