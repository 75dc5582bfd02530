package recipes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"mealdb/internal/catalog"
	"mealdb/internal/chart"
	"mealdb/internal/mealdb"

	json "github.com/goccy/go-json"
)

type corpusLoader interface {
	Load(ctx context.Context) (*catalog.Corpus, error)
}

type mealLookup interface {
	LookupByID(ctx context.Context, id string) (*mealdb.Meal, error)
}

type server struct {
	loader corpusLoader
	lookup mealLookup
	style  chart.Style
}

// NewHandler serves the listing and detail views. Every request is its own
// view load: the corpus is fetched with the request context, so a client that
// goes away cancels its upstream calls.
func NewHandler(loader corpusLoader, lookup mealLookup) *server {
	return &server{
		loader: loader,
		lookup: lookup,
		style:  chart.DefaultStyle,
	}
}

func (s *server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleListing)
	mux.HandleFunc("GET /meal/{id}", s.handleMeal)
	mux.HandleFunc("GET /api/meals", s.handleListingJSON)
	mux.HandleFunc("GET /api/meal/{id}", s.handleMealJSON)
}

func (s *server) listing(w http.ResponseWriter, r *http.Request) (Listing, bool) {
	ctx := r.Context()
	corpus, err := s.loader.Load(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.InfoContext(ctx, "listing load abandoned by client")
			return Listing{}, false
		}
		slog.ErrorContext(ctx, "failed to load meals", "error", err)
		http.Error(w, "unable to load meals", http.StatusBadGateway)
		return Listing{}, false
	}
	return BuildListing(corpus, CriteriaFromQuery(r.URL.Query()), s.style), true
}

func (s *server) handleListing(w http.ResponseWriter, r *http.Request) {
	l, ok := s.listing(w, r)
	if !ok {
		return
	}
	FormatListingHTML(l, w)
}

func (s *server) handleListingJSON(w http.ResponseWriter, r *http.Request) {
	l, ok := s.listing(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, newListingResponse(l))
}

func (s *server) meal(w http.ResponseWriter, r *http.Request) (*mealdb.Meal, bool) {
	ctx := r.Context()
	id := r.PathValue("id")
	meal, err := s.lookup.LookupByID(ctx, id)
	switch {
	case err == nil:
		return meal, true
	case errors.Is(err, mealdb.ErrInvalidID):
		http.Error(w, "invalid meal id", http.StatusBadRequest)
	case errors.Is(err, mealdb.ErrNotFound):
		http.Error(w, "meal not found", http.StatusNotFound)
	case errors.Is(err, context.Canceled):
		slog.InfoContext(ctx, "meal lookup abandoned by client", "id", id)
	default:
		slog.ErrorContext(ctx, "failed to look up meal", "id", id, "error", err)
		http.Error(w, "unable to load meal", http.StatusBadGateway)
	}
	return nil, false
}

func (s *server) handleMeal(w http.ResponseWriter, r *http.Request) {
	meal, ok := s.meal(w, r)
	if !ok {
		return
	}
	slog.InfoContext(r.Context(), "serving meal", "id", meal.ID)
	FormatMealHTML(*meal, s.style, w)
}

func (s *server) handleMealJSON(w http.ResponseWriter, r *http.Request) {
	meal, ok := s.meal(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, newMealResponse(*meal))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
