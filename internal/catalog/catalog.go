// Package catalog acquires the full meal corpus and the reference lists used
// to populate filter controls.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mealdb/internal/mealdb"
	"mealdb/internal/metrics"

	"golang.org/x/sync/errgroup"
)

// Alphabet is the fixed set of first letters searched to build the corpus.
// x and z are not searched.
const Alphabet = "abcdefghijklmnopqrstuvwy"

type source interface {
	SearchByFirstLetter(ctx context.Context, letter string) ([]mealdb.Meal, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListAreas(ctx context.Context) ([]string, error)
}

// Corpus is one view load's snapshot of the API.
type Corpus struct {
	Meals      []mealdb.Meal
	Categories []string
	Areas      []string
	// FailedLetters lists letters whose search failed and contributed nothing.
	FailedLetters []string
}

type Fetcher struct {
	src         source
	concurrency int
	letters     []string
}

// New returns a Fetcher that searches at most concurrency letters at once.
func New(src source, concurrency int) *Fetcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Fetcher{
		src:         src,
		concurrency: concurrency,
		letters:     strings.Split(Alphabet, ""),
	}
}

// Meals searches every letter of the alphabet and concatenates the results in
// alphabet order. A failed letter is logged and skipped; only cancellation of
// ctx fails the whole load.
func (f *Fetcher) Meals(ctx context.Context) ([]mealdb.Meal, []string, error) {
	slots := make([][]mealdb.Meal, len(f.letters))
	failed := make([]bool, len(f.letters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, letter := range f.letters {
		g.Go(func() error {
			meals, err := f.src.SearchByFirstLetter(gctx, letter)
			if err != nil {
				slog.WarnContext(ctx, "failed to fetch meals for letter", "letter", letter, "error", err)
				metrics.FailedLetters.Inc()
				failed[i] = true
				return nil
			}
			slots[i] = meals
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("load meals: %w", err)
	}

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	all := make([]mealdb.Meal, 0, total)
	var failedLetters []string
	for i, s := range slots {
		all = append(all, s...)
		if failed[i] {
			failedLetters = append(failedLetters, f.letters[i])
		}
	}
	return all, failedLetters, nil
}

// Categories returns the category list, or nil if it could not be fetched.
func (f *Fetcher) Categories(ctx context.Context) []string {
	categories, err := f.src.ListCategories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch categories", "error", err)
		return nil
	}
	return categories
}

// Areas returns the area list, or nil if it could not be fetched.
func (f *Fetcher) Areas(ctx context.Context) []string {
	areas, err := f.src.ListAreas(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch areas", "error", err)
		return nil
	}
	return areas
}

// Load acquires meals, categories and areas concurrently.
func (f *Fetcher) Load(ctx context.Context) (*Corpus, error) {
	var corpus Corpus
	var g errgroup.Group
	g.Go(func() error {
		meals, failed, err := f.Meals(ctx)
		if err != nil {
			return err
		}
		corpus.Meals = meals
		corpus.FailedLetters = failed
		return nil
	})
	g.Go(func() error {
		corpus.Categories = f.Categories(ctx)
		return nil
	})
	g.Go(func() error {
		corpus.Areas = f.Areas(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.CorpusMeals.Set(float64(len(corpus.Meals)))
	slog.InfoContext(ctx, "loaded meal corpus",
		"meals", len(corpus.Meals),
		"categories", len(corpus.Categories),
		"areas", len(corpus.Areas),
		"failed_letters", corpus.FailedLetters)
	return &corpus, nil
}
