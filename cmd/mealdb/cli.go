package main

import (
	"fmt"

	"mealdb/internal/catalog"
	"mealdb/internal/chart"
	"mealdb/internal/recipes"

	"github.com/spf13/cobra"
)

func (a *app) listCmd() *cobra.Command {
	var (
		search   string
		category string
		areas    []string
		noChart  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meals matching a search",
		Long: `Download the whole catalog and print the meals matching every given
condition, followed by ingredient statistics for the matches.

Category matching is exact and case sensitive. --area may be repeated; a meal
matches when its area is any of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			be, err := newBackend(a.cfg)
			if err != nil {
				return err
			}
			corpus, err := catalog.New(be, a.cfg.MealDB.Concurrency).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading meals: %w", err)
			}
			listing := recipes.BuildListing(corpus, recipes.NewCriteria(search, category, areas), chart.DefaultStyle)
			return printListing(cmd.OutOrStdout(), listing, termWidth(), !noChart)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case insensitive substring of the meal name")
	cmd.Flags().StringVarP(&category, "category", "c", recipes.AllCategories, "Exact category name")
	cmd.Flags().StringSliceVarP(&areas, "area", "a", nil, "Area (cuisine) to include, repeatable")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "Skip the per-category chart")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one meal by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			be, err := newBackend(a.cfg)
			if err != nil {
				return err
			}
			meal, err := be.LookupByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("looking up meal %s: %w", args[0], err)
			}
			return printMeal(cmd.OutOrStdout(), *meal)
		},
	}
	return cmd
}
