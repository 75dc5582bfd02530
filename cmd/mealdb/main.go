package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mealdb/internal/config"
	"mealdb/internal/mealdb"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(cfg).root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type app struct {
	cfg     *config.Config
	root    *cobra.Command
	noColor bool
}

func newApp(cfg *config.Config) *app {
	a := &app{cfg: cfg}
	a.root = &cobra.Command{
		Use:   "mealdb",
		Short: "Browse TheMealDB recipe catalog",
		Long: `mealdb downloads the TheMealDB catalog one first letter at a time and
lets you filter it by name, category and cuisine, with ingredient statistics
and a per-category chart. Run "mealdb serve" for the web view.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.noColor {
				disableColor()
			}
			return setupLogger(cmd.ErrOrStderr(), a.cfg.LogLevel, cmd.Name() == "serve")
		},
	}
	a.root.PersistentFlags().BoolVar(&cfg.Mocks.Enable, "mocks", cfg.Mocks.Enable, "Serve a small built in catalog instead of calling the API")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.versionCmd())
	return a
}

func (a *app) serveCmd() *cobra.Command {
	addr := a.cfg.Server.Addr
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), a.cfg, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", addr, "Address to bind in server mode")
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mealdb %s (commit: %s)\n", Version, Commit)
		},
	}
}

// backend is everything the commands need from the meal database.
type backend interface {
	SearchByFirstLetter(ctx context.Context, letter string) ([]mealdb.Meal, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListAreas(ctx context.Context) ([]string, error)
	LookupByID(ctx context.Context, id string) (*mealdb.Meal, error)
	Ready(ctx context.Context) error
}

func newBackend(cfg *config.Config) (backend, error) {
	if cfg.Mocks.Enable {
		slog.Info("using mock meal database")
		return mealdb.NewMock(), nil
	}
	client, err := mealdb.NewClient(cfg.MealDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create mealdb client: %w", err)
	}
	return client, nil
}

// setupLogger installs the default slog logger. The server logs JSON, the
// CLI logs text so it stays readable next to the output.
func setupLogger(w io.Writer, level string, asJSON bool) error {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
