package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/db"
	"github.com/jonathan/candidate-matcher/internal/observability"
)

const defaultRunsLimit = 20

// storedRun is what "runs show" prints
type storedRun struct {
	Run     *db.Run           `json:"run"`
	Results []db.StoredResult `json:"results"`
}

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect ranking runs stored in PostgreSQL",
	}
	cmd.PersistentFlags().String("db-url", "", "PostgreSQL URL (overrides DATABASE_URL)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent stored runs",
		Args:  cobra.NoArgs,
		RunE:  runRunsList,
	}
	list.Flags().IntP("limit", "n", defaultRunsLimit, "Maximum number of runs to list")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a stored run with its ranked results",
		Args:  cobra.ExactArgs(1),
		RunE:  runRunsShow,
	}

	cmd.AddCommand(list, show)
	return cmd
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 1 {
		return fmt.Errorf("invalid --limit %d: must be at least 1", limit)
	}

	return withDatabase(cmd, func(ctx context.Context, database *db.DB) error {
		runs, err := database.ListRuns(ctx, limit)
		if err != nil {
			return err
		}
		if runs == nil {
			runs = []db.Run{}
		}
		return writeJSON(cmd.OutOrStdout(), runs)
	})
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run ID %q: %w", args[0], err)
	}

	return withDatabase(cmd, func(ctx context.Context, database *db.DB) error {
		run, err := database.GetRun(ctx, runID)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("run %s not found", runID)
		}
		results, err := database.GetRunResults(ctx, runID)
		if err != nil {
			return err
		}

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintStoredRun(run, results)
		}
		return writeJSON(cmd.OutOrStdout(), storedRun{Run: run, Results: results})
	})
}

// withDatabase resolves the database URL from flags, config file or environment,
// connects, and hands the connection to fn.
func withDatabase(cmd *cobra.Command, fn func(context.Context, *db.DB) error) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("a database is required: set --db-url, database-url in the config file, or DATABASE_URL")
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()
	log.Debug("connected to database")

	return fn(ctx, database)
}
