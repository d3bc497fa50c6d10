package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/db"
	"github.com/jonathan/candidate-matcher/internal/export"
	"github.com/jonathan/candidate-matcher/internal/ingestion"
	"github.com/jonathan/candidate-matcher/internal/observability"
	"github.com/jonathan/candidate-matcher/internal/pipeline"
	"github.com/jonathan/candidate-matcher/internal/ranking"
)

func newRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank a directory of profiles against a job description",
		Long: `Normalize every profile in a directory, score each one against the requirement
extracted from the job description, and export the ranking as JSON or CSV.

Values can also come from the config file or MATCHER_* environment variables;
flags that are set explicitly take precedence.`,
		Args: cobra.NoArgs,
		RunE: runRank,
	}

	cmd.Flags().StringP("profiles", "p", "", "Directory of candidate profile text files")
	cmd.Flags().StringP("job", "J", "", "Path to the job description text file")
	cmd.Flags().StringP("out", "o", "", "Path to the ranked export (default stdout)")
	cmd.Flags().String("matched-out", "", "Path to the export of candidates at or above --threshold")
	cmd.Flags().StringP("format", "f", config.DefaultFormat, "Export format: json or csv")
	cmd.Flags().Float64("threshold", config.DefaultThreshold, "Composite score at or above which a candidate is matched")
	cmd.Flags().Float64("min-years", 0, "Drop candidates whose resolved experience is below this many years (0 disables)")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers, "Number of profiles processed concurrently")
	cmd.Flags().Bool("synonyms", false, "Match skills through the built-in alias table (k8s = kubernetes, ...)")
	cmd.Flags().String("db-url", "", "PostgreSQL URL to store the run (overrides DATABASE_URL)")
	cmd.Flags().String("as-of", "", "Month that ongoing roles resolve to, YYYY-MM (default current month)")

	return cmd
}

func runRank(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.Profiles == "" || cfg.Job == "" {
		return errors.New("both --profiles and --job are required (flag, config file, or MATCHER_PROFILES/MATCHER_JOB)")
	}
	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	asOfValue, _ := cmd.Flags().GetString("as-of")
	asOf, err := parseAsOf(asOfValue)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	profiles, err := ingestion.LoadProfiles(cfg.Profiles)
	if err != nil {
		return err
	}
	jobText, err := ingestion.ReadText(cfg.Job)
	if err != nil {
		return err
	}
	log.Info("starting ranking",
		zap.String("version", version),
		zap.Int("profiles", len(profiles)),
		zap.Int("workers", cfg.Workers),
	)

	var engineOpts []ranking.EngineOption
	if cfg.Synonyms {
		engineOpts = append(engineOpts, ranking.WithSkillMatcher(ranking.NewSynonymMatcher(nil)))
	}

	ctx := cmd.Context()
	result, err := pipeline.Run(ctx, pipeline.Input{JobText: jobText, Profiles: profiles}, pipeline.Options{
		Workers:   cfg.Workers,
		Threshold: cfg.Threshold,
		MinYears:  cfg.MinYears,
		AsOf:      asOf,
		Engine:    ranking.NewEngine(engineOpts...),
	}, log)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintJobRequirement(result.Requirement)
		printer.PrintRankedList(result.Ranked, cfg.Threshold)
		printer.PrintFilteredByExperience(result.FilteredByExperience, cfg.MinYears)
		printer.PrintFailures(result.Failures)
	}

	err = withOutput(cfg.Out, cmd.OutOrStdout(), func(w io.Writer) error {
		return export.Write(w, format, result.Ranked)
	})
	if err != nil {
		return fmt.Errorf("failed to write ranking: %w", err)
	}
	if cfg.MatchedOut != "" {
		err = withOutput(cfg.MatchedOut, cmd.OutOrStdout(), func(w io.Writer) error {
			return export.Write(w, format, result.Matched)
		})
		if err != nil {
			return fmt.Errorf("failed to write matched candidates: %w", err)
		}
	}

	if cfg.DatabaseURL != "" {
		storeRun(ctx, log, cfg.DatabaseURL, cfg.Threshold, result)
	}

	return nil
}

// storeRun persists the run. Storage is optional, so failures are logged and the ranking still stands.
func storeRun(ctx context.Context, log *zap.Logger, databaseURL string, threshold float64, result *pipeline.Result) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		log.Warn("failed to connect to database, run not stored", zap.Error(err))
		return
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		log.Warn("run not stored", zap.Error(err))
		return
	}

	runID, err := database.SaveRun(ctx, db.RunInput{
		Requirement: result.Requirement,
		Ranked:      result.Ranked,
		Threshold:   threshold,
		FailedCount: len(result.Failures),
	})
	if err != nil {
		log.Warn("run not stored", zap.Error(err))
		return
	}
	log.Info("run stored", zap.String("run_id", runID.String()))
}
