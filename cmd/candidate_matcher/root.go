package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/logger"
	"github.com/jonathan/candidate-matcher/internal/types"
)

const app = "candidate_matcher"

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           app,
		Short:         "Rank candidate profiles against a job description",
		Long:          "candidate_matcher segments free-text candidate profiles, extracts a structured requirement from a job description, and exports a deterministic ranking with per-component scores.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path to a YAML/JSON/TOML config file")
	root.PersistentFlags().BoolP("debug", "d", false, "Debug logging")
	root.PersistentFlags().BoolP("json", "j", false, "JSON format for logging")
	root.PersistentFlags().BoolP("verbose", "v", false, "Print boxed summaries to stderr")

	root.AddCommand(
		newParseProfileCmd(),
		newParseJobCmd(),
		newRankCmd(),
		newRunsCmd(),
		newValidateCmd(),
		newVersionCmd(),
	)
	return root
}

// newLogger builds the command logger from the persistent flags
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	jsonLogs, _ := cmd.Flags().GetBool("json")
	debug, _ := cmd.Flags().GetBool("debug")
	log, err := logger.New(jsonLogs, debug)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return log, nil
}

// parseAsOf turns a YYYY-MM flag value into a month, defaulting to the current month
func parseAsOf(value string) (types.YearMonth, error) {
	if value == "" {
		return types.YearMonthOf(time.Now()), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return types.YearMonth{}, fmt.Errorf("invalid --as-of %q (expected YYYY-MM): %w", value, err)
	}
	return types.YearMonthOf(t), nil
}

// withOutput runs write against the file at path, or against fallback when path is empty
func withOutput(path string, fallback io.Writer, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(fallback)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	return write(f)
}
