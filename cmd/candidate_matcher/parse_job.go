package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/ingestion"
	"github.com/jonathan/candidate-matcher/internal/logger"
	"github.com/jonathan/candidate-matcher/internal/observability"
	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/schemas"
)

func newParseJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-job",
		Short: "Extract a structured JobRequirement from a job description",
		Long:  "Parse a job description text file into JobRequirement JSON that validates against the job_requirement schema.",
		Args:  cobra.NoArgs,
		RunE:  runParseJob,
	}

	cmd.Flags().StringP("in", "i", "", "Path to the job description text file (required)")
	cmd.Flags().StringP("out", "o", "", "Path to output JSON file (default stdout)")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func runParseJob(cmd *cobra.Command, _ []string) error {
	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("out")
	verbose, _ := cmd.Flags().GetBool("verbose")

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	text, err := ingestion.ReadText(inPath)
	if err != nil {
		return err
	}

	req, err := parsing.ExtractRequirement(text)
	if err != nil {
		var emptyErr *parsing.EmptyRequirementError
		if errors.As(err, &emptyErr) {
			return fmt.Errorf("%s yields no requirement: %w", inPath, err)
		}
		return fmt.Errorf("failed to parse job description: %w", err)
	}
	log.Debug("requirement extracted",
		zap.String(logger.FieldRequirement, req.ID.String()),
		zap.Strings("required", req.Required),
		zap.Strings("preferred", req.Preferred),
	)

	if err := checkSchema(log, schemas.JobRequirement, req); err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintJobRequirement(req)
	}

	return withOutput(outPath, cmd.OutOrStdout(), func(w io.Writer) error {
		return writeJSON(w, req)
	})
}
