package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/ingestion"
	"github.com/jonathan/candidate-matcher/internal/logger"
	"github.com/jonathan/candidate-matcher/internal/observability"
	"github.com/jonathan/candidate-matcher/internal/profile"
	"github.com/jonathan/candidate-matcher/internal/schemas"
)

func newParseProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-profile",
		Short: "Normalize one free-text profile into Profile JSON",
		Long:  "Segment a raw candidate profile text file and normalize it into Profile JSON that validates against the profile schema.",
		Args:  cobra.NoArgs,
		RunE:  runParseProfile,
	}

	cmd.Flags().StringP("in", "i", "", "Path to the raw profile text file (required)")
	cmd.Flags().String("id", "", "Candidate id (defaults to the file name without extension)")
	cmd.Flags().StringP("out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().String("as-of", "", "Month that ongoing roles resolve to, YYYY-MM (default current month)")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func runParseProfile(cmd *cobra.Command, _ []string) error {
	inPath, _ := cmd.Flags().GetString("in")
	candidateID, _ := cmd.Flags().GetString("id")
	outPath, _ := cmd.Flags().GetString("out")
	asOfValue, _ := cmd.Flags().GetString("as-of")
	verbose, _ := cmd.Flags().GetBool("verbose")

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	asOf, err := parseAsOf(asOfValue)
	if err != nil {
		return err
	}
	if candidateID == "" {
		candidateID = ingestion.CandidateIDFromPath(inPath)
	}

	raw, err := ingestion.ReadText(inPath)
	if err != nil {
		return err
	}

	p, err := profile.NormalizeText(candidateID, raw, profile.Options{AsOf: asOf})
	if err != nil {
		return fmt.Errorf("failed to normalize profile: %w", err)
	}
	logger.WithCandidate(log, p.CandidateID).Debug("profile normalized",
		zap.Int("experience", len(p.Experience)),
		zap.Int("education", len(p.Education)),
		zap.Int("skills", len(p.Skills)),
	)

	if err := checkSchema(log, schemas.Profile, p); err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintProfile(p)
	}

	return withOutput(outPath, cmd.OutOrStdout(), func(w io.Writer) error {
		return writeJSON(w, p)
	})
}

// checkSchema validates v against the named schema. A document that does not
// match is an error; a schema that cannot be loaded only produces a warning.
func checkSchema(log *zap.Logger, name string, v any) error {
	err := schemas.ValidateValue(name, v)
	if err == nil {
		return nil
	}

	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	case errors.As(err, &schemaLoadErr):
		log.Warn("could not validate output against schema", zap.String("schema", name), zap.Error(err))
		return nil
	default:
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := w.Write(append(jsonBytes, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
