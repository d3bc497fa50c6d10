package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/schemas"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file.json>",
		Short: "Validate a JSON file against an embedded schema",
		Long:  fmt.Sprintf("Validate a JSON file against one of the embedded schemas (%s).", strings.Join(schemas.Names(), ", ")),
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	cmd.Flags().StringP("schema", "s", schemas.MatchExport, "Schema name")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("schema")
	if !slices.Contains(schemas.Names(), name) {
		return fmt.Errorf("unknown schema %q (available: %s)", name, strings.Join(schemas.Names(), ", "))
	}

	if err := schemas.ValidateFile(name, args[0]); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid %s document\n", args[0], name)
	return nil
}
