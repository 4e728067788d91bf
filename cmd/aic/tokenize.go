package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aic/internal/diagfmt"
	"aic/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.aic",
		Short: "Tokenize an aic source file",
		Long:  `Tokenize breaks down an aic source file into its constituent tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().Bool("json", false, "print tokens as JSON")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	of, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], of.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if asJSON {
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if err := renderDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, of); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
