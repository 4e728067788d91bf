package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aic/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [file.aic|directory...]",
		Short: "Report diagnostics without producing output",
		Long:  `Check parses and lowers every .aic file under the given paths in parallel and prints their diagnostics`,
		RunE:  runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	of, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	results, err := driver.CheckFiles(cmd.Context(), args, driver.CheckOptions{
		MaxDiagnostics: of.maxDiagnostics,
		Jobs:           jobs,
		EnableTimings:  of.timings,
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Result != nil {
			if err := renderDiagnostics(cmd.ErrOrStderr(), r.Result.Bag, r.Result.FileSet, of); err != nil {
				return err
			}
		}
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %v\n", r.Path, r.Err)
		}
		if r.Failed() {
			failed++
		}
	}
	if !of.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s), %d with errors\n", len(results), failed)
	}
	if failed > 0 {
		return errReported
	}
	return nil
}
