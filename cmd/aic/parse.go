package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aic/internal/diagfmt"
	"aic/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.aic",
		Short: "Parse an aic source file and output its AST",
		Long:  `Parse prints the syntax tree of a file; the tree is shown even when the file has syntax errors`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().Bool("dump", false, "dump the arena nodes with litter")
	cmd.Flags().Bool("sexpr", false, "print the program as S-expressions")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	of, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	sexpr, err := cmd.Flags().GetBool("sexpr")
	if err != nil {
		return fmt.Errorf("failed to get sexpr flag: %w", err)
	}
	if dump && sexpr {
		return fmt.Errorf("--dump and --sexpr are mutually exclusive")
	}

	result, err := driver.Parse(args[0], of.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case dump:
		err = diagfmt.DumpProgram(out, result.Builder, result.Program)
	case sexpr:
		_, err = fmt.Fprintln(out, diagfmt.FormatProgramSExpr(result.Builder, result.Program))
	default:
		err = diagfmt.FormatProgram(out, result.Builder, result.Program, result.FileSet)
	}
	if err != nil {
		return err
	}
	if err := renderDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, of); err != nil {
		return err
	}
	if !result.OK {
		return errReported
	}
	return nil
}
