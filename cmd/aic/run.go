package main

import (
	"errors"

	"github.com/spf13/cobra"

	"aic/internal/buildpipeline"
	"aic/internal/driver"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [file.aic]",
		Short: "Compile and execute a program on the built-in VM",
		Long: `Run compiles the file with the interpreter backend and exits with the
value returned by main, truncated to 8 bits like a process status.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExecution,
	}
	cmd.Flags().Int("max-depth", 0, "call depth limit of the VM (0=default)")
	return cmd
}

func runExecution(cmd *cobra.Command, args []string) error {
	of, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return err
	}
	targets, _, err := resolveTargets(args, "")
	if err != nil {
		return err
	}

	res, err := buildpipeline.Run(cmd.Context(), &buildpipeline.RunRequest{
		CompileRequest: buildpipeline.CompileRequest{
			Input:          targets[0].input,
			MaxDiagnostics: of.maxDiagnostics,
		},
		MaxDepth: maxDepth,
	})
	if res.Compile != nil {
		if renderErr := renderDiagnostics(cmd.ErrOrStderr(), res.Compile.Bag, res.Compile.FileSet, of); renderErr != nil {
			return renderErr
		}
	}
	if of.timings {
		printStageTimings(cmd.ErrOrStderr(), targets[0].input, res.Timings)
	}
	if err != nil {
		if errors.Is(err, driver.ErrDiagnostics) {
			return errReported
		}
		return err
	}
	if res.ExitCode != 0 {
		return &exitCodeError{code: int(res.ExitCode)}
	}
	return nil
}
