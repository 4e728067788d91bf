package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"aic/internal/backend/llvm"
	"aic/internal/buildpipeline"
	"aic/internal/driver"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] [file.aic...]",
		Short: "Compile aic sources to object files",
		Long: `Build compiles each input to a native object file (<module>.o by default).
Without inputs the main file of the nearest aic.toml is built.`,
		RunE: buildExecution,
	}
	cmd.Flags().StringSliceP("input", "i", nil, "input source file (repeatable)")
	cmd.Flags().StringP("output", "o", "", "output object file (single input only)")
	cmd.Flags().Bool("emit-ir", false, "print LLVM IR to stdout instead of writing an object file")
	cmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	cmd.Flags().Int("jobs", 0, "max parallel builds (0=auto)")
	cmd.Flags().Bool("print-commands", false, "print clang/llc invocations")
	// --emit-llvm остаётся синонимом --emit-ir
	cmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "emit-llvm" {
			name = "emit-ir"
		}
		return pflag.NormalizedName(name)
	})
	return cmd
}

func buildExecution(cmd *cobra.Command, args []string) error {
	of, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	inputs, err := cmd.Flags().GetStringSlice("input")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	emitIR, err := cmd.Flags().GetBool("emit-ir")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	printCommands, err := cmd.Flags().GetBool("print-commands")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	targets, manifest, err := resolveTargets(append(inputs, args...), output)
	if err != nil {
		return err
	}
	if manifest != nil && !cmd.Flags().Changed("emit-ir") {
		emitIR = manifest.Config.Build.EmitIR
	}

	cwd, cwdErr := os.Getwd()
	if cwdErr != nil {
		cwd = "."
	}
	llvmOpts := llvm.Options{}
	if printCommands {
		llvmOpts.CommandLog = cmd.ErrOrStderr()
	}
	reqs := make([]*buildpipeline.BuildRequest, 0, len(targets))
	paths := make([]string, 0, len(targets))
	for _, t := range targets {
		reqs = append(reqs, &buildpipeline.BuildRequest{
			CompileRequest: buildpipeline.CompileRequest{
				Input:          t.input,
				MaxDiagnostics: of.maxDiagnostics,
				LLVM:           llvmOpts,
				BaseDir:        cwd,
			},
			Output: t.output,
			Module: t.module,
			EmitIR: emitIR,
		})
		paths = append(paths, t.input)
	}

	var results []buildpipeline.BuildResult
	if !emitIR && shouldUseTUI(uiModeValue, cmd.OutOrStdout()) {
		files := buildpipeline.ProgressFiles(paths, cwd)
		results, err = runBuildWithUI(cmd.Context(), cmd.OutOrStdout(), "aic build", files, reqs, jobs)
	} else {
		results, err = buildpipeline.BuildAll(cmd.Context(), reqs, jobs)
	}

	failed := false
	for _, res := range results {
		if res.Compile != nil {
			if renderErr := renderDiagnostics(cmd.ErrOrStderr(), res.Compile.Bag, res.Compile.FileSet, of); renderErr != nil {
				return renderErr
			}
			failed = failed || res.Compile.Bag.HasErrors()
		}
	}
	if err != nil {
		if errors.Is(err, driver.ErrDiagnostics) && failed {
			return errReported
		}
		return err
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		if emitIR {
			if len(results) > 1 {
				fmt.Fprintf(out, "; %s\n", res.Input)
			}
			fmt.Fprint(out, res.IR)
			if !strings.HasSuffix(res.IR, "\n") {
				fmt.Fprintln(out)
			}
			continue
		}
		if !of.quiet {
			fmt.Fprintf(out, "compiled to %s\n", res.OutputPath)
		}
	}
	if of.timings {
		for _, res := range results {
			printStageTimings(cmd.ErrOrStderr(), res.Input, res.Timings)
		}
	}
	return nil
}
