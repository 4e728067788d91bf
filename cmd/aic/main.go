// Package main implements the aic CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"aic/internal/version"
)

// newRootCmd builds the command tree; every call returns fresh flag state.
// finish flushes the tracer and profilers and must run after Execute,
// also on errors.
func newRootCmd() (root *cobra.Command, finish func()) {
	var cleanup, stopProfiling func()
	root = &cobra.Command{
		Use:           "aic",
		Short:         "aic language compiler",
		Long:          `aic compiles .aic programs to native object files through LLVM IR`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if stopProfiling, err = setupProfiling(cmd); err != nil {
				return err
			}
			cleanup, err = setupTracing(cmd)
			return err
		},
	}

	root.AddCommand(newBuildCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	root.PersistentFlags().String("format", "pretty", "diagnostics format (pretty|json|msgpack)")
	root.PersistentFlags().String("trace", "", "write a compiler trace to file ('-' for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace encoding (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring trace mode")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	finish = func() {
		if cleanup != nil {
			cleanup()
		}
		if stopProfiling != nil {
			stopProfiling()
		}
	}
	return root, finish
}

// exitCodeError carries a process status without an error message.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// errReported means diagnostics were already printed.
var errReported = errors.New("errors reported")

func execute(args []string, stdout, stderr io.Writer) int {
	root, finish := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	finish()
	var exitErr *exitCodeError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.code
	case errors.Is(err, errReported):
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
