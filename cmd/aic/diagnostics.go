package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aic/internal/diag"
	"aic/internal/diagfmt"
	"aic/internal/source"
)

type outputFlags struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	format         string
}

// readOutputFlags collects the persistent flags shared by all commands.
func readOutputFlags(cmd *cobra.Command) (outputFlags, error) {
	var of outputFlags
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return of, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		of.color = true
	case "off":
		of.color = false
	case "auto":
		of.color = isTerminal(cmd.ErrOrStderr())
	default:
		return of, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !of.color

	if of.quiet, err = flags.GetBool("quiet"); err != nil {
		return of, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if of.timings, err = flags.GetBool("timings"); err != nil {
		return of, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if of.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return of, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if of.format, err = flags.GetString("format"); err != nil {
		return of, fmt.Errorf("failed to get format flag: %w", err)
	}
	of.format = strings.ToLower(of.format)
	switch of.format {
	case "pretty", "json", "msgpack":
	default:
		return of, fmt.Errorf("unsupported format %q (must be pretty, json or msgpack)", of.format)
	}
	return of, nil
}

// renderDiagnostics writes bag to w in the selected format. Empty bags
// print nothing.
func renderDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, of outputFlags) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
	}
	switch of.format {
	case "json":
		return diagfmt.JSON(w, bag, fs, jsonOpts)
	case "msgpack":
		return diagfmt.Msgpack(w, bag, fs, jsonOpts)
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     of.color,
			ShowNotes: true,
		})
		return nil
	}
}
