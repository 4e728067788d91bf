package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"aic/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new aic project",
		Long: `Initialize a new aic project by creating a project manifest (aic.toml)
and an entry file (main.aic). If [path|name] is omitted, initializes the
current directory. A missing directory is created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	of, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return err
	}
	if st, statErr := os.Stat(target); statErr == nil && !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	written, err := project.Init(target, name)
	if err != nil {
		return err
	}
	if of.quiet {
		return nil
	}
	for _, path := range written {
		rel, relErr := filepath.Rel(target, path)
		if relErr != nil {
			rel = path
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", filepath.Join(filepath.Base(target), rel))
	}
	return nil
}
