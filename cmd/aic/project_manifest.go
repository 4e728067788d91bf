package main

import (
	"errors"
	"fmt"

	"aic/internal/project"
)

const noInputMessage = "no input file and no " + project.ManifestName + " found\nplease specify the source explicitly, e.g.:\n  aic build -i main.aic\nor create a project with: aic init"

// buildTarget is one resolved input with its output settings.
type buildTarget struct {
	input  string
	output string // empty: derived from module
	module string
}

// resolveTargets picks inputs from flags and arguments, falling back to
// the manifest found from the working directory. Flags win over the
// manifest.
func resolveTargets(inputs []string, output string) ([]buildTarget, *project.Manifest, error) {
	if len(inputs) > 1 && output != "" {
		return nil, nil, fmt.Errorf("--output cannot be used with %d inputs", len(inputs))
	}
	if len(inputs) > 0 {
		targets := make([]buildTarget, 0, len(inputs))
		for _, in := range inputs {
			targets = append(targets, buildTarget{input: in, output: output})
		}
		return targets, nil, nil
	}

	manifest, found, err := project.Discover(".")
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, errors.New(noInputMessage)
	}
	target := buildTarget{
		input:  manifest.MainPath(),
		output: output,
		module: manifest.Config.Package.Name,
	}
	if target.output == "" {
		target.output = manifest.OutputPath()
	}
	return []buildTarget{target}, manifest, nil
}
