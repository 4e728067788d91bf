package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"aic/internal/buildpipeline"
	"aic/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch mode := uiMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI resolves auto mode: a real terminal that can redraw lines.
func shouldUseTUI(mode uiMode, out io.Writer) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return isTerminal(out) && os.Getenv("TERM") != "dumb"
}

type buildOutcome struct {
	results []buildpipeline.BuildResult
	err     error
}

// runBuildWithUI runs BuildAll while a progress view consumes its events.
func runBuildWithUI(ctx context.Context, out io.Writer, title string, files []string, reqs []*buildpipeline.BuildRequest, jobs int) ([]buildpipeline.BuildResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	withSink := make([]*buildpipeline.BuildRequest, len(reqs))
	for i, req := range reqs {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		withSink[i] = &reqCopy
	}

	go func() {
		res, err := buildpipeline.BuildAll(ctx, withSink, jobs)
		outcomeCh <- buildOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// сборка не должна встать на полном канале
		for range events {
		}
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
