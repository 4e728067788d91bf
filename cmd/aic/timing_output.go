package main

import (
	"fmt"
	"io"
	"time"

	"aic/internal/buildpipeline"
)

var timingLabels = map[buildpipeline.Stage]string{
	buildpipeline.StageParse:   "parsed",
	buildpipeline.StageCodegen: "lowered",
	buildpipeline.StageVerify:  "verified",
	buildpipeline.StageEmit:    "emitted",
	buildpipeline.StageRun:     "ran",
}

func printStageTimings(out io.Writer, name string, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	if name != "" {
		fmt.Fprintf(out, "%s:\n", name)
	}
	for _, stage := range timings.Stages() {
		label, ok := timingLabels[stage]
		if !ok {
			label = string(stage)
		}
		fmt.Fprintf(out, "  %-9s %.2f ms\n", label, toMillis(timings.Duration(stage)))
	}
	fmt.Fprintf(out, "  %-9s %.2f ms\n", "total", toMillis(timings.Total()))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
