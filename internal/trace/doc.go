// Package trace records what the compiler is doing: driver steps, passes
// and per-function lowering.
//
// Enable it from the command line:
//
//	aic build --trace=- --trace-level=func main.aic
//
// Tracers:
//
//   - Nop: disabled tracing, zero cost
//   - StreamTracer: writes every event to a file or stderr
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans events out
//
// Levels select scopes: phase shows driver and pass spans, func adds one
// span per lowered function, debug shows everything.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
