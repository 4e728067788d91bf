// Package diag defines the diagnostic model shared by all compiler phases.
//
// Producers (lexer, parser, code generator, backends) emit Diagnostics through
// a Reporter; BagReporter collects them into a bounded Bag which the driver
// sorts, deduplicates and hands to internal/diagfmt for rendering.
//
// A Diagnostic carries:
//
//   - Severity: Info, Warning or Error.
//   - Code: compact numeric identifier with a stable string form (LEX1001, SYN2012, ...).
//   - Message: short, actionable text.
//   - Primary: the source.Span the problem points at.
//   - Notes: optional secondary spans ("declared here").
//
// Package diag does no formatting and no IO.
package diag
