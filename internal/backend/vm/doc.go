// Package vm is an in-process backend: it records the lowered unit as a
// small register machine and can interpret it directly. It backs `aic run`
// and lets lowering be tested without a native toolchain.
package vm
