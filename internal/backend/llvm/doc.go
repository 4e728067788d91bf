// Package llvm implements ir.Builder on top of github.com/llir/llvm and
// turns the resulting module into a native object with clang (or llc).
package llvm
