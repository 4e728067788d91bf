// Package ir describes the instruction-building capability the code
// generator lowers into. Backends (LLVM via llir, the in-process VM)
// implement Builder; the generator never sees their concrete types.
package ir
