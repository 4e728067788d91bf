// Package symbols implements the lexical environment used during lowering:
// a stack of scopes mapping names to stack slots.
package symbols
