// Package token defines lexical token kinds and trivia for the aic compiler.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Whitespace and comments never reach the parser; the lexer keeps them
//     as leading Trivia of the next significant token.
//   - Built-in type names (i32, i64, f32, f64, void, string, bool) are
//     identifiers. The parser recognizes them in type positions.
package token
