package parser_test

import (
	"testing"
)

func TestPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mul over add", "2 + 3 * 4", "(+ 2 (* 3 4))"},
		{"mul first", "2 * 3 + 4", "(+ (* 2 3) 4)"},
		{"unary binds tighter", "-2 * 3", "(* (- 2) 3)"},
		{"double unary", "!!a", "(! (! a))"},
		{"neg of paren", "-(1 + 2)", "(- (+ 1 2))"},
		{"sub left assoc", "10 - 3 - 2", "(- (- 10 3) 2)"},
		{"div left assoc", "8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"comparison over equality", "a < b == c > d", "(== (< a b) (> c d))"},
		{"equality left assoc", "a == b != c", "(!= (== a b) c)"},
		{"and over or", "a || b && c", "(|| a (&& b c))"},
		{"or left assoc", "a || b || c", "(|| (|| a b) c)"},
		{"arith under compare", "a + 1 <= b * 2", "(<= (+ a 1) (* b 2))"},
		{"compare under and", "x > 1 && y == 2", "(&& (> x 1) (== y 2))"},
		{"parens override", "(2 + 3) * 4", "(* (+ 2 3) 4)"},
		{"call args", "f(1, g(2), x + 1)", "(call f 1 (call g 2) (+ x 1))"},
		{"call no args", "f()", "(call f)"},
		{"bools", "true && !false", "(&& true (! false))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseExprText(t, tt.input); got != tt.want {
				t.Errorf("%s\nwant: %s\ngot:  %s", tt.input, tt.want, got)
			}
		})
	}
}
