package ast

import "aic/internal/source"

// TypeKind is a type written in the source. TypeNone means "no annotation".
type TypeKind uint8

const (
	TypeNone TypeKind = iota
	TypeI32
	TypeI64
	TypeF32
	TypeF64
	TypeVoid
	TypeString
	TypeBool
)

var typeNames = map[string]TypeKind{
	"i32":    TypeI32,
	"i64":    TypeI64,
	"f32":    TypeF32,
	"f64":    TypeF64,
	"void":   TypeVoid,
	"string": TypeString,
	"bool":   TypeBool,
}

// LookupType maps a built-in type name to its kind.
func LookupType(name string) (TypeKind, bool) {
	k, ok := typeNames[name]
	return k, ok
}

func (k TypeKind) String() string {
	switch k {
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	case TypeVoid:
		return "void"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	default:
		return "<none>"
	}
}

// TypeRef is a type annotation together with where it was written.
type TypeRef struct {
	Kind TypeKind
	Span source.Span
}

func (t TypeRef) IsSet() bool { return t.Kind != TypeNone }
