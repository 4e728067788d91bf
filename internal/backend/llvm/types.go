package llvm

import (
	lltypes "github.com/llir/llvm/ir/types"

	"aic/internal/ir"
)

func llvmType(t ir.Type) lltypes.Type {
	switch t {
	case ir.I1:
		return lltypes.I1
	case ir.I32:
		return lltypes.I32
	case ir.I64:
		return lltypes.I64
	default:
		return lltypes.Void
	}
}

func intType(t ir.Type) *lltypes.IntType {
	switch t {
	case ir.I1:
		return lltypes.I1
	case ir.I64:
		return lltypes.I64
	default:
		return lltypes.I32
	}
}
