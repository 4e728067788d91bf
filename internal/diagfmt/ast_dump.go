package diagfmt

import (
	"io"

	"github.com/sanity-io/litter"

	"aic/internal/ast"
)

var dumpOptions = litter.Options{
	HidePrivateFields: true,
	Compact:           false,
	StripPackageNames: true,
}

// DumpProgram writes the raw arena contents reachable from prog.
func DumpProgram(w io.Writer, b *ast.Builder, prog ast.ProgramID) error {
	p := b.Programs.Get(prog)
	snapshot := struct {
		Program  *ast.Program
		Stmts    []ast.Stmt
		Fns      []ast.FnDeclData
		Bindings []ast.BindingData
		Assigns  []ast.AssignData
		Ifs      []ast.IfData
		Returns  []ast.ReturnData
		ExprStmt []ast.ExprStmtData
		Exprs    []ast.Expr
		IntLits  []ast.ExprIntLitData
		BoolLits []ast.ExprBoolLitData
		Binaries []ast.ExprBinaryData
		Unaries  []ast.ExprUnaryData
		Calls    []ast.ExprCallData
		Vars     []ast.ExprVarData
	}{
		Program:  p,
		Stmts:    b.Stmts.Arena.Slice(),
		Fns:      b.Stmts.Fns.Slice(),
		Bindings: b.Stmts.Bindings.Slice(),
		Assigns:  b.Stmts.Assigns.Slice(),
		Ifs:      b.Stmts.Ifs.Slice(),
		Returns:  b.Stmts.Returns.Slice(),
		ExprStmt: b.Stmts.Exprs.Slice(),
		Exprs:    b.Exprs.Arena.Slice(),
		IntLits:  b.Exprs.IntLits.Slice(),
		BoolLits: b.Exprs.BoolLits.Slice(),
		Binaries: b.Exprs.Binaries.Slice(),
		Unaries:  b.Exprs.Unaries.Slice(),
		Calls:    b.Exprs.Calls.Slice(),
		Vars:     b.Exprs.Vars.Slice(),
	}
	_, err := io.WriteString(w, dumpOptions.Sdump(snapshot)+"\n")
	return err
}

// Sdump is litter with the package dump settings; tests use it in failure messages.
func Sdump(values ...any) string {
	return dumpOptions.Sdump(values...)
}
