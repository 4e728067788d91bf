package driver

import (
	"fortio.org/safecast"

	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/parser"
	"aic/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Program ast.ProgramID
	Bag     *diag.Bag
	OK      bool
}

// Parse runs only the front end; the AST is returned even when it has errors.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(file, builder, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		Program: res.Program,
		Bag:     bag,
		OK:      res.OK() && !bag.HasErrors(),
	}, nil
}
