package parser

import (
	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/lexer"
	"aic/internal/source"
	"aic/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program ast.ProgramID
	// Errors counts syntax errors, including those dropped by MaxErrors.
	Errors uint
	// InvalidTokens counts lexer error tokens that reached the parser.
	InvalidTokens uint
}

// OK reports whether the program may be handed to code generation.
func (r Result) OK() bool {
	return r.Errors == 0 && r.InvalidTokens == 0
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	invalid  uint
}

// ParseFile parses one file. Lexical and syntax diagnostics both go to opts.Reporter.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return Parse(lx, arenas, opts)
}

// Parse runs the parser over an existing lexer.
func Parse(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		opts:     opts,
		lastSpan: source.Span{File: lx.File().ID},
	}
	prog := p.parseProgram()
	return Result{
		Program:       prog,
		Errors:        p.opts.CurrentErrors,
		InvalidTokens: p.invalid,
	}
}

// ParseText is a shortcut for tests and tools: it parses src held in a fresh
// FileSet and returns everything needed to inspect the result.
func ParseText(name string, src []byte, maxErrors int) (*source.FileSet, *ast.Builder, Result, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, src))
	bag := diag.NewBag(maxErrors)
	arenas := ast.NewBuilder(ast.Hints{})
	res := ParseFile(file, arenas, Options{MaxErrors: uint(max(maxErrors, 0)), Reporter: diag.BagReporter{Bag: bag}})
	return fs, arenas, res, bag
}

// parseProgram — верхний уровень: список операторов до EOF.
func (p *Parser) parseProgram() ast.ProgramID {
	start := p.peek().Span
	stmts := p.parseStmtList(token.EOF, true)
	// всё, что осталось после остановки по лимиту ошибок, просто пропускаем
	for !p.at(token.EOF) {
		p.advance()
	}
	return p.arenas.Programs.New(start.Cover(p.lastSpan), stmts)
}

// parseStmtList reads statements until closing (RBrace or EOF). A tail
// expression is produced only right before closing, so it is always last.
func (p *Parser) parseStmtList(closing token.Kind, top bool) []ast.StmtID {
	var stmts []ast.StmtID
	for !p.at(closing) && !p.at(token.EOF) && !p.opts.Enough() {
		if p.at(token.Semicolon) {
			p.advance() // пустой оператор
			continue
		}
		before := p.peek()
		stmtID, ok := p.parseStmt(closing, top)
		if !ok {
			p.resyncStatement(closing)
			// гарантируем прогресс
			if after := p.peek(); after.Kind != token.EOF && after.Kind != closing && after.Span == before.Span {
				p.advance()
			}
			continue
		}
		if stmtID.IsValid() {
			stmts = append(stmts, stmtID)
		}
	}
	return stmts
}
