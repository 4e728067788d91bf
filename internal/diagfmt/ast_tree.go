package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"aic/internal/ast"
	"aic/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatProgram prints the program as an indented tree with spans.
func FormatProgram(w io.Writer, b *ast.Builder, prog ast.ProgramID, fs *source.FileSet) error {
	p := b.Programs.Get(prog)
	if p == nil {
		_, err := fmt.Fprintln(w, "Program: <nil>")
		return err
	}
	header := "Program"
	if fs != nil {
		if f := fs.Get(p.Span.File); f != nil {
			header = f.Path
		}
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, formatSpan(p.Span, fs))}
	for _, id := range p.Stmts {
		root.children = append(root.children, stmtNode(b, id, fs))
	}
	var sb strings.Builder
	writeTree(&sb, root, "", true, true)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTree(sb *strings.Builder, n *treeNode, prefix string, last, root bool) {
	switch {
	case root:
		sb.WriteString(n.label + "\n")
	case last:
		sb.WriteString(prefix + "└─ " + n.label + "\n")
	default:
		sb.WriteString(prefix + "├─ " + n.label + "\n")
	}
	childPrefix := prefix
	if !root {
		if last {
			childPrefix += "   "
		} else {
			childPrefix += "│  "
		}
	}
	for i, c := range n.children {
		writeTree(sb, c, childPrefix, i == len(n.children)-1, false)
	}
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil || fs.Get(sp.File) == nil {
		return fmt.Sprintf("%d..%d", sp.Start, sp.End)
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func blockNode(label string, b *ast.Builder, ids []ast.StmtID, fs *source.FileSet) *treeNode {
	n := &treeNode{label: label}
	for _, id := range ids {
		n.children = append(n.children, stmtNode(b, id, fs))
	}
	return n
}

func stmtNode(b *ast.Builder, id ast.StmtID, fs *source.FileSet) *treeNode {
	st := b.Stmts.Get(id)
	if st == nil {
		return &treeNode{label: "<nil>"}
	}
	n := &treeNode{label: fmt.Sprintf("%s (span: %s)", st.Kind, formatSpan(st.Span, fs))}
	add := func(label string) { n.children = append(n.children, &treeNode{label: label}) }

	switch st.Kind {
	case ast.StmtFnDecl:
		fn, _ := b.Stmts.FnDecl(id)
		add("Name: " + fn.Name)
		params := &treeNode{label: fmt.Sprintf("Params (%d)", len(fn.Params))}
		for _, p := range fn.Params {
			params.children = append(params.children, &treeNode{label: p.Name + ": " + typeName(p.Type)})
		}
		n.children = append(n.children, params)
		add("Return: " + typeName(fn.Result))
		n.children = append(n.children, blockNode("Body", b, fn.Body, fs))
	case ast.StmtLet, ast.StmtVar:
		bind, _ := b.Stmts.Binding(id)
		add("Name: " + bind.Name)
		add("Type: " + typeName(bind.Type))
		if bind.Value.IsValid() {
			add("Value: " + FormatExpr(b, bind.Value))
		}
	case ast.StmtAssign:
		as, _ := b.Stmts.Assign(id)
		add("Target: " + as.Name)
		add("Value: " + FormatExpr(b, as.Value))
	case ast.StmtIf:
		ifs, _ := b.Stmts.If(id)
		add("Cond: " + FormatExpr(b, ifs.Cond))
		n.children = append(n.children, blockNode("Then", b, ifs.Then, fs))
		if ifs.HasElse {
			n.children = append(n.children, blockNode("Else", b, ifs.Else, fs))
		}
	case ast.StmtReturn:
		ret, _ := b.Stmts.Return(id)
		if ret.Value.IsValid() {
			add("Value: " + FormatExpr(b, ret.Value))
		}
	case ast.StmtExpr, ast.StmtTail:
		es, _ := b.Stmts.ExprStmt(id)
		add("Expr: " + FormatExpr(b, es.Expr))
	}
	return n
}
