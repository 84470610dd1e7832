package lsp

import (
	"fmt"

	"ucc/internal/ast"
)

// findIdentAt walks prog looking for the *ast.ID whose source span covers
// pos, returning nil if none matches. The AST carries only a single start
// Position per node (no end offset), so a node is considered a match when
// it starts on the requested line at or before the requested column and its
// name's length reaches at least that far.
func findIdentAt(prog *ast.Program, pos ast.Position) *ast.ID {
	for _, e := range allExprs(prog) {
		id, ok := e.(*ast.ID)
		if !ok {
			continue
		}
		p := id.Pos()
		if p.Line != pos.Line {
			continue
		}
		if pos.Column < p.Column || pos.Column > p.Column+len(id.Name) {
			continue
		}
		return id
	}
	return nil
}

// hoverText renders the annotation attached to the semantic analyser's walk
// (SPEC_FULL §3's ast.Annotation) as Markdown for a textDocument/hover
// response.
func hoverText(id *ast.ID) string {
	annot := id.Annot()
	if annot.UCType == nil {
		return fmt.Sprintf("`%s`: type not resolved", id.Name)
	}
	loc := annot.GenLocation
	if loc == "" {
		loc = "(register)"
	}
	return fmt.Sprintf("`%s`: %s\n\nlocation: %s", id.Name, annot.UCType.String(), loc)
}

// allExprs flattens every expression reachable from prog's declarations, in
// source order, for findIdentAt to scan.
func allExprs(prog *ast.Program) []ast.Expr {
	var out []ast.Expr
	for _, d := range prog.Decls {
		walkDecl(d, &out)
	}
	return out
}

func walkDecl(d ast.Decl, out *[]ast.Expr) {
	switch n := d.(type) {
	case *ast.VarDecl:
		if n.Init != nil {
			walkExprInto(n.Init, out)
		}
	case *ast.FuncDecl:
		if n.Body != nil {
			walkStmt(n.Body, out)
		}
	}
}

func walkStmt(s ast.Stmt, out *[]ast.Expr) {
	switch n := s.(type) {
	case *ast.Compound:
		for _, item := range n.Items {
			walkStmt(item, out)
		}
	case *ast.ExprStmt:
		walkExprInto(n.Expr, out)
	case *ast.If:
		walkExprInto(n.Cond, out)
		walkStmt(n.Then, out)
		if n.Else != nil {
			walkStmt(n.Else, out)
		}
	case *ast.While:
		walkExprInto(n.Cond, out)
		walkStmt(n.Body, out)
	case *ast.For:
		if n.Init != nil {
			walkStmt(n.Init, out)
		}
		if n.Cond != nil {
			walkExprInto(n.Cond, out)
		}
		if n.Post != nil {
			walkStmt(n.Post, out)
		}
		walkStmt(n.Body, out)
	case *ast.Return:
		if n.Expr != nil {
			walkExprInto(n.Expr, out)
		}
	case *ast.Assert:
		walkExprInto(n.Expr, out)
	case *ast.Print:
		if n.Expr != nil {
			walkExprInto(n.Expr, out)
		}
	case *ast.Read:
		if n.Expr != nil {
			walkExprInto(n.Expr, out)
		}
	case *ast.VarDecl:
		if n.Init != nil {
			walkExprInto(n.Init, out)
		}
	}
}

func walkExprInto(e ast.Expr, out *[]ast.Expr) {
	*out = append(*out, e)
	switch n := e.(type) {
	case *ast.BinaryOp:
		walkExprInto(n.Left, out)
		walkExprInto(n.Right, out)
	case *ast.UnaryOp:
		walkExprInto(n.Expr, out)
	case *ast.Assignment:
		walkExprInto(n.LValue, out)
		walkExprInto(n.RValue, out)
	case *ast.ArrayRef:
		walkExprInto(n.Array, out)
		walkExprInto(n.Index, out)
	case *ast.FuncCall:
		for _, a := range n.Args {
			walkExprInto(a, out)
		}
	case *ast.ExprList:
		for _, x := range n.Exprs {
			walkExprInto(x, out)
		}
	case *ast.InitList:
		for _, x := range n.Items {
			walkExprInto(x, out)
		}
	}
}
