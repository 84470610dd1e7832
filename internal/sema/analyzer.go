// Package sema implements uC's semantic analysis: the shadow-stack
// symbol table (symtab.go) and the type-checking visitor (this file
// and its companions), grounded on original_source/uc_sema.py's
// Visitor class. Analysis stops at the first semantic error, mirroring
// uc_sema.py's _assert_semantic raising immediately rather than
// accumulating a diagnostic list — SPEC_FULL §7's fatal-first-error
// contract.
package sema

import (
	"ucc/internal/ast"
	"ucc/internal/diag"
	"ucc/internal/types"
)

// Analyzer walks a Program, annotating every expression and
// declaration node with its resolved types.Type and returning the
// first semantic error encountered, if any.
type Analyzer struct {
	symtab *SymbolTable
	fn     *ast.FuncDecl // enclosing function, for Return's type check
}

// Analyze runs semantic analysis over prog, grounded on
// uc_sema.py's Visitor.visit_Program.
func Analyze(prog *ast.Program) error {
	a := &Analyzer{symtab: NewSymbolTable()}
	a.symtab.BeginScope()
	defer a.symtab.EndScope()
	for _, d := range prog.Decls {
		if err := a.visitDecl(d); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visitDecl(d ast.Decl) error {
	switch n := d.(type) {
	case *ast.VarDecl:
		return a.visitVarDecl(n)
	case *ast.FuncDecl:
		return a.visitFuncDecl(n)
	}
	return nil
}

func (a *Analyzer) visitStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.VarDecl:
		return a.visitVarDecl(n)
	case *ast.Compound:
		return a.visitCompound(n)
	case *ast.ExprStmt:
		_, err := a.visitExpr(n.Expr)
		return err
	case *ast.If:
		return a.visitIf(n)
	case *ast.While:
		return a.visitWhile(n)
	case *ast.For:
		return a.visitFor(n)
	case *ast.Break:
		if !n.InsideLoop {
			return diag.New(diag.ErrBreakOutsideLoop, n.Pos(), "", "", "")
		}
		return nil
	case *ast.Return:
		return a.visitReturn(n)
	case *ast.Assert:
		return a.visitAssert(n)
	case *ast.Print:
		return a.visitPrint(n)
	case *ast.Read:
		return a.visitRead(n)
	}
	return nil
}

func (a *Analyzer) visitCompound(c *ast.Compound) error {
	a.symtab.BeginScope()
	defer a.symtab.EndScope()
	for _, item := range c.Items {
		if err := a.visitStmt(item); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visitIf(n *ast.If) error {
	a.symtab.BeginScope()
	defer a.symtab.EndScope()
	condType, err := a.visitExpr(n.Cond)
	if err != nil {
		return err
	}
	if err := a.visitStmt(n.Then); err != nil {
		return err
	}
	if n.Else != nil {
		if err := a.visitStmt(n.Else); err != nil {
			return err
		}
	}
	if !types.Equal(condType, types.Bool) {
		return diag.New(diag.ErrIfCondNotBool, n.Cond.Pos(), "", "", "")
	}
	return nil
}

func (a *Analyzer) visitWhile(n *ast.While) error {
	a.symtab.BeginScope()
	defer a.symtab.EndScope()
	markLoopBody(n.Body)
	condType, err := a.visitExpr(n.Cond)
	if err != nil {
		return err
	}
	if !types.Equal(condType, types.Bool) {
		return diag.New(diag.ErrWhileCondNotBool, n.Cond.Pos(), "", "type("+condType.String()+")", "")
	}
	return a.visitStmt(n.Body)
}

// visitFor does not require its condition to be Bool: uc_sema.py's
// visit_For walks its children generically, with no boolean assertion
// analogous to visit_While's — an asymmetry the distilled spec leaves
// unmentioned too, so it is preserved rather than "fixed".
func (a *Analyzer) visitFor(n *ast.For) error {
	a.symtab.BeginScope()
	defer a.symtab.EndScope()
	markLoopBody(n.Body)
	if n.Init != nil {
		if err := a.visitStmt(n.Init); err != nil {
			return err
		}
	}
	if n.Cond != nil {
		if _, err := a.visitExpr(n.Cond); err != nil {
			return err
		}
	}
	if n.Post != nil {
		if err := a.visitStmt(n.Post); err != nil {
			return err
		}
	}
	return a.visitStmt(n.Body)
}

// markLoopBody tags every Break reachable from body without crossing
// into a nested loop's own body, ported from uc_sema.py's _find_break.
func markLoopBody(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Break:
		n.InsideLoop = true
	case *ast.Compound:
		for _, item := range n.Items {
			markLoopBody(item)
		}
	case *ast.If:
		markLoopBody(n.Then)
		if n.Else != nil {
			markLoopBody(n.Else)
		}
	}
}

func (a *Analyzer) visitAssert(n *ast.Assert) error {
	t, err := a.visitExpr(n.Expr)
	if err != nil {
		return err
	}
	if !types.Equal(t, types.Bool) {
		return diag.New(diag.ErrAssertNotBool, n.Expr.Pos(), "", "", "")
	}
	return nil
}

func (a *Analyzer) visitReturn(n *ast.Return) error {
	if n.Expr == nil {
		return nil
	}
	_, err := a.visitExpr(n.Expr)
	return err
}
