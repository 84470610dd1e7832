package sema

import (
	"fmt"

	"ucc/internal/ast"
	"ucc/internal/diag"
	"ucc/internal/types"
)

// visitExpr type-checks e, annotates it with its resolved type, and
// returns that type. Ported from uc_sema.py's per-node visit_* methods.
func (a *Analyzer) visitExpr(e ast.Expr) (types.Type, error) {
	switch n := e.(type) {
	case *ast.ID:
		return a.visitID(n)
	case *ast.Constant:
		return a.visitConstant(n)
	case *ast.BinaryOp:
		return a.visitBinaryOp(n)
	case *ast.UnaryOp:
		return a.visitUnaryOp(n)
	case *ast.Assignment:
		return a.visitAssignment(n)
	case *ast.ArrayRef:
		return a.visitArrayRef(n)
	case *ast.FuncCall:
		return a.visitFuncCall(n)
	case *ast.ExprList:
		return a.visitExprList(n)
	case *ast.InitList:
		return a.visitInitList(n)
	}
	return nil, diag.Internal(fmt.Sprintf("unhandled expression %T", e), e.Pos())
}

func (a *Analyzer) visitID(n *ast.ID) (types.Type, error) {
	if a.symtab.Declared(n.Name) == NotDeclared {
		return nil, diag.New(diag.ErrUndefinedName, n.Pos(), n.Name, "", "")
	}
	n.Annotation.Scope = true
	t := a.symtab.Lookup(n.Name)
	n.Annotation.UCType = t
	return t, nil
}

func (a *Analyzer) visitConstant(n *ast.Constant) (types.Type, error) {
	var t types.Type
	if n.Kind == "string" {
		size := len(n.Value)
		t = types.NewArray(types.Char, &size)
	} else {
		resolved, ok := types.FromName(n.Kind)
		if !ok {
			return nil, diag.Internal("unknown constant kind "+n.Kind, n.Pos())
		}
		t = resolved
	}
	n.Annotation.UCType = t
	return t, nil
}

func (a *Analyzer) visitBinaryOp(n *ast.BinaryOp) (types.Type, error) {
	lt, err := a.visitExpr(n.Left)
	if err != nil {
		return nil, err
	}
	rt, err := a.visitExpr(n.Right)
	if err != nil {
		return nil, err
	}
	if !types.Equal(lt, rt) {
		return nil, diag.New(diag.ErrBinaryOpTypeMismatch, n.Pos(), n.Op, "", "")
	}
	var result types.Type
	if lt.BinaryOps()[n.Op] {
		result = lt
	} else if lt.RelOps()[n.Op] {
		result = types.Bool
	} else {
		return nil, diag.New(diag.ErrBinaryOpUnsupported, n.Pos(), n.Op, "type("+lt.String()+")", "")
	}
	n.Annotation.UCType = result
	return result, nil
}

func (a *Analyzer) visitUnaryOp(n *ast.UnaryOp) (types.Type, error) {
	t, err := a.visitExpr(n.Expr)
	if err != nil {
		return nil, err
	}
	if !t.UnaryOps()[stripPostfix(n.Op)] {
		return nil, diag.New(diag.ErrUnaryOpUnsupported, n.Pos(), n.Op, "", "")
	}
	n.Annotation.UCType = t
	return t, nil
}

// stripPostfix maps the postfix op spellings "p++"/"p--" back onto the
// "++"/"--" keys types.Type.UnaryOps() carries, since uC's increment
// and decrement are the same operator in prefix or postfix position.
func stripPostfix(op string) string {
	switch op {
	case "p++":
		return "++"
	case "p--":
		return "--"
	default:
		return op
	}
}

func (a *Analyzer) visitAssignment(n *ast.Assignment) (types.Type, error) {
	rt, err := a.visitExpr(n.RValue)
	if err != nil {
		return nil, err
	}
	lt, err := a.visitExpr(n.LValue)
	if err != nil {
		return nil, err
	}
	if !types.Equal(lt, rt) {
		return nil, diag.New(diag.ErrAssignTypeMismatch, n.Pos(), "", "type("+lt.String()+")", "type("+rt.String()+")")
	}
	if !lt.AssignOps()[n.Op] {
		return nil, diag.New(diag.ErrAssignOpUnsupported, n.Pos(), n.Op, "type("+lt.String()+")", "")
	}
	n.Annotation.UCType = types.Void
	return types.Void, nil
}

func (a *Analyzer) visitArrayRef(n *ast.ArrayRef) (types.Type, error) {
	arrType, err := a.visitExpr(n.Array)
	if err != nil {
		return nil, err
	}
	idxType, err := a.visitExpr(n.Index)
	if err != nil {
		return nil, err
	}
	if !types.Equal(idxType, types.Int) {
		return nil, diag.New(diag.ErrArrayIndexNotInt, n.Index.Pos(), "", "type("+idxType.String()+")", "")
	}
	arr, ok := arrType.(*types.Array)
	if !ok {
		return nil, diag.Internal("indexing a non-array value", n.Pos())
	}
	n.Annotation.UCType = arr.Elem
	return arr.Elem, nil
}

func (a *Analyzer) visitFuncCall(n *ast.FuncCall) (types.Type, error) {
	params, paramNames, ok := a.symtab.LookupFuncParams(n.Callee)
	if !ok {
		return nil, diag.New(diag.ErrNotAFunction, n.Pos(), n.Callee, "", "")
	}
	retType := a.symtab.Lookup(n.Callee)
	argTypes := make([]types.Type, len(n.Args))
	for i, arg := range n.Args {
		t, err := a.visitExpr(arg)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}
	if len(argTypes) != len(params) {
		return nil, diag.New(diag.ErrArgCountMismatch, n.Pos(), n.Callee, "", "")
	}
	for i, pt := range params {
		if !types.Equal(pt, argTypes[i]) {
			name := ""
			if i < len(paramNames) {
				name = paramNames[i]
			}
			return nil, diag.New(diag.ErrArgTypeMismatch, n.Args[i].Pos(), name, "", "")
		}
	}
	n.Annotation.UCType = retType
	return retType, nil
}

func (a *Analyzer) visitExprList(n *ast.ExprList) (types.Type, error) {
	var last types.Type = types.Void
	for _, e := range n.Exprs {
		t, err := a.visitExpr(e)
		if err != nil {
			return nil, err
		}
		last = t
	}
	n.Annotation.UCType = last
	return last, nil
}

// visitInitList requires every item to itself be a Constant or nested
// InitList (error 20), then types the list as an array of its first
// item's type sized by its length, matching uc_sema.py's visit_InitList.
func (a *Analyzer) visitInitList(n *ast.InitList) (types.Type, error) {
	var elemType types.Type = types.Int
	for i, item := range n.Items {
		switch item.(type) {
		case *ast.Constant, *ast.InitList:
		default:
			return nil, diag.New(diag.ErrExpectedConstant, item.Pos(), "", "", "")
		}
		t, err := a.visitExpr(item)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			elemType = t
		}
	}
	size := len(n.Items)
	result := types.NewArray(elemType, &size)
	n.Annotation.UCType = result
	return result, nil
}
