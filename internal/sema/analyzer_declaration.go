package sema

import (
	"ucc/internal/ast"
	"ucc/internal/diag"
	"ucc/internal/types"
)

// visitVarDecl type-checks a scalar or array variable declaration,
// ported from uc_sema.py's visit_VarDecl/visit_ArrayDecl/_check_array.
func (a *Analyzer) visitVarDecl(n *ast.VarDecl) error {
	base, ok := types.FromName(n.TypeName)
	if !ok {
		return diag.Internal("unknown type name "+n.TypeName, n.Pos())
	}
	declType := types.FromDims(base, n.Dims)

	if a.symtab.Declared(n.Name) == DeclaredLocal {
		return diag.New(diag.ErrDuplicateDeclaration, n.Pos(), n.Name, "", "")
	}

	if n.Init != nil {
		initType, err := a.visitExpr(n.Init)
		if err != nil {
			return err
		}
		if n.IsArray() {
			if err := checkArrayInit(n, declType, initType); err != nil {
				return err
			}
			declType = resizeOuterDim(declType, initType)
		} else {
			if _, isList := n.Init.(*ast.InitList); isList {
				return diag.New(diag.ErrScalarInitWithList, n.Pos(), n.Name, "", "")
			}
			if !types.Equal(declType, initType) {
				return diag.New(diag.ErrInitTypeMismatch, n.Pos(), n.Name, "", "")
			}
		}
	} else if n.IsArray() {
		if err := checkElidedDims(n, declType); err != nil {
			return err
		}
	}

	n.Annotation.UCType = declType
	a.symtab.Declare(n.Name, declType)
	return nil
}

// checkArrayInit mirrors _check_array's two redundant-looking size
// assertions (codes 14 and 10), both evaluated whenever the declared
// outer dimension is already sized, exactly as the original does.
func checkArrayInit(n *ast.VarDecl, declType, initType types.Type) error {
	arr, ok := declType.(*types.Array)
	if !ok {
		return nil
	}
	if _, isList := n.Init.(*ast.InitList); isList {
		if err := checkDims(n, declType, initType); err != nil {
			return err
		}
	}
	if arr.Size != nil {
		if _, isList := n.Init.(*ast.InitList); isList {
			if !types.Equal(declType, initType) {
				return diag.New(diag.ErrListVarSizeMismatch, n.Pos(), "", "", "")
			}
		}
		if !types.Equal(declType, initType) {
			return diag.New(diag.ErrArrayInitSizeMismatch, n.Pos(), n.Name, "", "")
		}
	}
	return nil
}

// checkDims requires every sibling item of a (possibly nested)
// InitList to carry the same shape, ported from uc_sema.py's
// _check_dim. Mismatched nested list lengths raise error 13.
func checkDims(n *ast.VarDecl, declType, initType types.Type) error {
	list, ok := n.Init.(*ast.InitList)
	if !ok {
		return nil
	}
	var prevSize = -1
	for _, item := range list.Items {
		nested, ok := item.(*ast.InitList)
		if !ok {
			continue
		}
		if prevSize == -1 {
			prevSize = len(nested.Items)
			continue
		}
		if len(nested.Items) != prevSize {
			return diag.New(diag.ErrInitListSizeMismatch, n.Pos(), "", "", "")
		}
	}
	return nil
}

// resizeOuterDim infers an elided outermost dimension's size from the
// initializer's resolved type, mirroring _check_array's
// `array_type.size = init.uc_type.size` when the declared size is nil.
func resizeOuterDim(declType, initType types.Type) types.Type {
	arr, ok := declType.(*types.Array)
	if !ok || arr.Size != nil {
		return declType
	}
	initArr, ok := initType.(*types.Array)
	if !ok {
		return declType
	}
	return types.NewArray(arr.Elem, initArr.Size)
}

// checkElidedDims requires every dimension of an uninitialised array
// declaration to carry an explicit size (error 9), ported from
// _check_array's else branch.
func checkElidedDims(n *ast.VarDecl, declType types.Type) error {
	t := declType
	for {
		arr, ok := t.(*types.Array)
		if !ok {
			return nil
		}
		if arr.Size == nil {
			return diag.New(diag.ErrArrayDimMismatch, n.Pos(), "", "", "")
		}
		t = arr.Elem
	}
}

// visitFuncDecl implements the scope discipline from uc_sema.py's
// visit_Decl/visit_FuncDef pair: the function's own name is bound in
// the scope active before its body's scope is pushed (so it remains
// visible afterwards, and is reachable from within the body for
// recursive calls), while its parameters live in the pushed scope.
func (a *Analyzer) visitFuncDecl(n *ast.FuncDecl) error {
	if a.symtab.Declared(n.Name) == DeclaredLocal {
		return diag.New(diag.ErrDuplicateDeclaration, n.Pos(), n.Name, "", "")
	}
	retType, ok := types.FromName(n.ReturnType)
	if !ok {
		return diag.Internal("unknown return type "+n.ReturnType, n.Pos())
	}
	paramNames := make([]string, len(n.Params))
	for i, p := range n.Params {
		paramNames[i] = p.Name
	}
	a.symtab.DeclareFunc(n.Name, retType, paramNames, ast.ParamTypes(n.Params))
	n.Annotation.UCType = retType

	a.symtab.BeginScope()
	defer a.symtab.EndScope()
	for _, p := range n.Params {
		pt, ok := types.FromName(p.TypeName)
		if !ok {
			return diag.Internal("unknown parameter type "+p.TypeName, p.Pos())
		}
		p.Annotation.UCType = pt
		a.symtab.Declare(p.Name, pt)
	}

	prevFn := a.fn
	a.fn = n
	defer func() { a.fn = prevFn }()

	if err := a.visitCompound(n.Body); err != nil {
		return err
	}
	return a.checkReturns(n, retType)
}

// checkReturns walks the function body for every Return statement
// (without descending into a nested function, which uC has no syntax
// for) and checks each against the declared return type, matching
// uc_sema.py's _find_return. A non-void function with no Return at
// all is reported the same way as a Return mismatch (error 24),
// against an implied `type(void)`.
func (a *Analyzer) checkReturns(fn *ast.FuncDecl, retType types.Type) error {
	found := false
	var walk func(s ast.Stmt) error
	walk = func(s ast.Stmt) error {
		switch n := s.(type) {
		case *ast.Return:
			found = true
			var actual types.Type = types.Void
			if n.Expr != nil {
				actual = n.Expr.Annot().UCType
			}
			if !types.Equal(actual, retType) {
				return diag.New(diag.ErrReturnTypeMismatch, n.Pos(), "", "type("+actual.String()+")", "type("+retType.String()+")")
			}
		case *ast.Compound:
			for _, item := range n.Items {
				if err := walk(item); err != nil {
					return err
				}
			}
		case *ast.If:
			if err := walk(n.Then); err != nil {
				return err
			}
			if n.Else != nil {
				return walk(n.Else)
			}
		case *ast.While:
			return walk(n.Body)
		case *ast.For:
			return walk(n.Body)
		}
		return nil
	}
	if err := walk(fn.Body); err != nil {
		return err
	}
	if !found && !types.Equal(retType, types.Void) {
		return diag.New(diag.ErrReturnTypeMismatch, fn.Body.Pos(), "", "type(void)", "type("+retType.String()+")")
	}
	fn.HasReturn = found
	return nil
}

func (a *Analyzer) visitPrint(n *ast.Print) error {
	if n.Expr == nil {
		return nil
	}
	items := []ast.Expr{n.Expr}
	if list, ok := n.Expr.(*ast.ExprList); ok {
		items = list.Exprs
	}
	for _, item := range items {
		t, err := a.visitExpr(item)
		if err != nil {
			return err
		}
		if !printable(t) {
			if id, ok := item.(*ast.ID); ok {
				return diag.New(diag.ErrPrintArgNotBasicVariable, item.Pos(), id.Name, "", "")
			}
			return diag.New(diag.ErrPrintArgNotBasicType, item.Pos(), "", "", "")
		}
	}
	return nil
}

// printable reports whether t is directly printable: a scalar, or an
// array whose element type is Char (a string buffer).
func printable(t types.Type) bool {
	switch tt := t.(type) {
	case *types.Array:
		return types.Equal(tt.Elem, types.Char)
	default:
		return types.Equal(t, types.Int) || types.Equal(t, types.Float) ||
			types.Equal(t, types.Char) || types.Equal(t, types.String) ||
			types.Equal(t, types.Bool)
	}
}

// visitRead requires every operand to be an ID or ArrayRef (a place
// read() can store into), ported from uc_sema.py's visit_Read (error 23).
func (a *Analyzer) visitRead(n *ast.Read) error {
	items := []ast.Expr{n.Expr}
	if list, ok := n.Expr.(*ast.ExprList); ok {
		items = list.Exprs
	}
	for _, item := range items {
		switch item.(type) {
		case *ast.ID, *ast.ArrayRef:
		default:
			return diag.New(diag.ErrReadArgNotVariable, item.Pos(), item.String(), "", "")
		}
		if _, err := a.visitExpr(item); err != nil {
			return err
		}
	}
	return nil
}
