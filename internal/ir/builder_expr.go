package ir

import (
	"fmt"
	"strconv"

	"ucc/internal/ast"
	"ucc/internal/types"
)

// lowerExpr lowers e into b.curBlock, sets e's GenLocation, and
// returns the temporary or name holding its value.
func (b *Builder) lowerExpr(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.Constant:
		return b.lowerConstant(n)
	case *ast.ID:
		return b.lowerID(n)
	case *ast.BinaryOp:
		return b.lowerBinaryOp(n)
	case *ast.UnaryOp:
		return b.lowerUnaryOp(n)
	case *ast.Assignment:
		return b.lowerAssignment(n)
	case *ast.ArrayRef:
		return b.lowerArrayRefValue(n)
	case *ast.FuncCall:
		return b.lowerFuncCall(n)
	case *ast.ExprList:
		var last string
		for _, item := range n.Exprs {
			g, err := b.lowerExpr(item)
			if err != nil {
				return "", err
			}
			last = g
		}
		n.Annotation.GenLocation = last
		return last, nil
	}
	return "", fmt.Errorf("ir: unhandled expression %T", e)
}

func (b *Builder) lowerConstant(n *ast.Constant) (string, error) {
	typ := resolveSuffix(n.Annotation.UCType)
	dst := b.newTemp()
	value := n.Value
	if n.Kind == "string" {
		value = fmt.Sprintf("%q", n.Value)
	}
	b.curBlock.AddInstr(&Literal{Type: typ, Value: value, Dst: dst})
	n.Annotation.GenLocation = dst
	return dst, nil
}

func (b *Builder) lowerID(n *ast.ID) (string, error) {
	addr := b.identAddr(n.Name)
	typ := resolveSuffix(n.Annotation.UCType)
	dst := b.newTemp()
	b.curBlock.AddInstr(&Load{Type: typ, Src: addr, Dst: dst})
	n.Annotation.GenLocation = dst
	return dst, nil
}

func (b *Builder) lowerBinaryOp(n *ast.BinaryOp) (string, error) {
	lg, err := b.lowerExpr(n.Left)
	if err != nil {
		return "", err
	}
	rg, err := b.lowerExpr(n.Right)
	if err != nil {
		return "", err
	}
	mnem, ok := binOpMnemonics[n.Op]
	if !ok {
		return "", fmt.Errorf("ir: unknown binary operator %q", n.Op)
	}
	typ := resolveSuffix(n.Left.Annot().UCType)
	dst := b.newTemp()
	b.curBlock.AddInstr(&BinOp{Op: mnem, Type: typ, Left: lg, Right: rg, Dst: dst})
	n.Annotation.GenLocation = dst
	return dst, nil
}

func (b *Builder) lowerUnaryOp(n *ast.UnaryOp) (string, error) {
	switch n.Op {
	case "!":
		src, err := b.lowerExpr(n.Expr)
		if err != nil {
			return "", err
		}
		dst := b.newTemp()
		b.curBlock.AddInstr(&Not{Src: src, Dst: dst})
		n.Annotation.GenLocation = dst
		return dst, nil
	case "-", "+":
		src, err := b.lowerExpr(n.Expr)
		if err != nil {
			return "", err
		}
		mnem := "uadd"
		if n.Op == "-" {
			mnem = "usub"
		}
		typ := resolveSuffix(n.Expr.Annot().UCType)
		dst := b.newTemp()
		b.curBlock.AddInstr(&UnOp{Op: mnem, Type: typ, Src: src, Dst: dst})
		n.Annotation.GenLocation = dst
		return dst, nil
	case "++", "--", "p++", "p--":
		return b.lowerIncDec(n)
	}
	return "", fmt.Errorf("ir: unknown unary operator %q", n.Op)
}

// lowerIncDec implements pre/post increment/decrement: `literal_int 1
// %t; add_int|sub_int <cur> %t <var>`, per SPEC_FULL §4.2. The postfix
// forms first alloc_int+store_int the pre-mutation value into a fresh
// temp and yield that temp; the prefix forms yield the freshly stored
// value.
func (b *Builder) lowerIncDec(n *ast.UnaryOp) (string, error) {
	addr, err := b.lvalueAddr(n.Expr)
	if err != nil {
		return "", err
	}
	cur, err := b.lowerExpr(n.Expr)
	if err != nil {
		return "", err
	}
	old := ""
	if n.Op == "p++" || n.Op == "p--" {
		old = b.newTemp()
		b.curBlock.AddInstr(&Alloc{Type: "int", Name: old})
		b.curBlock.AddInstr(&Store{Type: "int", Src: cur, Dst: old})
	}
	one := b.newTemp()
	b.curBlock.AddInstr(&Literal{Type: "int", Value: "1", Dst: one})
	mnem := "add"
	if n.Op == "--" || n.Op == "p--" {
		mnem = "sub"
	}
	updated := b.newTemp()
	b.curBlock.AddInstr(&BinOp{Op: mnem, Type: "int", Left: cur, Right: one, Dst: updated})
	b.curBlock.AddInstr(&Store{Type: "int", Star: addr.star, Src: updated, Dst: addr.name})

	result := updated
	if n.Op == "p++" || n.Op == "p--" {
		result = old
	}
	n.Annotation.GenLocation = result
	return result, nil
}

// lvalueRef identifies a storable location: either a bare identifier
// slot ("%x" / "@x") or, when star is set, an array-element address
// computed by a prior Elem instruction.
type lvalueRef struct {
	name string
	star bool
}

func (b *Builder) lvalueAddr(e ast.Expr) (lvalueRef, error) {
	switch n := e.(type) {
	case *ast.ID:
		return lvalueRef{name: b.identAddr(n.Name)}, nil
	case *ast.ArrayRef:
		addr, err := b.lowerArrayAddr(n)
		if err != nil {
			return lvalueRef{}, err
		}
		return lvalueRef{name: addr, star: true}, nil
	}
	return lvalueRef{}, fmt.Errorf("ir: %T is not assignable", e)
}

func (b *Builder) lowerAssignment(n *ast.Assignment) (string, error) {
	rg, err := b.lowerExpr(n.RValue)
	if err != nil {
		return "", err
	}
	addr, err := b.lvalueAddr(n.LValue)
	if err != nil {
		return "", err
	}
	typ := resolveSuffix(n.RValue.Annot().UCType)

	var gen string
	if n.Op == "=" {
		b.curBlock.AddInstr(&Store{Type: typ, Star: addr.star, Src: rg, Dst: addr.name})
		gen = rg
	} else {
		cur, err := b.lowerExpr(n.LValue)
		if err != nil {
			return "", err
		}
		mnem, ok := compoundOpMnemonics[n.Op]
		if !ok {
			return "", fmt.Errorf("ir: unknown assignment operator %q", n.Op)
		}
		result := b.newTemp()
		b.curBlock.AddInstr(&BinOp{Op: mnem, Type: typ, Left: cur, Right: rg, Dst: result})
		b.curBlock.AddInstr(&Store{Type: typ, Star: addr.star, Src: result, Dst: addr.name})
		gen = result
	}
	n.Annotation.GenLocation = gen
	return gen, nil
}

// lowerArrayAddr computes the element address of a (possibly
// multi-dimensional) array reference, walking the nested ArrayRef
// chain outermost-to-innermost and accumulating a running offset with
// mul_int/add_int pairs, per SPEC_FULL §4.2.
func (b *Builder) lowerArrayAddr(n *ast.ArrayRef) (string, error) {
	var indices []ast.Expr
	var cur ast.Expr = n
	for {
		ar, ok := cur.(*ast.ArrayRef)
		if !ok {
			break
		}
		indices = append(indices, ar.Index)
		cur = ar.Array
	}
	for l, r := 0, len(indices)-1; l < r; l, r = l+1, r-1 {
		indices[l], indices[r] = indices[r], indices[l]
	}
	id, ok := cur.(*ast.ID)
	if !ok {
		return "", fmt.Errorf("ir: array reference base is not an identifier")
	}
	baseAddr := b.identAddr(id.Name)
	dims, base := types.Dims(id.Annot().UCType)

	var offset string
	for k := 0; k < len(indices); k++ {
		idxGen, err := b.lowerExpr(indices[k])
		if err != nil {
			return "", err
		}
		trailing := 1
		for j := k + 1; j < len(dims); j++ {
			if dims[j] != nil {
				trailing *= *dims[j]
			}
		}
		term := idxGen
		if trailing != 1 {
			tlit := b.newTemp()
			b.curBlock.AddInstr(&Literal{Type: "int", Value: strconv.Itoa(trailing), Dst: tlit})
			term = b.newTemp()
			b.curBlock.AddInstr(&BinOp{Op: "mul", Type: "int", Left: idxGen, Right: tlit, Dst: term})
		}
		if offset == "" {
			offset = term
		} else {
			next := b.newTemp()
			b.curBlock.AddInstr(&BinOp{Op: "add", Type: "int", Left: offset, Right: term, Dst: next})
			offset = next
		}
	}
	addr := b.newTemp()
	b.curBlock.AddInstr(&Elem{Type: base.String(), Source: baseAddr, Index: offset, Dst: addr})
	return addr, nil
}

func (b *Builder) lowerArrayRefValue(n *ast.ArrayRef) (string, error) {
	addr, err := b.lowerArrayAddr(n)
	if err != nil {
		return "", err
	}
	typ := resolveSuffix(n.Annotation.UCType)
	dst := b.newTemp()
	b.curBlock.AddInstr(&Load{Type: typ, Star: true, Src: addr, Dst: dst})
	n.Annotation.MemLocation = addr
	n.Annotation.GenLocation = dst
	return dst, nil
}

func (b *Builder) lowerFuncCall(n *ast.FuncCall) (string, error) {
	for _, arg := range n.Args {
		ag, err := b.lowerExpr(arg)
		if err != nil {
			return "", err
		}
		b.curBlock.AddInstr(&Param{Type: resolveSuffix(arg.Annot().UCType), Src: ag})
	}
	retType := n.Annotation.UCType
	if types.Equal(retType, types.Void) {
		b.curBlock.AddInstr(&Call{Type: "void", Callee: "@" + n.Callee})
		return "", nil
	}
	dst := b.newTemp()
	b.curBlock.AddInstr(&Call{Type: resolveSuffix(retType), Callee: "@" + n.Callee, Dst: dst})
	n.Annotation.GenLocation = dst
	return dst, nil
}
