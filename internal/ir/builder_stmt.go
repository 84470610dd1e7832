package ir

import (
	"fmt"
	"strconv"

	"ucc/internal/ast"
	"ucc/internal/types"
)

func (b *Builder) visitStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.VarDecl:
		return b.buildLocalVarDecl(n)
	case *ast.Compound:
		for _, item := range n.Items {
			if terminated(b.curBlock) {
				break // rest of the block is unreachable (past a return/break)
			}
			if err := b.visitStmt(item); err != nil {
				return err
			}
		}
		return nil
	case *ast.ExprStmt:
		_, err := b.lowerExpr(n.Expr)
		return err
	case *ast.If:
		return b.buildIf(n)
	case *ast.While:
		return b.buildWhile(n)
	case *ast.For:
		return b.buildFor(n)
	case *ast.Break:
		return b.buildBreak(n)
	case *ast.Return:
		return b.buildReturn(n)
	case *ast.Assert:
		return b.buildAssert(n)
	case *ast.Print:
		return b.buildPrint(n)
	case *ast.Read:
		return b.buildRead(n)
	}
	return fmt.Errorf("ir: unhandled statement %T", s)
}

// buildLocalVarDecl allocates a local's slot and, for an initialised
// array, flattens its (possibly nested) InitList into a sequence of
// elem_T/store_T_* writes at successive linear indices.
func (b *Builder) buildLocalVarDecl(n *ast.VarDecl) error {
	declType := n.Annotation.UCType
	base := types.Basic(declType)
	dims, _ := types.Dims(declType)
	typ := base.String()

	b.curBlock.AddInstr(&Alloc{Type: typ, Dims: toInts(dims), Name: "%" + n.Name})
	b.locals[n.Name] = true

	if n.Init == nil {
		return nil
	}
	if list, ok := n.Init.(*ast.InitList); ok {
		leaves := flattenInitList(list)
		for idx, leaf := range leaves {
			lg, err := b.lowerExpr(leaf)
			if err != nil {
				return err
			}
			idxLit := b.newTemp()
			b.curBlock.AddInstr(&Literal{Type: "int", Value: strconv.Itoa(idx), Dst: idxLit})
			addr := b.newTemp()
			b.curBlock.AddInstr(&Elem{Type: typ, Source: "%" + n.Name, Index: idxLit, Dst: addr})
			b.curBlock.AddInstr(&Store{Type: typ, Star: true, Src: lg, Dst: addr})
		}
		return nil
	}
	rg, err := b.lowerExpr(n.Init)
	if err != nil {
		return err
	}
	b.curBlock.AddInstr(&Store{Type: typ, Src: rg, Dst: "%" + n.Name})
	return nil
}

// flattenInitList collects an InitList's scalar leaves in row-major
// order, descending through any nested InitLists.
func flattenInitList(list *ast.InitList) []ast.Expr {
	var out []ast.Expr
	for _, item := range list.Items {
		if nested, ok := item.(*ast.InitList); ok {
			out = append(out, flattenInitList(nested)...)
		} else {
			out = append(out, item)
		}
	}
	return out
}

func (b *Builder) buildIf(n *ast.If) error {
	ifBlk := b.newCondBlock("if")
	b.jumpTo(b.curBlock, ifBlk)
	b.curBlock = ifBlk
	condGen, err := b.lowerExpr(n.Cond)
	if err != nil {
		return err
	}

	thenBlk := b.newBlock("then")
	endBlk := b.newBlock("end")
	ifBlk.Taken = thenBlk
	thenBlk.AddPred(ifBlk)

	var elseBlk *BasicBlock
	if n.Else != nil {
		elseBlk = b.newBlock("else")
		ifBlk.FallThrough = elseBlk
		elseBlk.AddPred(ifBlk)
	} else {
		ifBlk.FallThrough = endBlk
		endBlk.AddPred(ifBlk)
	}
	ifBlk.AddInstr(&CBranch{Cond: condGen, Taken: thenBlk.Label(), FallThrough: ifBlk.FallThrough.Label()})

	b.curBlock = thenBlk
	if err := b.visitStmt(n.Then); err != nil {
		return err
	}
	if !terminated(b.curBlock) {
		b.jumpTo(b.curBlock, endBlk)
	}

	if n.Else != nil {
		b.curBlock = elseBlk
		if err := b.visitStmt(n.Else); err != nil {
			return err
		}
		if !terminated(b.curBlock) {
			b.jumpTo(b.curBlock, endBlk)
		}
	}

	b.curBlock = endBlk
	return nil
}

func (b *Builder) buildWhile(n *ast.While) error {
	condBlk := b.newCondBlock("while.cond")
	b.jumpTo(b.curBlock, condBlk)
	b.curBlock = condBlk
	condGen, err := b.lowerExpr(n.Cond)
	if err != nil {
		return err
	}

	statBlk := b.newBlock("while.stat")
	endBlk := b.newBlock("while.end")
	condBlk.Taken = statBlk
	statBlk.AddPred(condBlk)
	condBlk.FallThrough = endBlk
	endBlk.AddPred(condBlk)
	condBlk.AddInstr(&CBranch{Cond: condGen, Taken: statBlk.Label(), FallThrough: endBlk.Label()})

	b.loopEnds = append(b.loopEnds, endBlk.Label())
	b.curBlock = statBlk
	if err := b.visitStmt(n.Body); err != nil {
		return err
	}
	if !terminated(b.curBlock) {
		b.jumpTo(b.curBlock, condBlk)
	}
	b.loopEnds = b.loopEnds[:len(b.loopEnds)-1]

	b.curBlock = endBlk
	return nil
}

func (b *Builder) buildFor(n *ast.For) error {
	if n.Init != nil {
		if err := b.visitStmt(n.Init); err != nil {
			return err
		}
	}
	condBlk := b.newCondBlock("for.cond")
	b.jumpTo(b.curBlock, condBlk)
	b.curBlock = condBlk

	var condGen string
	if n.Cond != nil {
		g, err := b.lowerExpr(n.Cond)
		if err != nil {
			return err
		}
		condGen = g
	} else {
		condGen = b.newTemp()
		condBlk.AddInstr(&Literal{Type: "bool", Value: "true", Dst: condGen})
	}

	statBlk := b.newBlock("for.stat")
	incBlk := b.newBlock("for.inc")
	endBlk := b.newBlock("for.end")
	condBlk.Taken = statBlk
	statBlk.AddPred(condBlk)
	condBlk.FallThrough = endBlk
	endBlk.AddPred(condBlk)
	condBlk.AddInstr(&CBranch{Cond: condGen, Taken: statBlk.Label(), FallThrough: endBlk.Label()})

	b.loopEnds = append(b.loopEnds, endBlk.Label())
	b.curBlock = statBlk
	if err := b.visitStmt(n.Body); err != nil {
		return err
	}
	if !terminated(b.curBlock) {
		b.jumpTo(b.curBlock, incBlk)
	}

	b.curBlock = incBlk
	if n.Post != nil {
		if err := b.visitStmt(n.Post); err != nil {
			return err
		}
	}
	b.jumpTo(b.curBlock, condBlk)
	b.loopEnds = b.loopEnds[:len(b.loopEnds)-1]

	b.curBlock = endBlk
	return nil
}

func (b *Builder) buildBreak(n *ast.Break) error {
	if len(b.loopEnds) == 0 {
		return nil
	}
	target := b.loopEnds[len(b.loopEnds)-1]
	for _, blk := range b.blockList {
		if blk.Label() == target {
			b.jumpTo(b.curBlock, blk)
			return nil
		}
	}
	return nil
}

// buildReturn implements the corrected behaviour SPEC_FULL §4.2/§9
// mandates over the original's: a jump to %exit is emitted right at
// the return site, not only as the function's trailing fall-through.
// curBlock is left pointing at the now-terminated block rather than a
// fresh one: buildFunction's closing jumpTo checks terminated() before
// adding its own jump, so the common case (a function whose body ends
// in this return) never gains a dead, predecessor-less block.
func (b *Builder) buildReturn(n *ast.Return) error {
	if n.Expr != nil {
		rg, err := b.lowerExpr(n.Expr)
		if err != nil {
			return err
		}
		b.curBlock.AddInstr(&Store{Type: resolveSuffix(b.retType), Src: rg, Dst: b.retSlot})
	}
	b.jumpTo(b.curBlock, b.fn.Exit)
	return nil
}

func (b *Builder) buildAssert(n *ast.Assert) error {
	condBlk := b.newCondBlock("assert")
	b.jumpTo(b.curBlock, condBlk)
	b.curBlock = condBlk
	condGen, err := b.lowerExpr(n.Expr)
	if err != nil {
		return err
	}

	failBlk := b.newBlock("assert.fail")
	endBlk := b.newBlock("assert.end")
	condBlk.Taken = endBlk
	endBlk.AddPred(condBlk)
	condBlk.FallThrough = failBlk
	failBlk.AddPred(condBlk)
	condBlk.AddInstr(&CBranch{Cond: condGen, Taken: endBlk.Label(), FallThrough: failBlk.Label()})

	msg := fmt.Sprintf("%q", "assertion_fail on "+n.Pos().String())
	failBlk.AddInstr(&Print{Type: "string", Src: msg})
	b.jumpTo(failBlk, b.fn.Exit)

	b.curBlock = endBlk
	return nil
}

func (b *Builder) buildPrint(n *ast.Print) error {
	if n.Expr == nil {
		b.curBlock.AddInstr(&Print{Type: "void"})
		return nil
	}
	items := []ast.Expr{n.Expr}
	if list, ok := n.Expr.(*ast.ExprList); ok {
		items = list.Exprs
	}
	for _, item := range items {
		lg, err := b.lowerExpr(item)
		if err != nil {
			return err
		}
		typ := printType(item)
		b.curBlock.AddInstr(&Print{Type: typ, Src: lg})
	}
	return nil
}

// printType is "string" for a char array or a string literal, else
// the operand's own basic type suffix.
func printType(e ast.Expr) string {
	t := e.Annot().UCType
	if arr, ok := t.(*types.Array); ok && types.Equal(arr.Elem, types.Char) {
		return "string"
	}
	return resolveSuffix(t)
}

// buildRead implements the read_T runtime contract the original left
// unimplemented (uc_code.py's visit_Read is a documented `pass`);
// SPEC_FULL §10 gives it IR-level semantics here, with the interpreter
// (internal/interp) performing the actual stdin scan at run time.
func (b *Builder) buildRead(n *ast.Read) error {
	items := []ast.Expr{n.Expr}
	if list, ok := n.Expr.(*ast.ExprList); ok {
		items = list.Exprs
	}
	for _, item := range items {
		addr, err := b.lvalueAddr(item)
		if err != nil {
			return err
		}
		typ := resolveSuffix(item.Annot().UCType)
		dst := b.newTemp()
		b.curBlock.AddInstr(&Read{Type: typ, Dst: dst})
		b.curBlock.AddInstr(&Store{Type: typ, Star: addr.star, Src: dst, Dst: addr.name})
	}
	return nil
}
