package dataflow

import "ucc/internal/ir"

// ConstantPropagation rewrites every Load whose source has exactly one
// definition in the whole function (its n.DefMap entry) that resolves
// to a literal into a Literal carrying that value directly, in a single
// pass. The reaching-definitions in/out sets are not consulted: a name
// defined more than once anywhere in the function is never rewritten.
// Globals ("@name") are excluded: a global's value can change between
// calls, so no call site may assume a single definition reaches it.
//
// A named variable ("%x", "@g") is only ever written by a Store — a
// Literal always targets a fresh temporary first (builder_expr.go's
// lowerConstant) and is then stored into the variable by a separate
// Store instruction. So resolving "the single literal" for a variable
// load is a two-level lookup: the variable's one definition must be a
// Store, and that Store's source temporary must itself have exactly
// one definition, which must be a Literal.
func ConstantPropagation(n *Numbering, fn *ir.Function) bool {
	changed := false
	for _, blk := range fn.Blocks {
		instrs := blk.Instructions()
		for i, instr := range instrs {
			load, ok := instr.(*ir.Load)
			if !ok || load.Star {
				continue
			}
			if load.Src[0] == '@' {
				continue
			}
			lit, ok := resolveLiteral(n, load.Src)
			if !ok {
				continue
			}
			instrs[i] = &ir.Literal{Type: lit.Type, Value: lit.Value, Dst: load.Dst}
			changed = true
		}
		blk.SetInstructions(instrs)
	}
	return changed
}

// resolveLiteral reports whether name has exactly one definition in
// the def-map and that definition ultimately carries a constant value:
// either a direct Literal (the case for a bare temporary), or a
// non-indirect Store whose own source resolves to a literal in turn.
func resolveLiteral(n *Numbering, name string) (*ir.Literal, bool) {
	defs := n.DefMap[name]
	if len(defs) != 1 {
		return nil, false
	}
	switch def := n.ByIndex[defs[0]].(type) {
	case *ir.Literal:
		return def, true
	case *ir.Store:
		if def.Star {
			return nil, false
		}
		return resolveLiteral(n, def.Src)
	default:
		return nil, false
	}
}
