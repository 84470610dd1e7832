package dataflow

import "ucc/internal/ir"

// removable reports whether instr belongs to the closed set of
// opcodes uc_analysis.py's dead_code_elimination ever deletes: a
// store, literal, load, call or binop whose result nothing reads.
// Everything else — elem (address computation may have side effects
// via later stores through it), casts, not_, print, the block
// terminators, and param — is always kept.
func removable(instr ir.Instruction) bool {
	switch instr.(type) {
	case *ir.Store, *ir.Literal, *ir.Load, *ir.Call, *ir.BinOp:
		return true
	default:
		return false
	}
}

// DeadCodeElimination walks each block backward from its live-out set,
// dropping a removable instruction whose target is live in neither the
// running live set nor, per the conservative original, already used
// later in the same block. Returns true if anything was removed.
func DeadCodeElimination(fn *ir.Function, lv *LiveVars) bool {
	changed := false
	for _, blk := range fn.Blocks {
		instrs := blk.Instructions()
		live := lv.Out[blk].Clone()

		kept := make([]ir.Instruction, 0, len(instrs))
		for i := len(instrs) - 1; i >= 0; i-- {
			instr := instrs[i]
			used, defined := funcDefUse(instr)

			if name, ok := instr.Target(); ok && removable(instr) && !live[name] {
				changed = true
				continue // drop: target is never read
			}

			for _, name := range defined {
				delete(live, name)
			}
			for _, name := range used {
				live[name] = true
			}
			kept = append(kept, instr)
		}

		// kept was built in reverse.
		for l, r := 0, len(kept)-1; l < r; l, r = l+1, r-1 {
			kept[l], kept[r] = kept[r], kept[l]
		}
		blk.SetInstructions(kept)
	}
	return changed
}
