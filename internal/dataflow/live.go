package dataflow

import "ucc/internal/ir"

// LiveVars carries live-variable in/out sets per block, matching
// uc_analysis.py's computeLV_use_def / computeLV_in_out.
type LiveVars struct {
	In  map[ir.Block]StringSet
	Out map[ir.Block]StringSet
}

// funcDefUse classifies one instruction's operands into the names it
// reads (used) before the names it writes (defined), the split the
// backward dataflow needs. Elem/Load/Store additionally use their
// source/index operands even though Load/Store also define a target.
func funcDefUse(instr ir.Instruction) (used, defined []string) {
	switch v := instr.(type) {
	case *ir.Load:
		used = append(used, v.Src)
		defined = append(defined, v.Dst)
	case *ir.Store:
		used = append(used, v.Src)
		if v.Star {
			used = append(used, v.Dst)
		} else {
			defined = append(defined, v.Dst)
		}
	case *ir.Elem:
		used = append(used, v.Source, v.Index)
		defined = append(defined, v.Dst)
	case *ir.BinOp:
		used = append(used, v.Left, v.Right)
		defined = append(defined, v.Dst)
	case *ir.UnOp:
		used = append(used, v.Src)
		defined = append(defined, v.Dst)
	case *ir.Not:
		used = append(used, v.Src)
		defined = append(defined, v.Dst)
	case *ir.SIToFP:
		used = append(used, v.Src)
		defined = append(defined, v.Dst)
	case *ir.FPToSI:
		used = append(used, v.Src)
		defined = append(defined, v.Dst)
	case *ir.Literal:
		defined = append(defined, v.Dst)
	case *ir.Param:
		used = append(used, v.Src)
	case *ir.Call:
		if v.Dst != "" {
			defined = append(defined, v.Dst)
		}
	case *ir.Return:
		if v.Src != "" {
			used = append(used, v.Src)
		}
	case *ir.Print:
		used = append(used, v.Src)
	case *ir.Read:
		defined = append(defined, v.Dst)
	case *ir.CBranch:
		used = append(used, v.Cond)
	}
	return used, defined
}

// LiveVariables runs the backward, union, LIFO-worklist live-variables
// dataflow over fn. out[exit] is seeded with globalNames, since a
// global may still be read by another function after this one
// returns. Predecessors of a changed block are re-enqueued, mirroring
// the original's reversed work_list.
func LiveVariables(fn *ir.Function, globalNames StringSet) *LiveVars {
	use := map[ir.Block]StringSet{}
	def := map[ir.Block]StringSet{}
	in := map[ir.Block]StringSet{}
	out := map[ir.Block]StringSet{}

	for _, blk := range fn.Blocks {
		u, d := StringSet{}, StringSet{}
		for _, instr := range blk.Instructions() {
			used, defined := funcDefUse(instr)
			for _, name := range used {
				if !d[name] {
					u[name] = true
				}
			}
			for _, name := range defined {
				d[name] = true
			}
		}
		use[blk] = u
		def[blk] = d
		in[blk] = StringSet{}
		out[blk] = StringSet{}
	}

	if fn.Exit != nil {
		out[fn.Exit] = globalNames.Clone()
	}

	worklist := make([]ir.Block, len(fn.Blocks))
	copy(worklist, fn.Blocks)
	for len(worklist) > 0 {
		blk := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		o := StringSet{}
		for _, succ := range successors(blk) {
			o = UnionStr(o, in[succ])
		}
		if blk == ir.Block(fn.Exit) {
			o = UnionStr(o, globalNames)
		}
		out[blk] = o

		newIn := UnionStr(use[blk], SubtractStr(out[blk], def[blk]))
		if !EqualStr(newIn, in[blk]) {
			in[blk] = newIn
			worklist = append(worklist, blk.Preds()...)
		}
	}

	return &LiveVars{In: in, Out: out}
}
