package dataflow

import "ucc/internal/ir"

// ReachingDefs carries reaching-definitions in/out sets keyed by
// instruction index, one pair per numbered instruction, matching
// uc_analysis.py's computeRD_in_out.
type ReachingDefs struct {
	In  map[int]Set
	Out map[int]Set
}

// blockGenKill composes one block's gen/kill sets left to right: each
// instruction's definition is added to gen after first stripping any
// earlier gen entry its own kill set removes, so a later definition of
// the same name in the block replaces the earlier one.
func blockGenKill(n *Numbering, blk ir.Block) (gen, kill Set) {
	gen, kill = Set{}, Set{}
	for _, idx := range n.Indices[blk] {
		instr := n.ByIndex[idx]
		name, ok := instr.Target()
		if !ok {
			continue
		}
		for _, other := range n.DefMap[name] {
			if other != idx {
				kill[other] = true
				delete(gen, other)
			}
		}
		gen[idx] = true
	}
	return gen, kill
}

// ReachingDefinitions runs the forward, union, worklist reaching-
// definitions dataflow over fn, iterating to a fixed point. A block's
// successors (its Branch, or its Taken+FallThrough) are re-enqueued
// only when that block's out set actually changes, mirroring the
// original's work_list loop.
func ReachingDefinitions(n *Numbering, fn *ir.Function) *ReachingDefs {
	gens := map[ir.Block]Set{}
	kills := map[ir.Block]Set{}
	blockIn := map[ir.Block]Set{}
	blockOut := map[ir.Block]Set{}
	for _, blk := range fn.Blocks {
		g, k := blockGenKill(n, blk)
		gens[blk] = g
		kills[blk] = k
		blockIn[blk] = Set{}
		blockOut[blk] = Set{}
	}

	worklist := append([]ir.Block{}, fn.Blocks...)
	for len(worklist) > 0 {
		blk := worklist[0]
		worklist = worklist[1:]

		in := Set{}
		for _, pred := range blk.Preds() {
			in = Union(in, blockOut[pred])
		}
		blockIn[blk] = in

		out := Union(gens[blk], Subtract(in, kills[blk]))
		if !Equal(out, blockOut[blk]) {
			blockOut[blk] = out
			worklist = append(worklist, successors(blk)...)
		}
	}

	rd := &ReachingDefs{In: map[int]Set{}, Out: map[int]Set{}}
	for _, blk := range fn.Blocks {
		running := blockIn[blk].Clone()
		for _, idx := range n.Indices[blk] {
			rd.In[idx] = running.Clone()
			instr := n.ByIndex[idx]
			if name, ok := instr.Target(); ok {
				for _, other := range n.DefMap[name] {
					if other != idx {
						delete(running, other)
					}
				}
				running[idx] = true
			}
			rd.Out[idx] = running.Clone()
		}
	}
	return rd
}
