// Package dataflow implements uCIR's optimisation pipeline: reaching
// definitions, constant propagation, live variables and dead-code
// elimination, grounded on original_source/uc_analysis.py's DataFlow
// visitor and structured after the teacher's OptimizationPass/
// OptimizationPipeline shape (kanso/internal/ir/optimizations.go).
package dataflow

import "ucc/internal/ir"

// DefMap maps a name to the sorted instruction indices that define it,
// matching spec.md §3's "definition map".
type DefMap map[string][]int

// Numbering assigns every instruction across a function's blocks a
// globally unique, monotone index starting at 1.
type Numbering struct {
	ByIndex  map[int]ir.Instruction
	BlockOf  map[int]ir.Block
	LocalPos map[int]int // position within BlockOf[index]'s instruction slice
	Indices  map[ir.Block][]int
	DefMap   DefMap
}

// Number walks fn.Blocks in order and numbers every instruction,
// registering a definition for every instr.Target() and, per SPEC_FULL
// §4.3, one additional definition per parameter name carried by a
// Define instruction.
func Number(fn *ir.Function) *Numbering {
	n := &Numbering{
		ByIndex:  map[int]ir.Instruction{},
		BlockOf:  map[int]ir.Block{},
		LocalPos: map[int]int{},
		Indices:  map[ir.Block][]int{},
		DefMap:   DefMap{},
	}
	idx := 1
	for _, blk := range fn.Blocks {
		for pos, instr := range blk.Instructions() {
			n.ByIndex[idx] = instr
			n.BlockOf[idx] = blk
			n.LocalPos[idx] = pos
			n.Indices[blk] = append(n.Indices[blk], idx)
			if name, ok := instr.Target(); ok {
				n.DefMap[name] = append(n.DefMap[name], idx)
			}
			if def, ok := instr.(*ir.Define); ok {
				for _, p := range def.Params {
					n.DefMap[p.Name] = append(n.DefMap[p.Name], idx)
				}
			}
			idx++
		}
	}
	return n
}

// GlobalNames returns the "@name" targets of a program's global
// declarations, seeding live-variables' out[exit] per
// uc_analysis.py's save_global_variables.
func GlobalNames(prog *ir.Program) StringSet {
	s := StringSet{}
	for _, g := range prog.Globals {
		if name, ok := g.Target(); ok {
			s[name] = true
		}
	}
	return s
}
