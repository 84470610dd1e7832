package dataflow

import (
	"ucc/internal/diag"
	"ucc/internal/ir"
)

// Pass is one dataflow stage run per function, structured after the
// teacher's OptimizationPass interface (kanso/internal/ir/optimizations.go)
// but specialised to uCIR's fixed four-stage order rather than an
// arbitrary list: reaching definitions feeds constant propagation,
// whose rewrites feed live variables, whose sets feed dead-code
// elimination.
type Pass struct {
	Name string
	Run  func(fn *ir.Function, globals StringSet) bool
}

// Pipeline runs ReachingDefinitions -> ConstantPropagation ->
// LiveVariables -> DeadCodeElimination against every function in a
// Program, logging one line per pass when logger is in debug mode.
// Grounded on uc_analysis.py's DataFlow.compute driver, which runs the
// same four passes in the same order per function.
type Pipeline struct {
	logger *diag.Logger
}

func NewPipeline(logger *diag.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// Run applies the pipeline in place, renumbering before each pass that
// depends on instruction identity since constant propagation and DCE
// both rewrite block instruction slices.
func (p *Pipeline) Run(prog *ir.Program) {
	globals := GlobalNames(prog)
	for _, fn := range prog.Functions {
		p.runFunction(fn, globals)
	}
}

func (p *Pipeline) runFunction(fn *ir.Function, globals StringSet) {
	p.logger.Pass(fn.Name, "reaching definitions")
	n := Number(fn)
	rd := ReachingDefinitions(n, fn)
	_ = rd // not consumed here: ConstantPropagation reads only n.DefMap

	p.logger.Pass(fn.Name, "constant propagation")
	ConstantPropagation(n, fn)

	p.logger.Pass(fn.Name, "live variables")
	lv := LiveVariables(fn, globals)

	p.logger.Pass(fn.Name, "dead code elimination")
	DeadCodeElimination(fn, lv)
}
