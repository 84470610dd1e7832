package dataflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ucc/internal/ir"
)

// buildDeadStoreFunc wires a function that stores into %unused and
// never loads it back, so dead-code elimination should drop both the
// literal feeding it and the store itself.
func buildDeadStoreFunc() *ir.Function {
	entry := ir.NewBasicBlock("%entry")
	exit := ir.NewBasicBlock("%exit")
	entry.AddInstr(&ir.Literal{Type: "int", Value: "7", Dst: "%1"})
	entry.AddInstr(&ir.Store{Type: "int", Src: "%1", Dst: "%unused"})
	entry.AddInstr(&ir.Literal{Type: "int", Value: "9", Dst: "%2"})
	entry.AddInstr(&ir.Jump{Target_: "%exit"})
	entry.Branch = exit
	entry.NextBlock = exit
	exit.AddPred(entry)
	exit.AddInstr(&ir.Return{Type: "int", Src: "%2"})

	return &ir.Function{
		Name:   "f",
		Entry:  entry,
		Exit:   exit,
		Blocks: []ir.Block{entry, exit},
	}
}

func TestLiveVariablesSeedsExitWithGlobals(t *testing.T) {
	fn := buildDeadStoreFunc()
	globals := StringSet{"@g": true}
	lv := LiveVariables(fn, globals)
	assert.True(t, lv.Out[fn.Exit]["@g"])
}

func TestDeadCodeEliminationDropsUnusedStore(t *testing.T) {
	fn := buildDeadStoreFunc()
	lv := LiveVariables(fn, StringSet{})
	changed := DeadCodeElimination(fn, lv)
	assert.True(t, changed)

	for _, instr := range fn.Entry.Instructions() {
		if s, ok := instr.(*ir.Store); ok {
			t.Fatalf("unused store to %s should have been eliminated", s.Dst)
		}
	}
	// %2 still feeds the return and must survive.
	found := false
	for _, instr := range fn.Entry.Instructions() {
		if lit, ok := instr.(*ir.Literal); ok && lit.Dst == "%2" {
			found = true
		}
	}
	assert.True(t, found, "literal feeding the live return value must be kept")
}

func TestDeadCodeEliminationKeepsLiveGlobalStore(t *testing.T) {
	entry := ir.NewBasicBlock("%entry")
	exit := ir.NewBasicBlock("%exit")
	entry.AddInstr(&ir.Literal{Type: "int", Value: "5", Dst: "%1"})
	entry.AddInstr(&ir.Store{Type: "int", Src: "%1", Dst: "@g"})
	entry.AddInstr(&ir.Jump{Target_: "%exit"})
	entry.Branch = exit
	exit.AddPred(entry)
	exit.AddInstr(&ir.Return{Type: "void"})

	fn := &ir.Function{Name: "f", Entry: entry, Exit: exit, Blocks: []ir.Block{entry, exit}}
	lv := LiveVariables(fn, StringSet{"@g": true})
	DeadCodeElimination(fn, lv)

	kept := false
	for _, instr := range entry.Instructions() {
		if s, ok := instr.(*ir.Store); ok && s.Dst == "@g" {
			kept = true
		}
	}
	assert.True(t, kept, "store to a live-out global must not be eliminated")
}
