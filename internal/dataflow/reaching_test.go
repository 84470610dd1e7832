package dataflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ucc/internal/ir"
)

// buildLinearFunc wires a two-block function:
//
//	entry: literal_int 1 %1 ; store_int %1 %x ; load_int %x %2 ; jump %exit
//	exit:  return_int %2
func buildLinearFunc() *ir.Function {
	entry := ir.NewBasicBlock("%entry")
	exit := ir.NewBasicBlock("%exit")
	entry.AddInstr(&ir.Literal{Type: "int", Value: "1", Dst: "%1"})
	entry.AddInstr(&ir.Store{Type: "int", Src: "%1", Dst: "%x"})
	entry.AddInstr(&ir.Load{Type: "int", Src: "%x", Dst: "%2"})
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

func TestReachingDefinitionsLinear(t *testing.T) {
	fn := buildLinearFunc()
	n := Number(fn)
	rd := ReachingDefinitions(n, fn)

	// The load of %x (instruction 3) should see the store (instruction
	// 2) as its single reaching definition of %x.
	loadIdx := n.Indices[fn.Entry][2]
	assert.True(t, rd.In[loadIdx][n.Indices[fn.Entry][1]], "store must reach the load")
}

func TestConstantPropagationFoldsSingleDefLoad(t *testing.T) {
	fn := buildLinearFunc()
	n := Number(fn)
	ReachingDefinitions(n, fn)
	changed := ConstantPropagation(n, fn)
	assert.True(t, changed)

	instrs := fn.Entry.Instructions()
	lit, ok := instrs[2].(*ir.Literal)
	if assert.True(t, ok, "load should have been rewritten to a literal") {
		assert.Equal(t, "1", lit.Value)
		assert.Equal(t, "%2", lit.Dst)
	}
}

func TestConstantPropagationSkipsGlobals(t *testing.T) {
	entry := ir.NewBasicBlock("%entry")
	exit := ir.NewBasicBlock("%exit")
	entry.AddInstr(&ir.Load{Type: "int", Src: "@g", Dst: "%1"})
	entry.AddInstr(&ir.Jump{Target_: "%exit"})
	entry.Branch = exit
	exit.AddPred(entry)
	exit.AddInstr(&ir.Return{Type: "int", Src: "%1"})

	fn := &ir.Function{Name: "f", Entry: entry, Exit: exit, Blocks: []ir.Block{entry, exit}}
	n := Number(fn)
	changed := ConstantPropagation(n, fn)
	assert.False(t, changed)

	_, stillLoad := entry.Instructions()[0].(*ir.Load)
	assert.True(t, stillLoad)
}
