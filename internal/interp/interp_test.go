package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ucc/internal/ir"
)

// buildAddOne builds a minimal `int main(){ return 1 + 2; }`-shaped
// program directly in uCIR, bypassing the parser/sema/builder pipeline
// so the interpreter's opcode handling can be exercised in isolation.
func buildAddOne() *ir.Program {
	entry := ir.NewBasicBlock("%main")
	exit := ir.NewBasicBlock("%exit")
	entry.AddInstr(&ir.Define{Type: "int", Name: "@main"})
	entry.AddInstr(&ir.Entry{})
	entry.AddInstr(&ir.Alloc{Type: "int", Name: "%ret_slot"})
	entry.AddInstr(&ir.Literal{Type: "int", Value: "1", Dst: "%1"})
	entry.AddInstr(&ir.Literal{Type: "int", Value: "2", Dst: "%2"})
	entry.AddInstr(&ir.BinOp{Op: "add", Type: "int", Left: "%1", Right: "%2", Dst: "%3"})
	entry.AddInstr(&ir.Store{Type: "int", Src: "%3", Dst: "%ret_slot"})
	entry.AddInstr(&ir.Jump{Target_: "%exit"})
	entry.Branch = exit
	exit.AddPred(entry)
	exit.AddInstr(&ir.Return{Type: "int", Src: "%ret_slot"})

	fn := &ir.Function{Name: "main", Entry: entry, Exit: exit, Blocks: []ir.Block{entry, exit}}
	return &ir.Program{Functions: []*ir.Function{fn}}
}

func TestInterpEvaluatesArithmetic(t *testing.T) {
	prog := buildAddOne()
	it := New(prog, strings.NewReader(""), &bytes.Buffer{})
	result, err := it.Run("main")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), result.i)
}

func TestInterpPrintAndRead(t *testing.T) {
	entry := ir.NewBasicBlock("%main")
	exit := ir.NewBasicBlock("%exit")
	entry.AddInstr(&ir.Define{Type: "void", Name: "@main"})
	entry.AddInstr(&ir.Entry{})
	entry.AddInstr(&ir.Read{Type: "int", Dst: "%1"})
	entry.AddInstr(&ir.Print{Type: "int", Src: "%1"})
	entry.AddInstr(&ir.Jump{Target_: "%exit"})
	entry.Branch = exit
	exit.AddPred(entry)
	exit.AddInstr(&ir.Return{Type: "void"})

	fn := &ir.Function{Name: "main", Entry: entry, Exit: exit, Blocks: []ir.Block{entry, exit}}
	prog := &ir.Program{Functions: []*ir.Function{fn}}

	var out bytes.Buffer
	it := New(prog, strings.NewReader("42"), &out)
	_, err := it.Run("main")
	assert.NoError(t, err)
	assert.Equal(t, "42", out.String())
}

func TestInterpArrayElemRoundTrip(t *testing.T) {
	entry := ir.NewBasicBlock("%main")
	exit := ir.NewBasicBlock("%exit")
	entry.AddInstr(&ir.Define{Type: "int", Name: "@main"})
	entry.AddInstr(&ir.Entry{})
	entry.AddInstr(&ir.Alloc{Type: "int", Dims: []int{3}, Name: "%a"})
	entry.AddInstr(&ir.Alloc{Type: "int", Name: "%ret_slot"})
	entry.AddInstr(&ir.Literal{Type: "int", Value: "1", Dst: "%1"}) // index
	entry.AddInstr(&ir.Literal{Type: "int", Value: "9", Dst: "%2"}) // value
	entry.AddInstr(&ir.Elem{Type: "int", Source: "%a", Index: "%1", Dst: "%3"})
	entry.AddInstr(&ir.Store{Type: "int", Star: true, Src: "%2", Dst: "%3"})
	entry.AddInstr(&ir.Elem{Type: "int", Source: "%a", Index: "%1", Dst: "%4"})
	entry.AddInstr(&ir.Load{Type: "int", Star: true, Src: "%4", Dst: "%5"})
	entry.AddInstr(&ir.Store{Type: "int", Src: "%5", Dst: "%ret_slot"})
	entry.AddInstr(&ir.Jump{Target_: "%exit"})
	entry.Branch = exit
	exit.AddPred(entry)
	exit.AddInstr(&ir.Return{Type: "int", Src: "%ret_slot"})

	fn := &ir.Function{Name: "main", Entry: entry, Exit: exit, Blocks: []ir.Block{entry, exit}}
	prog := &ir.Program{Functions: []*ir.Function{fn}}

	it := New(prog, strings.NewReader(""), &bytes.Buffer{})
	result, err := it.Run("main")
	assert.NoError(t, err)
	assert.Equal(t, int64(9), result.i)
}
