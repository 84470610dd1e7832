package cfgviz

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"ucc/internal/ir"
)

func TestRenderEmitsEdgesForConditionBlock(t *testing.T) {
	entry := ir.NewBasicBlock("%main")
	cond := ir.NewConditionBlock("%if.cond")
	taken := ir.NewBasicBlock("%if.then")
	fall := ir.NewBasicBlock("%if.end")

	cond.Taken = taken
	cond.FallThrough = fall
	entry.Branch = cond
	cond.AddInstr(&ir.CBranch{Cond: "%1", Taken: "%if.then", FallThrough: "%if.end"})

	fn := &ir.Function{Name: "main", Entry: entry, Blocks: []ir.Block{entry, cond, taken, fall}}

	var out bytes.Buffer
	err := Render(&out, fn)
	assert.NoError(t, err)
	s := out.String()
	assert.Contains(t, s, `"%if.cond":f0 -> "%if.then"`)
	assert.Contains(t, s, `"%if.cond":f1 -> "%if.end"`)
	assert.Contains(t, s, "digraph g")
}
