package ir

import (
	"fmt"
	"strconv"

	"ucc/internal/ast"
	"ucc/internal/types"
)

// Builder lowers an annotated *ast.Program to a *Program of uCIR CFGs,
// grounded on original_source/uc_code.py's CodeGenerator visitor and
// structured after the teacher's internal/ir.Builder walk-and-emit
// shape (kanso/internal/ir/builder.go).
type Builder struct {
	prog         *Program
	fn           *Function
	curBlock     Block
	locals       map[string]bool
	tempCounter  int
	nameCounters map[string]int // whole-program block-root disambiguation
	textCounter  int
	retSlot      string
	retType      types.Type
	loopEnds     []string
	blockList    []Block
}

// Build lowers prog to a uCIR Program.
func Build(prog *ast.Program) (*Program, error) {
	b := &Builder{
		prog:         &Program{},
		nameCounters: map[string]int{},
	}
	for _, g := range prog.Globals() {
		if err := b.buildGlobal(g); err != nil {
			return nil, err
		}
	}
	for _, fn := range prog.Funcs() {
		if err := b.buildFunction(fn); err != nil {
			return nil, err
		}
	}
	return b.prog, nil
}

func (b *Builder) buildGlobal(v *ast.VarDecl) error {
	base := types.Basic(v.Annotation.UCType)
	dims, _ := types.Dims(v.Annotation.UCType)
	value := ""
	if v.Init != nil {
		value = renderInitValue(v.Init)
	}
	b.prog.Globals = append(b.prog.Globals, &Global{
		Type:  base.String(),
		Dims:  toInts(dims),
		Name:  "@" + v.Name,
		Value: value,
	})
	return nil
}

// renderInitValue folds a scalar or InitList initializer to its
// textual literal form for a global declaration. Nested InitLists
// render as brace lists matching the declared shape.
func renderInitValue(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Constant:
		return n.Value
	case *ast.InitList:
		s := "{"
		for i, item := range n.Items {
			if i > 0 {
				s += ", "
			}
			s += renderInitValue(item)
		}
		return s + "}"
	default:
		return ""
	}
}

func toInts(dims []*int) []int {
	out := make([]int, len(dims))
	for i, d := range dims {
		if d != nil {
			out[i] = *d
		}
	}
	return out
}

func (b *Builder) buildFunction(fn *ast.FuncDecl) error {
	retType, _ := types.FromName(fn.ReturnType)
	entry := NewBasicBlock("%" + fn.Name)
	exit := NewBasicBlock("%exit")

	f := &Function{
		Name:       fn.Name,
		ReturnType: retType,
		ParamTypes: ast.ParamTypes(fn.Params),
		Entry:      entry,
		Exit:       exit,
	}

	b.fn = f
	b.curBlock = entry
	b.locals = map[string]bool{}
	b.tempCounter = 0
	b.loopEnds = nil
	b.retType = retType
	b.blockList = []Block{entry}

	params2 := make([]Param2, len(fn.Params))
	for i, p := range fn.Params {
		pt, _ := types.FromName(p.TypeName)
		params2[i] = Param2{Type: pt.String(), Name: b.newTemp()}
	}
	entry.AddInstr(&Define{Type: retType.String(), Name: "@" + fn.Name, Params: params2})
	entry.AddInstr(&Entry{})
	for i, p := range fn.Params {
		pt, _ := types.FromName(p.TypeName)
		entry.AddInstr(&Alloc{Type: pt.String(), Name: "%" + p.Name})
		entry.AddInstr(&Store{Type: pt.String(), Src: params2[i].Name, Dst: "%" + p.Name})
		b.locals[p.Name] = true
	}
	if !types.Equal(retType, types.Void) {
		b.retSlot = "%ret_slot"
		entry.AddInstr(&Alloc{Type: retType.String(), Name: b.retSlot})
	}

	if err := b.visitStmt(fn.Body); err != nil {
		return err
	}
	if !terminated(b.curBlock) {
		b.jumpTo(b.curBlock, exit)
	}

	if types.Equal(retType, types.Void) {
		exit.AddInstr(&Return{Type: "void"})
	} else {
		exit.AddInstr(&Return{Type: retType.String(), Src: b.retSlot})
	}
	b.blockList = append(b.blockList, exit)
	f.Blocks = b.blockList

	b.prog.Functions = append(b.prog.Functions, f)
	return nil
}

// newTemp allocates the next per-function temporary register.
func (b *Builder) newTemp() string {
	b.tempCounter++
	return "%" + strconv.Itoa(b.tempCounter)
}

// newText allocates the next whole-program hoisted-literal name.
func (b *Builder) newText(kind string) string {
	b.textCounter++
	return fmt.Sprintf("@.%s.%d", kind, b.textCounter)
}

// newName disambiguates a block-name root across the whole program:
// first use is bare ("if"), repeats get ".N" suffixes ("if.1", "if.2").
func (b *Builder) newName(root string) string {
	count, ok := b.nameCounters[root]
	if !ok {
		b.nameCounters[root] = 1
		return root
	}
	b.nameCounters[root] = count + 1
	return fmt.Sprintf("%s.%d", root, count)
}

func (b *Builder) newBlock(root string) *BasicBlock {
	blk := NewBasicBlock("%" + b.newName(root))
	b.blockList = append(b.blockList, blk)
	return blk
}

func (b *Builder) newCondBlock(root string) *ConditionBlock {
	blk := NewConditionBlock("%" + b.newName(root))
	b.blockList = append(b.blockList, blk)
	return blk
}

// jumpTo emits an unconditional Jump from from to to and records the
// layout-order and branch-target links the dataflow analyser walks.
func (b *Builder) jumpTo(from, to Block) {
	from.AddInstr(&Jump{Target_: to.Label()})
	to.AddPred(from)
	switch f := from.(type) {
	case *BasicBlock:
		f.NextBlock = to
		f.Branch = to
	case *ConditionBlock:
		f.NextBlock = to
	}
}

// terminated reports whether blk already ends in a Jump or CBranch, so
// a caller about to emit a closing jump (buildFunction's fall-through
// to %exit) can tell a block that returned early apart from one that
// fell off the end of its statement list.
func terminated(blk Block) bool {
	instrs := blk.Instructions()
	if len(instrs) == 0 {
		return false
	}
	switch instrs[len(instrs)-1].(type) {
	case *Jump, *CBranch:
		return true
	default:
		return false
	}
}

func (b *Builder) identAddr(name string) string {
	if b.locals[name] {
		return "%" + name
	}
	return "@" + name
}

func resolveSuffix(t types.Type) string { return types.Basic(t).String() }

var binOpMnemonics = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "div", "%": "mod",
	"<": "lt", "<=": "le", ">": "gt", ">=": "ge",
	"==": "eq", "!=": "ne", "&&": "and", "||": "or",
}

var compoundOpMnemonics = map[string]string{
	"+=": "add", "-=": "sub", "*=": "mul", "/=": "div", "%=": "mod",
}
