package ir

// Block is implemented by *BasicBlock and *ConditionBlock, mirroring
// the original's uc_block.Block/BasicBlock/ConditionBlock split: a
// plain block has at most one successor reached unconditionally, a
// condition block has two, reached by a trailing CBranch.
type Block interface {
	Label() string
	Instructions() []Instruction
	AddInstr(Instruction)
	SetInstructions([]Instruction)
	Preds() []Block
	AddPred(Block)
}

type base struct {
	name  string
	instr []Instruction
	preds []Block
}

func (b *base) Label() string                   { return b.name }
func (b *base) Instructions() []Instruction      { return b.instr }
func (b *base) AddInstr(i Instruction)           { b.instr = append(b.instr, i) }
func (b *base) SetInstructions(is []Instruction) { b.instr = is }
func (b *base) Preds() []Block                   { return b.preds }
func (b *base) AddPred(p Block)                  { b.preds = append(b.preds, p) }

// BasicBlock is a single-successor block, linked by NextBlock — the
// CFG traversal order used for final emission — and by Branch, the
// jump target its trailing Jump instruction names.
type BasicBlock struct {
	base
	NextBlock Block
	Branch    Block
}

func NewBasicBlock(name string) *BasicBlock {
	return &BasicBlock{base: base{name: name}}
}

// ConditionBlock is a two-successor block ending in a CBranch: Taken
// on a true condition, FallThrough otherwise.
type ConditionBlock struct {
	base
	NextBlock   Block
	Taken       Block
	FallThrough Block
}

func NewConditionBlock(name string) *ConditionBlock {
	return &ConditionBlock{base: base{name: name}}
}
