package ir

import "ucc/internal/types"

// Function is one lowered uC function: its entry block, the linked
// list of blocks in `next_block` traversal order (the order final
// emission walks), and per-function bookkeeping the builder needs
// while lowering (temp/name counters, the active loop-end stack).
type Function struct {
	Name       string
	ReturnType types.Type
	ParamTypes []types.Type
	Entry      Block
	Exit       *BasicBlock
	Blocks     []Block // in next_block order, entry first
}

// Program is the whole lowered translation unit: the global-scope text
// (string/aggregate literal hoisting and global declarations) plus one
// Function per uC function, in source order.
type Program struct {
	Globals   []Instruction
	Functions []*Function
}
