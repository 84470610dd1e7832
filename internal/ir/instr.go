// Package ir implements uCIR: the three-address code the semantic
// analyser's annotated AST lowers to, and the CFG that carries it
// per function. Grounded on original_source/uc_code.py for the exact
// instruction shapes and on the teacher's internal/ir package for the
// Go interface-with-concrete-struct-set shape
// (kanso/internal/ir/instruction.go).
package ir

import "fmt"

// Instruction is implemented by every uCIR opcode. Opcode renders the
// opcode_with_type_suffix token uc_code.py emits (e.g. "literal_int",
// "add_float"); Target names the operand written, if any.
type Instruction interface {
	Opcode() string
	Target() (string, bool)
	String() string
}

// Label is a block-entry marker, rendered "name:" with no operands.
type Label struct{ Name string }

func (i *Label) Opcode() string          { return "label" }
func (i *Label) Target() (string, bool)  { return "", false }
func (i *Label) String() string          { return i.Name + ":" }

// Entry marks a function's first block, taking no operands.
type Entry struct{}

func (i *Entry) Opcode() string         { return "entry" }
func (i *Entry) Target() (string, bool) { return "", false }
func (i *Entry) String() string         { return "entry:" }

// Define declares a function: its uC type suffix, its symbol, and the
// ordered (type, temp) pairs of its formal parameters.
type Define struct {
	Type   string
	Name   string
	Params []Param2
}

// Param2 is one (type, temp-name) entry in a Define's parameter list,
// distinct from the Param instruction that pushes a call argument.
type Param2 struct {
	Type string
	Name string
}

func (i *Define) Opcode() string         { return "define_" + i.Type }
func (i *Define) Target() (string, bool) { return "", false }
func (i *Define) String() string {
	s := fmt.Sprintf("define_%s %s (", i.Type, i.Name)
	for k, p := range i.Params {
		if k > 0 {
			s += ", "
		}
		s += p.Type + " " + p.Name
	}
	return s + ")"
}

// Global emits a module-scope declaration: `global_T @name value?`.
type Global struct {
	Type  string
	Dims  []int // empty for a scalar
	Name  string
	Value string // empty when uninitialised
}

func (i *Global) Opcode() string { return "global_" + i.Type }
func (i *Global) Target() (string, bool) { return i.Name, true }
func (i *Global) String() string {
	s := "global_" + i.Type
	for _, d := range i.Dims {
		s += fmt.Sprintf("[%d]", d)
	}
	s += " " + i.Name
	if i.Value != "" {
		s += " " + i.Value
	}
	return s
}

// Alloc reserves stack storage for a name, at function or block scope.
// It writes no value, so it reports no target.
type Alloc struct {
	Type string
	Dims []int
	Name string
}

func (i *Alloc) Opcode() string { return "alloc_" + i.Type }
func (i *Alloc) Target() (string, bool) { return "", false }
func (i *Alloc) String() string {
	s := "alloc_" + i.Type
	for _, d := range i.Dims {
		s += fmt.Sprintf("[%d]", d)
	}
	return s + " " + i.Name
}

// Literal materialises a constant value into a fresh temporary.
type Literal struct {
	Type  string
	Value string
	Dst   string
}

func (i *Literal) Opcode() string { return "literal_" + i.Type }
func (i *Literal) Target() (string, bool) { return i.Dst, true }
func (i *Literal) String() string {
	return fmt.Sprintf("literal_%s %s %s", i.Type, i.Value, i.Dst)
}

// Load reads a named slot into a fresh temporary. Star marks the
// "load_T_*" indirect-load form used after Elem resolves an address.
type Load struct {
	Type string
	Star bool
	Src  string
	Dst  string
}

func (i *Load) Opcode() string {
	if i.Star {
		return "load_" + i.Type + "_*"
	}
	return "load_" + i.Type
}
func (i *Load) Target() (string, bool) { return i.Dst, true }
func (i *Load) String() string         { return fmt.Sprintf("%s %s %s", i.Opcode(), i.Src, i.Dst) }

// Store writes a value into a named slot or, when Star is set, through
// a previously computed address temporary. Only the named-slot form
// reports a target; a Star store reads its address operand.
type Store struct {
	Type string
	Star bool
	Src  string
	Dst  string
}

func (i *Store) Opcode() string {
	if i.Star {
		return "store_" + i.Type + "_*"
	}
	return "store_" + i.Type
}
func (i *Store) Target() (string, bool) {
	if i.Star {
		return "", false
	}
	return i.Dst, true
}
func (i *Store) String() string         { return fmt.Sprintf("%s %s %s", i.Opcode(), i.Src, i.Dst) }

// Elem computes the address of source[index], leaving it in Dst.
type Elem struct {
	Type   string
	Source string
	Index  string
	Dst    string
}

func (i *Elem) Opcode() string { return "elem_" + i.Type }
func (i *Elem) Target() (string, bool) { return i.Dst, true }
func (i *Elem) String() string {
	return fmt.Sprintf("elem_%s %s %s %s", i.Type, i.Source, i.Index, i.Dst)
}

// BinOp covers the arithmetic/relational/logical binary opcodes; Op is
// the bare mnemonic ("add", "mul", "lt", "and", ...), not the
// surface-syntax token.
type BinOp struct {
	Op          string
	Type        string
	Left, Right string
	Dst         string
}

func (i *BinOp) Opcode() string { return i.Op + "_" + i.Type }
func (i *BinOp) Target() (string, bool) { return i.Dst, true }
func (i *BinOp) String() string {
	return fmt.Sprintf("%s_%s %s %s %s", i.Op, i.Type, i.Left, i.Right, i.Dst)
}

// UnOp covers unary plus/minus, lowered the same as a binop against an
// implicit zero in the original; Not and the cast ops have their own
// dedicated instructions below.
type UnOp struct {
	Op   string
	Type string
	Src  string
	Dst  string
}

func (i *UnOp) Opcode() string { return i.Op + "_" + i.Type }
func (i *UnOp) Target() (string, bool) { return i.Dst, true }
func (i *UnOp) String() string { return fmt.Sprintf("%s_%s %s %s", i.Op, i.Type, i.Src, i.Dst) }

// Not lowers uC's `!` operator.
type Not struct {
	Src string
	Dst string
}

func (i *Not) Opcode() string { return "not_bool" }
func (i *Not) Target() (string, bool) { return i.Dst, true }
func (i *Not) String() string { return fmt.Sprintf("not_bool %s %s", i.Src, i.Dst) }

// SIToFP/FPToSI implement the implicit int<->float casts a Cast node
// in the original's grammar triggers.
type SIToFP struct {
	Src string
	Dst string
}

func (i *SIToFP) Opcode() string { return "sitofp" }
func (i *SIToFP) Target() (string, bool) { return i.Dst, true }
func (i *SIToFP) String() string { return fmt.Sprintf("sitofp %s %s", i.Src, i.Dst) }

type FPToSI struct {
	Src string
	Dst string
}

func (i *FPToSI) Opcode() string { return "fptosi" }
func (i *FPToSI) Target() (string, bool) { return i.Dst, true }
func (i *FPToSI) String() string { return fmt.Sprintf("fptosi %s %s", i.Src, i.Dst) }

// Param pushes one call argument, in declared order.
type Param struct {
	Type string
	Src  string
}

func (i *Param) Opcode() string { return "param_" + i.Type }
func (i *Param) Target() (string, bool) { return "", false }
func (i *Param) String() string { return fmt.Sprintf("param_%s %s", i.Type, i.Src) }

// Call invokes a function by name, leaving a non-void result in Dst.
type Call struct {
	Type   string
	Callee string
	Dst    string // empty for a void call
}

func (i *Call) Opcode() string { return "call_" + i.Type }
func (i *Call) Target() (string, bool) {
	if i.Dst == "" {
		return "", false
	}
	return i.Dst, true
}
func (i *Call) String() string {
	if i.Dst == "" {
		return fmt.Sprintf("call_%s %s", i.Type, i.Callee)
	}
	return fmt.Sprintf("call_%s %s %s", i.Type, i.Callee, i.Dst)
}

// Return is the exit block's terminator; Src is empty for return_void.
type Return struct {
	Type string
	Src  string
}

func (i *Return) Opcode() string {
	if i.Type == "void" {
		return "return_void"
	}
	return "return_" + i.Type
}
func (i *Return) Target() (string, bool) { return "", false }
func (i *Return) String() string {
	if i.Type == "void" {
		return "return_void"
	}
	return fmt.Sprintf("return_%s %s", i.Type, i.Src)
}

// Print covers both print_T (one value) and the string-literal form
// the assert failure path uses (Type == "string").
type Print struct {
	Type string
	Src  string
}

func (i *Print) Opcode() string { return "print_" + i.Type }
func (i *Print) Target() (string, bool) { return "", false }
func (i *Print) String() string { return fmt.Sprintf("print_%s %s", i.Type, i.Src) }

// Read is the read_T counterpart; the original leaves its lowering
// unimplemented, a gap SPEC_FULL resolves at the interpreter layer
// (internal/interp) rather than here — see DESIGN.md.
type Read struct {
	Type string
	Dst  string
}

func (i *Read) Opcode() string { return "read_" + i.Type }
func (i *Read) Target() (string, bool) { return i.Dst, true }
func (i *Read) String() string { return fmt.Sprintf("read_%s %s", i.Type, i.Dst) }

// Jump is an unconditional terminator.
type Jump struct{ Target_ string }

func (i *Jump) Opcode() string { return "jump" }
func (i *Jump) Target() (string, bool) { return "", false }
func (i *Jump) String() string { return "jump " + i.Target_ }

// CBranch is a conditional terminator: branches to Taken when Cond is
// true, else falls through to FallThrough.
type CBranch struct {
	Cond                   string
	Taken, FallThrough     string
}

func (i *CBranch) Opcode() string { return "cbranch" }
func (i *CBranch) Target() (string, bool) { return "", false }
func (i *CBranch) String() string {
	return fmt.Sprintf("cbranch %s %s %s", i.Cond, i.Taken, i.FallThrough)
}
