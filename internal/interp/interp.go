package interp

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"ucc/internal/diag"
	"ucc/internal/ir"
)

// Interp executes a *ir.Program function by function, starting from
// "main" per spec.md §6's CLI driver contract.
type Interp struct {
	prog    *ir.Program
	globals map[string]*cell
	funcs   map[string]*ir.Function
	out     io.Writer
	in      *bufio.Scanner
	logger  *diag.Logger
}

// SetLogger attaches a debug-gated logger that traces every executed
// instruction, wiring cmd/uccode's --debug flag (SPEC_FULL §6) the same
// way cmd/ucanalysis wires dataflow.Pipeline's logger. A nil logger (the
// zero value left by New) disables tracing entirely.
func (it *Interp) SetLogger(l *diag.Logger) { it.logger = l }

// New prepares an interpreter over prog, reading Read instructions
// from stdin and writing Print instructions to stdout.
func New(prog *ir.Program, stdin io.Reader, stdout io.Writer) *Interp {
	scanner := bufio.NewScanner(stdin)
	scanner.Split(bufio.ScanWords)
	it := &Interp{
		prog:    prog,
		globals: map[string]*cell{},
		funcs:   map[string]*ir.Function{},
		out:     stdout,
		in:      scanner,
	}
	for _, g := range prog.Globals {
		switch v := g.(type) {
		case *ir.Global:
			c := newCell(v.Type, v.Dims)
			if v.Value != "" {
				if lit, err := parseLiteral(v.Type, v.Value); err == nil {
					c.data[0] = lit
				}
			}
			it.globals[v.Name] = c
		}
	}
	for _, fn := range prog.Functions {
		it.funcs[fn.Name] = fn
	}
	return it
}

// Run executes the named entry function (conventionally "main") with
// no arguments, per spec.md's external-collaborator framing: this
// compiler has no calling convention for passing arguments to the
// interpreted program's entry point.
func (it *Interp) Run(entry string) (value, error) {
	fn, ok := it.funcs[entry]
	if !ok {
		return value{}, fmt.Errorf("interp: no function %q", entry)
	}
	return it.call(fn, nil)
}

// call executes fn with the given argument values, in declared-param
// order, returning its final value (zero for a void function).
func (it *Interp) call(fn *ir.Function, args []value) (value, error) {
	fr := newFrame()
	blocks := blockIndex(fn)

	var argIdx int
	var retVal value
	var returned bool
	var pendingArgs []value

	cur := fn.Entry
	for cur != nil {
		instrs := cur.Instructions()
		jumped := false
		for _, instr := range instrs {
			if it.logger != nil {
				it.logger.Trace(fn.Name, instr.String())
			}
			switch v := instr.(type) {
			case *ir.Define:
				for _, p := range v.Params {
					if argIdx < len(args) {
						fr.regs[p.Name] = args[argIdx]
					}
					argIdx++
				}
			case *ir.Entry:
				// marker only
			case *ir.Alloc:
				fr.locals[v.Name] = newCell(v.Type, v.Dims)
			case *ir.Literal:
				lit, err := parseLiteral(v.Type, v.Value)
				if err != nil {
					return value{}, err
				}
				fr.regs[v.Dst] = lit
			case *ir.Load:
				val, err := it.load(fr, v)
				if err != nil {
					return value{}, err
				}
				fr.regs[v.Dst] = val
			case *ir.Store:
				if err := it.store(fr, v); err != nil {
					return value{}, err
				}
			case *ir.Elem:
				base, ok := it.resolveAddr(fr, v.Source)
				if !ok {
					return value{}, fmt.Errorf("interp: unknown slot %s", v.Source)
				}
				idx := it.read(fr, v.Index).i
				fr.regs[v.Dst] = addrVal(address{base: base, idx: int(idx)})
			case *ir.BinOp:
				res, err := it.binOp(v.Op, v.Type, it.read(fr, v.Left), it.read(fr, v.Right))
				if err != nil {
					return value{}, err
				}
				fr.regs[v.Dst] = res
			case *ir.UnOp:
				res, err := it.unOp(v.Op, v.Type, it.read(fr, v.Src))
				if err != nil {
					return value{}, err
				}
				fr.regs[v.Dst] = res
			case *ir.Not:
				fr.regs[v.Dst] = boolVal(!it.read(fr, v.Src).b)
			case *ir.SIToFP:
				fr.regs[v.Dst] = floatVal(float64(it.read(fr, v.Src).i))
			case *ir.FPToSI:
				fr.regs[v.Dst] = intVal(int64(it.read(fr, v.Src).f))
			case *ir.Param:
				pendingArgs = append(pendingArgs, it.read(fr, v.Src))
			case *ir.Call:
				callee, ok := it.funcs[trimAt(v.Callee)]
				if !ok {
					return value{}, fmt.Errorf("interp: unknown function %s", v.Callee)
				}
				result, err := it.call(callee, pendingArgs)
				pendingArgs = nil
				if err != nil {
					return value{}, err
				}
				if v.Dst != "" {
					fr.regs[v.Dst] = result
				}
			case *ir.Print:
				it.printValue(v.Type, it.read(fr, v.Src))
			case *ir.Read:
				val, err := it.readInput(v.Type)
				if err != nil {
					return value{}, err
				}
				fr.regs[v.Dst] = val
			case *ir.Return:
				returned = true
				if v.Src != "" {
					retVal = it.read(fr, v.Src)
				}
			case *ir.Jump:
				cur = blocks[v.Target_]
				jumped = true
			case *ir.CBranch:
				cond := it.read(fr, v.Cond).b
				if cond {
					cur = blocks[v.Taken]
				} else {
					cur = blocks[v.FallThrough]
				}
				jumped = true
			}
			if jumped {
				break
			}
		}
		if returned {
			break
		}
		if !jumped {
			// A block with no explicit terminator (only the function
			// exit block ends this way) has nowhere left to go.
			break
		}
	}
	return retVal, nil
}

// blockIndex maps every block's label to itself for Jump/CBranch
// target resolution.
func blockIndex(fn *ir.Function) map[string]ir.Block {
	m := make(map[string]ir.Block, len(fn.Blocks))
	for _, b := range fn.Blocks {
		m[b.Label()] = b
	}
	return m
}

func trimAt(name string) string {
	if len(name) > 0 && name[0] == '@' {
		return name[1:]
	}
	return name
}

// read resolves an operand name to its value: a register if one
// exists, else a named scalar slot (global or local).
func (it *Interp) read(fr *frame, name string) value {
	if v, ok := fr.regs[name]; ok {
		return v
	}
	if c, ok := fr.locals[name]; ok {
		return c.data[0]
	}
	if c, ok := it.globals[name]; ok {
		return c.data[0]
	}
	return value{}
}

func (it *Interp) resolveAddr(fr *frame, name string) (string, bool) {
	if _, ok := fr.locals[name]; ok {
		return name, true
	}
	if _, ok := it.globals[name]; ok {
		return name, true
	}
	return "", false
}

func (it *Interp) cellFor(fr *frame, name string) *cell {
	if c, ok := fr.locals[name]; ok {
		return c
	}
	return it.globals[name]
}

func (it *Interp) load(fr *frame, instr *ir.Load) (value, error) {
	if !instr.Star {
		return it.read(fr, instr.Src), nil
	}
	addrReg := it.read(fr, instr.Src)
	c := it.cellFor(fr, addrReg.addr.base)
	if c == nil || addrReg.addr.idx >= len(c.data) {
		return value{}, fmt.Errorf("interp: out-of-bounds load through %s[%d]", addrReg.addr.base, addrReg.addr.idx)
	}
	return c.data[addrReg.addr.idx], nil
}

func (it *Interp) store(fr *frame, instr *ir.Store) error {
	val := it.read(fr, instr.Src)
	if !instr.Star {
		c := it.cellFor(fr, instr.Dst)
		if c == nil {
			return fmt.Errorf("interp: unknown slot %s", instr.Dst)
		}
		c.data[0] = val
		return nil
	}
	addrReg := it.read(fr, instr.Dst)
	c := it.cellFor(fr, addrReg.addr.base)
	if c == nil || addrReg.addr.idx >= len(c.data) {
		return fmt.Errorf("interp: out-of-bounds store through %s[%d]", addrReg.addr.base, addrReg.addr.idx)
	}
	c.data[addrReg.addr.idx] = val
	return nil
}

func (it *Interp) printValue(typ string, v value) {
	if typ == "void" {
		fmt.Fprintln(it.out)
		return
	}
	if typ == "string" {
		fmt.Fprint(it.out, v.s)
		return
	}
	fmt.Fprint(it.out, v.String())
}

// readInput implements Read's runtime semantics per SPEC_FULL §10: a
// whitespace-delimited token from stdin, converted to the target type.
func (it *Interp) readInput(typ string) (value, error) {
	if !it.in.Scan() {
		if err := it.in.Err(); err != nil {
			return value{}, err
		}
		return value{}, io.EOF
	}
	return parseLiteral(typ, it.in.Text())
}

func (it *Interp) binOp(op, typ string, l, r value) (value, error) {
	switch typ {
	case "int":
		switch op {
		case "add":
			return intVal(l.i + r.i), nil
		case "sub":
			return intVal(l.i - r.i), nil
		case "mul":
			return intVal(l.i * r.i), nil
		case "div":
			if r.i == 0 {
				return value{}, fmt.Errorf("interp: division by zero")
			}
			return intVal(l.i / r.i), nil
		case "mod":
			if r.i == 0 {
				return value{}, fmt.Errorf("interp: modulo by zero")
			}
			return intVal(l.i % r.i), nil
		case "lt":
			return boolVal(l.i < r.i), nil
		case "le":
			return boolVal(l.i <= r.i), nil
		case "gt":
			return boolVal(l.i > r.i), nil
		case "ge":
			return boolVal(l.i >= r.i), nil
		case "eq":
			return boolVal(l.i == r.i), nil
		case "ne":
			return boolVal(l.i != r.i), nil
		}
	case "float":
		switch op {
		case "add":
			return floatVal(l.f + r.f), nil
		case "sub":
			return floatVal(l.f - r.f), nil
		case "mul":
			return floatVal(l.f * r.f), nil
		case "div":
			return floatVal(l.f / r.f), nil
		case "mod":
			return floatVal(math.Mod(l.f, r.f)), nil
		case "lt":
			return boolVal(l.f < r.f), nil
		case "le":
			return boolVal(l.f <= r.f), nil
		case "gt":
			return boolVal(l.f > r.f), nil
		case "ge":
			return boolVal(l.f >= r.f), nil
		case "eq":
			return boolVal(l.f == r.f), nil
		case "ne":
			return boolVal(l.f != r.f), nil
		}
	case "bool":
		switch op {
		case "and":
			return boolVal(l.b && r.b), nil
		case "or":
			return boolVal(l.b || r.b), nil
		case "eq":
			return boolVal(l.b == r.b), nil
		case "ne":
			return boolVal(l.b != r.b), nil
		}
	case "char", "string":
		switch op {
		case "eq":
			return boolVal(l.s == r.s), nil
		case "ne":
			return boolVal(l.s != r.s), nil
		case "add":
			return stringVal(l.s + r.s), nil
		}
	}
	return value{}, fmt.Errorf("interp: unsupported %s_%s", op, typ)
}

func (it *Interp) unOp(op, typ string, v value) (value, error) {
	switch typ {
	case "int":
		switch op {
		case "uadd":
			return v, nil
		case "usub":
			return intVal(-v.i), nil
		}
	case "float":
		switch op {
		case "uadd":
			return v, nil
		case "usub":
			return floatVal(-v.f), nil
		}
	}
	return value{}, fmt.Errorf("interp: unsupported unary %s_%s", op, typ)
}
