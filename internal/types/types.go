// Package types implements uC's type descriptors: the singleton scalar
// types and the per-declaration array type, each carrying the operator
// sets that drive the semantic analyser's typing rules.
package types

import (
	"fmt"
	"strings"
)

// Type is a uC type descriptor. Equality between two Types is defined
// by structural string rendering, not identity, so that two separately
// constructed array types of the same shape compare equal.
type Type interface {
	String() string
	// UnaryOps, BinaryOps, RelOps and AssignOps are the operator
	// tokens this type supports in the corresponding position.
	UnaryOps() map[string]bool
	BinaryOps() map[string]bool
	RelOps() map[string]bool
	AssignOps() map[string]bool
}

// Equal reports whether a and b render to the same type string.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

type basic struct {
	name   string
	unary  map[string]bool
	binary map[string]bool
	rel    map[string]bool
	assign map[string]bool
}

func (b *basic) String() string               { return b.name }
func (b *basic) UnaryOps() map[string]bool     { return b.unary }
func (b *basic) BinaryOps() map[string]bool    { return b.binary }
func (b *basic) RelOps() map[string]bool       { return b.rel }
func (b *basic) AssignOps() map[string]bool    { return b.assign }

func set(ops ...string) map[string]bool {
	m := make(map[string]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}

// Process-global singleton basic types, per the source invariant that
// basic types never vary across a compilation. Operator sets are
// ported verbatim from uc_type.py.
var (
	Int = &basic{
		name:   "int",
		unary:  set("-", "+", "--", "++", "p--", "p++", "*", "&"),
		binary: set("+", "-", "*", "/", "%"),
		rel:    set("==", "!=", "<", ">", "<=", ">="),
		assign: set("=", "+=", "-=", "*=", "/=", "%="),
	}
	Float = &basic{
		name:   "float",
		unary:  set("-", "+", "*", "&"),
		binary: set("+", "-", "*", "/", "%"),
		rel:    set("==", "!=", "<", ">", "<=", ">="),
		assign: set("=", "+=", "-=", "*=", "/=", "%="),
	}
	Char = &basic{
		name:   "char",
		unary:  set(),
		binary: set(),
		rel:    set("==", "!=", "&&", "||"),
		assign: set("="),
	}
	Bool = &basic{
		name:   "bool",
		unary:  set("!"),
		binary: set(),
		rel:    set("==", "!=", "&&", "||"),
		assign: set("="),
	}
	String = &basic{
		name:   "string",
		unary:  set(),
		binary: set("+"),
		rel:    set("==", "!="),
		assign: set("="),
	}
	Void = &basic{
		name:   "void",
		unary:  set(),
		binary: set(),
		rel:    set(),
		assign: set(),
	}
)

// Array is a freshly-allocated array type: `Elem[Size]`, or `Elem[]`
// when Size is nil (a size-elided declaration awaiting inference from
// an initializer).
type Array struct {
	Elem Type
	Size *int
}

func NewArray(elem Type, size *int) *Array {
	return &Array{Elem: elem, Size: size}
}

// FromDims builds a (possibly nested) array type over elem from an
// outermost-to-innermost slice of dimension sizes, e.g. FromDims(Int,
// [2, 3]) yields the type of a declaration `int a[2][3]`.
func FromDims(elem Type, dims []*int) Type {
	t := elem
	for i := len(dims) - 1; i >= 0; i-- {
		t = NewArray(t, dims[i])
	}
	return t
}

// Dims returns t's dimension sizes outermost-first, and the ultimate
// scalar base type.
func Dims(t Type) (dims []*int, base Type) {
	for {
		arr, ok := t.(*Array)
		if !ok {
			return dims, t
		}
		dims = append(dims, arr.Size)
		t = arr.Elem
	}
}

// String renders dims outermost-first, matching declaration order: a
// declaration `int a[2][3]` renders as "int[2][3]", never "int[3][2]".
func (a *Array) String() string {
	var dims []string
	var t Type = a
	for {
		arr, ok := t.(*Array)
		if !ok {
			break
		}
		if arr.Size == nil {
			dims = append(dims, "[]")
		} else {
			dims = append(dims, fmt.Sprintf("[%d]", *arr.Size))
		}
		t = arr.Elem
	}
	return t.String() + strings.Join(dims, "")
}

// Arrays never carry their own operator sets in uC; only their basic
// element type does, reached via Basic.
func (a *Array) UnaryOps() map[string]bool  { return nil }
func (a *Array) BinaryOps() map[string]bool { return nil }
func (a *Array) RelOps() map[string]bool    { return nil }
func (a *Array) AssignOps() map[string]bool { return nil }

// Basic returns the innermost scalar element type of t, unwrapping any
// number of Array layers. Used by the IR builder to pick an
// instruction's type suffix, where only the basic type name matters.
func Basic(t Type) Type {
	for {
		arr, ok := t.(*Array)
		if !ok {
			return t
		}
		t = arr.Elem
	}
}

// FromName maps a uC type keyword to its singleton Type.
func FromName(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "char":
		return Char, true
	case "bool":
		return Bool, true
	case "string":
		return String, true
	case "void":
		return Void, true
	default:
		return nil, false
	}
}
