package ast

import (
	"fmt"
	"strings"

	"ucc/internal/types"
)

// VarDecl declares a scalar or array variable, at either global or
// local scope. Dims holds one entry per array dimension (possibly nil
// for a size elided from the outermost dimension, inferred from Init);
// a scalar declaration has a nil Dims.
type VarDecl struct {
	Name     string
	TypeName string
	Dims     []*int // nil => scalar; each element nil => size elided
	Init     Expr   // nil if uninitialised
	Position
	Annotation
}

func (n *VarDecl) stmtNode()  {}
func (n *VarDecl) declNode()  {}
func (n *VarDecl) Pos() Position { return n.Position }
func (n *VarDecl) String() string {
	dims := ""
	for _, d := range n.Dims {
		if d == nil {
			dims += "[]"
		} else {
			dims += fmt.Sprintf("[%d]", *d)
		}
	}
	s := fmt.Sprintf("%s %s%s", n.TypeName, n.Name, dims)
	if n.Init != nil {
		s += " = " + n.Init.String()
	}
	return s
}

// IsArray reports whether this declaration has array dimensions.
func (n *VarDecl) IsArray() bool { return len(n.Dims) > 0 }

// Param is a function formal parameter; it carries no array dims since
// uC array parameters are not part of this core's grammar.
type Param struct {
	Name     string
	TypeName string
	Position
	Annotation
}

// FuncDecl declares a function: its name, declared return type,
// parameter list, and body. Per the scope discipline in SPEC_FULL §4.1,
// parameters belong to the function's own scope, pushed when the
// declaration itself is visited and popped after the body.
type FuncDecl struct {
	Name       string
	ReturnType string
	Params     []*Param
	Body       *Compound
	HasReturn  bool // set by the semantic analyser's post-body walk
	Position
	Annotation
}

func (n *FuncDecl) stmtNode()  {}
func (n *FuncDecl) declNode()  {}
func (n *FuncDecl) Pos() Position { return n.Position }
func (n *FuncDecl) String() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = p.TypeName + " " + p.Name
	}
	return fmt.Sprintf("%s %s(%s)", n.ReturnType, n.Name, strings.Join(parts, ", "))
}

// ParamTypes returns the ordered parameter types as a []types.Type,
// resolving each Param's TypeName, for use by the symbol table's
// function-signature binding.
func ParamTypes(params []*Param) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		t, _ := types.FromName(p.TypeName)
		out[i] = t
	}
	return out
}
