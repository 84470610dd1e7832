package ast

import (
	"fmt"
	"strings"
)

// Expression node kinds. Each embeds Annotation directly (rather than
// via a pointer) so the zero value is a valid, unannotated node.

type ID struct {
	Name string
	Position
	Annotation
}

func (n *ID) exprNode()            {}
func (n *ID) Annot() *Annotation   { return &n.Annotation }
func (n *ID) Pos() Position        { return n.Position }
func (n *ID) String() string       { return n.Name }

// Constant is a literal of kind "int", "float", "char" or "string".
type Constant struct {
	Kind  string
	Value string
	Position
	Annotation
}

func (n *Constant) exprNode()          {}
func (n *Constant) Annot() *Annotation { return &n.Annotation }
func (n *Constant) Pos() Position      { return n.Position }
func (n *Constant) String() string {
	if n.Kind == "string" {
		return fmt.Sprintf("%q", n.Value)
	}
	return n.Value
}

type BinaryOp struct {
	Op          string
	Left, Right Expr
	Position
	Annotation
}

func (n *BinaryOp) exprNode()          {}
func (n *BinaryOp) Annot() *Annotation { return &n.Annotation }
func (n *BinaryOp) Pos() Position      { return n.Position }
func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

// UnaryOp covers prefix "!","-","+","*","&" and the increment/decrement
// forms "++","--" (prefix) and "p++","p--" (postfix), matching the
// original's op-token naming.
type UnaryOp struct {
	Op   string
	Expr Expr
	Position
	Annotation
}

func (n *UnaryOp) exprNode()          {}
func (n *UnaryOp) Annot() *Annotation { return &n.Annotation }
func (n *UnaryOp) Pos() Position      { return n.Position }
func (n *UnaryOp) String() string     { return fmt.Sprintf("(%s%s)", n.Op, n.Expr) }

type Assignment struct {
	Op             string
	LValue, RValue Expr
	Position
	Annotation
}

func (n *Assignment) exprNode()          {}
func (n *Assignment) Annot() *Annotation { return &n.Annotation }
func (n *Assignment) Pos() Position      { return n.Position }
func (n *Assignment) String() string {
	return fmt.Sprintf("%s %s %s", n.LValue, n.Op, n.RValue)
}

type ArrayRef struct {
	Array Expr
	Index Expr
	Position
	Annotation
}

func (n *ArrayRef) exprNode()          {}
func (n *ArrayRef) Annot() *Annotation { return &n.Annotation }
func (n *ArrayRef) Pos() Position      { return n.Position }
func (n *ArrayRef) String() string     { return fmt.Sprintf("%s[%s]", n.Array, n.Index) }

type FuncCall struct {
	Callee string
	Args   []Expr
	Position
	Annotation
}

func (n *FuncCall) exprNode()          {}
func (n *FuncCall) Annot() *Annotation { return &n.Annotation }
func (n *FuncCall) Pos() Position      { return n.Position }
func (n *FuncCall) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Callee, strings.Join(parts, ", "))
}

// ExprList is a comma-joined list of expressions, used as the argument
// of print/read when more than one value is given.
type ExprList struct {
	Exprs []Expr
	Position
	Annotation
}

func (n *ExprList) exprNode()          {}
func (n *ExprList) Annot() *Annotation { return &n.Annotation }
func (n *ExprList) Pos() Position      { return n.Position }
func (n *ExprList) String() string {
	parts := make([]string, len(n.Exprs))
	for i, e := range n.Exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// InitList is an array initializer, possibly nested for multi-dim arrays.
type InitList struct {
	Items []Expr
	Position
	Annotation
}

func (n *InitList) exprNode()          {}
func (n *InitList) Annot() *Annotation { return &n.Annotation }
func (n *InitList) Pos() Position      { return n.Position }
func (n *InitList) String() string {
	parts := make([]string, len(n.Items))
	for i, e := range n.Items {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
