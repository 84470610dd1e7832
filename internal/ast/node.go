// Package ast defines the uC abstract syntax tree: a tagged sum over
// roughly thirty node kinds, each carrying source coordinates and a
// shared annotation slot populated by later compiler stages.
package ast

import (
	"fmt"

	"ucc/internal/types"
)

// Position is a source coordinate, 1-based in both fields.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Annotation holds the per-node slots filled in by semantic analysis
// and IR generation. Every field is set at most once and is read-only
// thereafter; which stage sets which field is documented per field.
type Annotation struct {
	// UCType is assigned by the semantic analyser on every expression
	// and declaration node.
	UCType types.Type
	// GenLocation is the temporary name holding this node's value,
	// assigned by IR generation for every non-void expression.
	GenLocation string
	// MemLocation is the address temporary for an l-value (array
	// reference), assigned by IR generation.
	MemLocation string
	// Scope is set true on an identifier reference once name
	// resolution succeeds.
	Scope bool
}

// Node is implemented by every AST variant.
type Node interface {
	Pos() Position
	String() string
}

// Expr is implemented by every expression-producing node.
type Expr interface {
	Node
	exprNode()
	Annot() *Annotation
}

// Stmt is implemented by every statement-level node, including
// declarations (a declaration is a statement in uC's grammar).
type Stmt interface {
	Node
	stmtNode()
}

// Decl is implemented by declaration nodes, which are also Stmts so
// they can appear inside a Compound or at Program scope.
type Decl interface {
	Stmt
	declNode()
}
