// Package sema implements uC's semantic analysis: the shadow-stack
// symbol table and the type-checking visitor, grounded on
// original_source/uc_sema.py's exact scope and error-message semantics
// and structured after the teacher's internal/semantic package shape.
package sema

import "ucc/internal/types"

// ScopeStatus is the tri-state result of SymbolTable.Declared, matching
// uc_sema.py SymbolTable.declared()'s {0, -1, -2} convention.
type ScopeStatus int

const (
	NotDeclared ScopeStatus = iota
	DeclaredOuter
	DeclaredLocal
)

// binding is one entry in a name's shadow stack.
type binding struct {
	typ        types.Type
	params     []types.Type // non-nil for function bindings
	paramNames []string
	isFunc     bool
}

// SymbolTable is a map from name to a stack of bindings, plus a stack
// of per-scope name lists used to unwind bindings on EndScope — the Go
// shape of uc_sema.py's SymbolTable(dict) class.
type SymbolTable struct {
	stacks map[string][]binding
	scopes [][]string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{stacks: make(map[string][]binding)}
}

func (t *SymbolTable) BeginScope() {
	t.scopes = append(t.scopes, nil)
}

func (t *SymbolTable) EndScope() {
	top := t.scopes[len(t.scopes)-1]
	t.scopes = t.scopes[:len(t.scopes)-1]
	for _, name := range top {
		stack := t.stacks[name]
		t.stacks[name] = stack[:len(stack)-1]
	}
}

// Declare pushes a variable binding onto name's shadow stack in the
// current scope.
func (t *SymbolTable) Declare(name string, typ types.Type) {
	t.stacks[name] = append(t.stacks[name], binding{typ: typ})
	t.recordInScope(name)
}

// DeclareFunc pushes a function binding carrying its ordered parameter
// types and names, into the scope active when it is called (the
// caller is responsible for calling this before pushing the function's
// own body scope, so the name remains visible after the function ends
// and is reachable for recursive calls from within the body).
func (t *SymbolTable) DeclareFunc(name string, ret types.Type, paramNames []string, params []types.Type) {
	t.stacks[name] = append(t.stacks[name], binding{typ: ret, params: params, paramNames: paramNames, isFunc: true})
	t.recordInScope(name)
}

func (t *SymbolTable) recordInScope(name string) {
	top := len(t.scopes) - 1
	t.scopes[top] = append(t.scopes[top], name)
}

// Lookup returns the innermost binding's type for name, or nil if
// undeclared.
func (t *SymbolTable) Lookup(name string) types.Type {
	stack := t.stacks[name]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1].typ
}

// LookupFuncParams returns the ordered parameter types and names of
// name if it is a function binding, and whether the lookup found a
// function at all.
func (t *SymbolTable) LookupFuncParams(name string) (params []types.Type, names []string, ok bool) {
	stack := t.stacks[name]
	if len(stack) == 0 {
		return nil, nil, false
	}
	b := stack[len(stack)-1]
	if !b.isFunc {
		return nil, nil, false
	}
	return b.params, b.paramNames, true
}

// Declared reports name's status in the current scope chain.
func (t *SymbolTable) Declared(name string) ScopeStatus {
	stack := t.stacks[name]
	if len(stack) == 0 {
		return NotDeclared
	}
	if len(t.scopes) > 0 {
		top := t.scopes[len(t.scopes)-1]
		for _, n := range top {
			if n == name {
				return DeclaredLocal
			}
		}
	}
	return DeclaredOuter
}
