package grammar

import (
	"fmt"
	"strings"
)

// Print renders prog in canonical layout: four-space indentation, one
// statement per line, `} else {` joined on one line — ported from the
// teacher's grammar/printer.go StringWithIndent family, reshaped for
// uC's declaration/statement/expression grammar.
func Print(prog *Program) string {
	var b strings.Builder
	for _, d := range prog.Decls {
		b.WriteString(d.String())
	}
	return b.String()
}

func indent(level int) string { return strings.Repeat("    ", level) }

func (d *TopDecl) String() string {
	switch {
	case d.Comment != nil:
		return d.Comment.Text + "\n"
	case d.Func != nil:
		return d.Func.String()
	case d.Var != nil:
		return d.Var.String(0) + "\n"
	default:
		return ""
	}
}

func (t *Type) String() string {
	s := t.Base
	for _, d := range t.Dims {
		s += d.String()
	}
	return s
}

func (d *Dim) String() string {
	if d.Size != nil {
		return "[" + *d.Size + "]"
	}
	return "[]"
}

func (v *VarDecl) String(level int) string {
	s := indent(level) + v.Type.String() + " " + v.Name
	for _, d := range v.Dims {
		s += d.String()
	}
	if v.Init != nil {
		s += " = " + v.Init.String()
	}
	return s + ";"
}

func (r *InitRHS) String() string {
	if r.List != nil {
		return r.List.String()
	}
	if r.Expr != nil {
		return r.Expr.String()
	}
	return ""
}

func (l *InitList) String() string {
	items := make([]string, len(l.Items))
	for i, it := range l.Items {
		items[i] = it.String()
	}
	return "{" + strings.Join(items, ", ") + "}"
}

func (p *Param) String() string { return p.Type.String() + " " + p.Name }

func (f *FuncDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	s := fmt.Sprintf("%s %s(%s) ", f.Type.String(), f.Name, strings.Join(params, ", "))
	s += f.Body.String(0)
	return s + "\n"
}

func (b *Block) String(level int) string {
	var s strings.Builder
	s.WriteString("{\n")
	for _, d := range b.Decls {
		s.WriteString(d.String(level+1) + "\n")
	}
	for _, st := range b.Stmts {
		s.WriteString(st.String(level + 1))
	}
	s.WriteString(indent(level) + "}")
	return s.String()
}

func (s *Stmt) String(level int) string {
	switch {
	case s.Block != nil:
		return indent(level) + s.Block.String(level) + "\n"
	case s.If != nil:
		return s.If.String(level)
	case s.While != nil:
		return s.While.String(level)
	case s.For != nil:
		return s.For.String(level)
	case s.Break != "":
		return indent(level) + "break;\n"
	case s.Return != nil:
		return indent(level) + s.Return.String() + "\n"
	case s.Assert != nil:
		return indent(level) + "assert " + s.Assert.String() + "\n"
	case s.Print != nil:
		return indent(level) + "print " + s.Print.String() + "\n"
	case s.Read != nil:
		return indent(level) + "read " + s.Read.String() + "\n"
	case s.ExprStmt != nil:
		return indent(level) + s.ExprStmt.String() + "\n"
	default:
		return ""
	}
}

func (i *IfStmt) String(level int) string {
	s := fmt.Sprintf("%sif (%s) %s", indent(level), i.Cond.String(), i.Then.String(level))
	if i.Else != nil {
		s = strings.TrimSuffix(s, "\n") + " else " + strings.TrimPrefix(i.Else.String(level), indent(level))
	}
	return s
}

func (w *WhileStmt) String(level int) string {
	return fmt.Sprintf("%swhile (%s) %s", indent(level), w.Cond.String(), w.Body.String(level))
}

func (f *ForStmt) String(level int) string {
	cond, post := "", ""
	if f.Cond != nil {
		cond = f.Cond.String()
	}
	if f.Post != nil {
		post = f.Post.String()
	}
	return fmt.Sprintf("%sfor (%s; %s; %s) %s", indent(level), f.Init.String(), cond, post, f.Body.String(level))
}

func (r *ReturnStmt) String() string {
	if r.Expr != nil {
		return "return " + r.Expr.String() + ";"
	}
	return "return;"
}

func (e *ExprStmt) String() string {
	if e.Expr != nil {
		return e.Expr.String() + ";"
	}
	return ";"
}

func (e *Expr) String() string {
	s := e.Left.String()
	for _, op := range e.Ops {
		s += " " + op.Op + " " + op.Right.String()
	}
	return s
}

func (u *Unary) String() string {
	if u.Op != nil {
		return *u.Op + u.Value.String()
	}
	return u.Value.String()
}

func (p *Postfix) String() string {
	s := p.Primary.String()
	for _, op := range p.Ops {
		s += op
	}
	return s
}

func (p *Primary) String() string {
	switch {
	case p.Call != nil:
		return p.Call.String()
	case p.Index != nil:
		return p.Index.String()
	case p.Ident != nil:
		return *p.Ident
	case p.Float != nil:
		return *p.Float
	case p.Int != nil:
		return *p.Int
	case p.Char != nil:
		return *p.Char
	case p.String != nil:
		return *p.String
	case p.Paren != nil:
		return "(" + p.Paren.String() + ")"
	default:
		return ""
	}
}

func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

func (ix *IndexExpr) String() string {
	s := ix.Name
	for _, idx := range ix.Index {
		s += "[" + idx.String() + "]"
	}
	return s
}
