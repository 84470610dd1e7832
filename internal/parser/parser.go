// Package parser implements uC's front end: a recursive-descent parser
// for declarations and statements paired with a Pratt expression
// parser, following the structure (if not the grammar) of the
// teacher's hand-written internal/parser package.
package parser

import (
	"fmt"

	"ucc/internal/ast"
	"ucc/internal/lexer"
)

// ParseError is returned by ParseSource on the first syntax error
// encountered; parsing is fatal-first-error per SPEC_FULL §7.
type ParseError struct {
	Msg  string
	Line int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s @ %d:%d", e.Msg, e.Line, e.Col)
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

// ParseSource lexes and parses src, returning the Program AST root or
// the first ParseError or lexical error encountered.
func ParseSource(src string) (*ast.Program, error) {
	var lexErr *ParseError
	sc := lexer.NewScanner(src, func(msg string, line, col int) {
		if lexErr == nil {
			lexErr = &ParseError{Msg: msg, Line: line, Col: col}
		}
	})
	toks := sc.ScanTokens()
	if lexErr != nil {
		return nil, lexErr
	}

	p := &parser{tokens: toks}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *parser) atEnd() bool       { return p.cur().Kind == lexer.EOF }
func (p *parser) advance() lexer.Token {
	t := p.cur()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *parser) check(k lexer.TokenKind) bool { return p.cur().Kind == k }

func (p *parser) matchTok(k lexer.TokenKind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(k lexer.TokenKind, what string) (lexer.Token, error) {
	if p.check(k) {
		return p.advance(), nil
	}
	t := p.cur()
	return t, &ParseError{Msg: "expected " + what, Line: t.Line, Col: t.Column}
}

func (p *parser) pos_() ast.Position {
	t := p.cur()
	return ast.Position{Line: t.Line, Column: t.Column}
}

// typeKeyword reports whether the current token starts a type
// specifier (int/float/char/void) and returns its name.
func (p *parser) typeKeyword() (string, bool) {
	switch p.cur().Kind {
	case lexer.INT:
		return "int", true
	case lexer.FLOAT:
		return "float", true
	case lexer.CHAR:
		return "char", true
	case lexer.VOID:
		return "void", true
	}
	return "", false
}

func (p *parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{Position: p.pos_()}
	for !p.atEnd() {
		d, err := p.parseTopDecl()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, d)
	}
	return prog, nil
}

// parseTopDecl parses `type_spec declarator` then disambiguates
// between a function definition (declarator followed by '(') and a
// variable declaration.
func (p *parser) parseTopDecl() (ast.Decl, error) {
	pos := p.pos_()
	typeName, ok := p.typeKeyword()
	if !ok {
		t := p.cur()
		return nil, &ParseError{Msg: "expected type specifier", Line: t.Line, Col: t.Column}
	}
	p.advance()

	nameTok, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	name := nameTok.Literal

	if p.check(lexer.LPAREN) {
		return p.parseFuncDecl(pos, typeName, name)
	}
	return p.parseVarDeclTail(pos, typeName, name)
}

func (p *parser) parseFuncDecl(pos ast.Position, typeName, name string) (ast.Decl, error) {
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []*ast.Param
	if !p.check(lexer.RPAREN) {
		for {
			ppos := p.pos_()
			pt, ok := p.typeKeyword()
			if !ok {
				t := p.cur()
				return nil, &ParseError{Msg: "expected parameter type", Line: t.Line, Col: t.Column}
			}
			p.advance()
			pn, err := p.expect(lexer.IDENT, "parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, &ast.Param{Name: pn.Literal, TypeName: pt, Position: ppos})
			if !p.matchTok(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	if !p.check(lexer.LBRACE) {
		t := p.cur()
		return nil, &ParseError{Msg: "expected function body", Line: t.Line, Col: t.Column}
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{Name: name, ReturnType: typeName, Params: params, Body: body, Position: pos}, nil
}

// parseVarDeclTail parses the remainder of a variable declaration after
// `type_spec IDENT` has already been consumed: optional array
// dimensions, optional initializer, terminating semicolon.
func (p *parser) parseVarDeclTail(pos ast.Position, typeName, name string) (ast.Decl, error) {
	var dims []*int
	for p.matchTok(lexer.LBRACKET) {
		if p.check(lexer.RBRACKET) {
			dims = append(dims, nil)
		} else {
			n, err := p.expect(lexer.INT_LIT, "array size")
			if err != nil {
				return nil, err
			}
			v := atoiMust(n.Literal)
			dims = append(dims, &v)
		}
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return nil, err
		}
	}

	var init ast.Expr
	if p.matchTok(lexer.ASSIGN) {
		e, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		init = e
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Name: name, TypeName: typeName, Dims: dims, Init: init, Position: pos}, nil
}

func (p *parser) parseInitializer() (ast.Expr, error) {
	if p.check(lexer.LBRACE) {
		return p.parseInitList()
	}
	return p.parseExpr()
}

func (p *parser) parseInitList() (ast.Expr, error) {
	pos := p.pos_()
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	il := &ast.InitList{Position: pos}
	if !p.check(lexer.RBRACE) {
		for {
			item, err := p.parseInitializer()
			if err != nil {
				return nil, err
			}
			il.Items = append(il.Items, item)
			if !p.matchTok(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return il, nil
}

func atoiMust(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
