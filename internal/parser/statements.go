package parser

import (
	"ucc/internal/ast"
	"ucc/internal/lexer"
)

func (p *parser) parseCompound() (*ast.Compound, error) {
	pos := p.pos_()
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	c := &ast.Compound{Position: pos}
	for !p.check(lexer.RBRACE) && !p.atEnd() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		c.Items = append(c.Items, s)
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.check(lexer.LBRACE):
		return p.parseCompound()
	case p.check(lexer.IF):
		return p.parseIf()
	case p.check(lexer.WHILE):
		return p.parseWhile()
	case p.check(lexer.FOR):
		return p.parseFor()
	case p.check(lexer.BREAK):
		return p.parseBreak()
	case p.check(lexer.RETURN):
		return p.parseReturn()
	case p.check(lexer.ASSERT):
		return p.parseAssert()
	case p.check(lexer.PRINT):
		return p.parsePrint()
	case p.check(lexer.READ):
		return p.parseRead()
	default:
		if _, ok := p.typeKeyword(); ok {
			return p.parseLocalDecl()
		}
		return p.parseExprStmt()
	}
}

func (p *parser) parseLocalDecl() (ast.Stmt, error) {
	pos := p.pos_()
	typeName, _ := p.typeKeyword()
	p.advance()
	nameTok, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	d, err := p.parseVarDeclTail(pos, typeName, nameTok.Literal)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (p *parser) parseExprStmt() (ast.Stmt, error) {
	pos := p.pos_()
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: e, Position: pos}, nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	pos := p.pos_()
	p.advance()
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.matchTok(lexer.ELSE) {
		elseStmt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Cond: cond, Then: then, Else: elseStmt, Position: pos}, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	pos := p.pos_()
	p.advance()
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Position: pos}, nil
}

func (p *parser) parseFor() (ast.Stmt, error) {
	pos := p.pos_()
	p.advance()
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}

	var initStmt ast.Stmt
	if !p.check(lexer.SEMICOLON) {
		if _, ok := p.typeKeyword(); ok {
			s, err := p.parseLocalDecl()
			if err != nil {
				return nil, err
			}
			initStmt = s
		} else {
			s, err := p.parseExprStmt()
			if err != nil {
				return nil, err
			}
			initStmt = s
		}
	} else {
		p.advance()
	}

	var cond ast.Expr
	if !p.check(lexer.SEMICOLON) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		cond = e
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}

	var post ast.Stmt
	if !p.check(lexer.RPAREN) {
		ppos := p.pos_()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		post = &ast.ExprStmt{Expr: e, Position: ppos}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.For{Init: initStmt, Cond: cond, Post: post, Body: body, Position: pos}, nil
}

func (p *parser) parseBreak() (ast.Stmt, error) {
	pos := p.pos_()
	p.advance()
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.Break{Position: pos}, nil
}

func (p *parser) parseReturn() (ast.Stmt, error) {
	pos := p.pos_()
	p.advance()
	var e ast.Expr
	if !p.check(lexer.SEMICOLON) {
		var err error
		e, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.Return{Expr: e, Position: pos}, nil
}

func (p *parser) parseAssert() (ast.Stmt, error) {
	pos := p.pos_()
	p.advance()
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.Assert{Expr: e, Position: pos}, nil
}

func (p *parser) parsePrint() (ast.Stmt, error) {
	pos := p.pos_()
	p.advance()
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var arg ast.Expr
	if !p.check(lexer.RPAREN) {
		e, err := p.parseExprListOrExpr()
		if err != nil {
			return nil, err
		}
		arg = e
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.Print{Expr: arg, Position: pos}, nil
}

func (p *parser) parseRead() (ast.Stmt, error) {
	pos := p.pos_()
	p.advance()
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	arg, err := p.parseExprListOrExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.Read{Expr: arg, Position: pos}, nil
}

func (p *parser) parseExprListOrExpr() (ast.Expr, error) {
	pos := p.pos_()
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.COMMA) {
		return first, nil
	}
	list := &ast.ExprList{Exprs: []ast.Expr{first}, Position: pos}
	for p.matchTok(lexer.COMMA) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Exprs = append(list.Exprs, e)
	}
	return list, nil
}
