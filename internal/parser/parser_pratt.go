package parser

import (
	"ucc/internal/ast"
	"ucc/internal/lexer"
)

var assignOps = map[lexer.TokenKind]string{
	lexer.ASSIGN:         "=",
	lexer.PLUS_ASSIGN:    "+=",
	lexer.MINUS_ASSIGN:   "-=",
	lexer.STAR_ASSIGN:    "*=",
	lexer.SLASH_ASSIGN:   "/=",
	lexer.PERCENT_ASSIGN: "%=",
}

func (p *parser) parseExpr() (ast.Expr, error) { return p.parseAssignment() }

// parseAssignment is right-associative: lvalue assign_op assignment.
func (p *parser) parseAssignment() (ast.Expr, error) {
	pos := p.pos_()
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if op, ok := assignOps[p.cur().Kind]; ok {
		p.advance()
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Op: op, LValue: left, RValue: right, Position: pos}, nil
	}
	return left, nil
}

func (p *parser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.OR_OR) {
		pos := p.pos_()
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: "||", Left: left, Right: right, Position: pos}
	}
	return left, nil
}

func (p *parser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.AND_AND) {
		pos := p.pos_()
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: "&&", Left: left, Right: right, Position: pos}
	}
	return left, nil
}

var equalityOps = map[lexer.TokenKind]string{
	lexer.EQUAL_EQUAL: "==",
	lexer.BANG_EQUAL:  "!=",
}

func (p *parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := equalityOps[p.cur().Kind]
		if !ok {
			return left, nil
		}
		pos := p.pos_()
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right, Position: pos}
	}
}

var relOps = map[lexer.TokenKind]string{
	lexer.LESS:          "<",
	lexer.LESS_EQUAL:    "<=",
	lexer.GREATER:       ">",
	lexer.GREATER_EQUAL: ">=",
}

func (p *parser) parseRelational() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := relOps[p.cur().Kind]
		if !ok {
			return left, nil
		}
		pos := p.pos_()
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right, Position: pos}
	}
}

var additiveOps = map[lexer.TokenKind]string{
	lexer.PLUS:  "+",
	lexer.MINUS: "-",
}

func (p *parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := additiveOps[p.cur().Kind]
		if !ok {
			return left, nil
		}
		pos := p.pos_()
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right, Position: pos}
	}
}

var termOps = map[lexer.TokenKind]string{
	lexer.STAR:    "*",
	lexer.SLASH:   "/",
	lexer.PERCENT: "%",
}

func (p *parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := termOps[p.cur().Kind]
		if !ok {
			return left, nil
		}
		pos := p.pos_()
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right, Position: pos}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	pos := p.pos_()
	switch p.cur().Kind {
	case lexer.BANG:
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "!", Expr: e, Position: pos}, nil
	case lexer.MINUS:
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "-", Expr: e, Position: pos}, nil
	case lexer.PLUS:
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "+", Expr: e, Position: pos}, nil
	case lexer.INCREMENT:
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "++", Expr: e, Position: pos}, nil
	case lexer.DECREMENT:
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "--", Expr: e, Position: pos}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		pos := p.pos_()
		switch p.cur().Kind {
		case lexer.LBRACKET:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
				return nil, err
			}
			e = &ast.ArrayRef{Array: e, Index: idx, Position: pos}
		case lexer.INCREMENT:
			p.advance()
			e = &ast.UnaryOp{Op: "p++", Expr: e, Position: pos}
		case lexer.DECREMENT:
			p.advance()
			e = &ast.UnaryOp{Op: "p--", Expr: e, Position: pos}
		default:
			return e, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	pos := p.pos_()
	switch p.cur().Kind {
	case lexer.INT_LIT:
		t := p.advance()
		return &ast.Constant{Kind: "int", Value: t.Literal, Position: pos}, nil
	case lexer.FLOAT_LIT:
		t := p.advance()
		return &ast.Constant{Kind: "float", Value: t.Literal, Position: pos}, nil
	case lexer.CHAR_LIT:
		t := p.advance()
		return &ast.Constant{Kind: "char", Value: t.Literal, Position: pos}, nil
	case lexer.STRING_LIT:
		t := p.advance()
		return &ast.Constant{Kind: "string", Value: t.Literal, Position: pos}, nil
	case lexer.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.IDENT:
		t := p.advance()
		if p.check(lexer.LPAREN) {
			return p.parseCallArgs(pos, t.Literal)
		}
		return &ast.ID{Name: t.Literal, Position: pos}, nil
	default:
		return nil, &ParseError{Msg: "unexpected token", Line: p.cur().Line, Col: p.cur().Column}
	}
}

func (p *parser) parseCallArgs(pos ast.Position, callee string) (ast.Expr, error) {
	p.advance() // '('
	call := &ast.FuncCall{Callee: callee, Position: pos}
	if !p.check(lexer.RPAREN) {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, a)
			if !p.matchTok(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return call, nil
}
