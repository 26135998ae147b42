package expr

import (
	"errors"
	"fmt"
	"strconv"
)

type parser struct {
	tokens []token
	pos    int
}

func parse(tokens []token) (node, error) {
	p := &parser{tokens: tokens}
	root, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", p.tokens[p.pos].raw)
	}
	return root, nil
}

func (p *parser) or() (node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(tokenOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) and() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(tokenAnd) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if p.match(tokenNot) {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	if p.match(tokenLParen) {
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.match(tokenRParen) {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := p.consume(tokenIdentifier)
	if !ok {
		if p.pos >= len(p.tokens) {
			return nil, errors.New("visibility/expr: empty expression")
		}
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q", p.tokens[p.pos].raw)
	}

	switch {
	case p.match(tokenEq), p.match(tokenNeq):
		negate := p.tokens[p.pos-1].kind == tokenNeq
		operand, err := p.literal()
		if err != nil {
			return nil, err
		}
		return compareNode{identifier: ident.raw, negate: negate, operand: operand}, nil
	case p.match(tokenIn):
		members, err := p.list()
		if err != nil {
			return nil, err
		}
		return inNode{identifier: ident.raw, members: members}, nil
	}

	return truthyNode{identifier: ident.raw}, nil
}

// list parses a parenthesised, comma separated literal list.
func (p *parser) list() ([]literal, error) {
	if !p.match(tokenLParen) {
		return nil, errors.New("visibility/expr: expected '(' after 'in'")
	}
	var members []literal
	for {
		member, err := p.literal()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
		if p.match(tokenComma) {
			continue
		}
		if p.match(tokenRParen) {
			return members, nil
		}
		return nil, errors.New("visibility/expr: expected ',' or ')' in list")
	}
}

func (p *parser) literal() (literal, error) {
	if p.pos >= len(p.tokens) {
		return literal{}, errors.New("visibility/expr: missing literal")
	}
	tok := p.tokens[p.pos]
	p.pos++
	switch tok.kind {
	case tokenString:
		return literal{kind: litString, text: tok.raw}, nil
	case tokenNumber:
		n, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return literal{}, fmt.Errorf("visibility/expr: invalid number literal %q", tok.raw)
		}
		return literal{kind: litNumber, text: tok.raw, number: n}, nil
	case tokenBool:
		return literal{kind: litBool, text: tok.raw, flag: tok.raw == "true"}, nil
	case tokenNull:
		return literal{kind: litNull, text: "null"}, nil
	case tokenIdentifier:
		// bare words compare as strings
		return literal{kind: litString, text: tok.raw}, nil
	default:
		return literal{}, fmt.Errorf("visibility/expr: expected literal, got %q", tok.raw)
	}
}

func (p *parser) match(kind tokenKind) bool {
	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != kind {
		return false
	}
	p.pos++
	return true
}

func (p *parser) consume(kind tokenKind) (token, bool) {
	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != kind {
		return token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}
