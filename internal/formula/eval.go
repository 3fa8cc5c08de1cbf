package formula

import (
	"errors"
	"math"
	"strconv"

	"github.com/mfgworks/dynaform/internal/types"
)

var errMalformed = errors.New("malformed formula")

// Evaluate computes a calculated field's value from its sibling field
// values. Identifiers resolve against the record with missing, empty,
// and non-numeric values coercing to 0. The result is rounded to two
// decimals. Any failure (malformed expression, unknown token, division
// producing a non-finite value) returns 0 rather than an error, so a
// broken formula never blocks the rest of the form.
func Evaluate(formula string, rec types.Record) float64 {
	v, err := eval(formula, rec)
	if err != nil {
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

func eval(formula string, rec types.Record) (float64, error) {
	tokens := newLexer(formula).tokenize()
	p := &parser{tokens: tokens, rec: rec}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.peek().Type != tokenEOF {
		return 0, errMalformed
	}
	return v, nil
}

// parser is a recursive descent evaluator over the token stream:
//
//	expr   := term (('+' | '-') term)*
//	term   := unary (('*' | '/') unary)*
//	unary  := '-' unary | factor
//	factor := number | identifier | '(' expr ')'
type parser struct {
	tokens []token
	pos    int
	rec    types.Record
}

func (p *parser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{Type: tokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.peek()
	if tok.Type != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().Type {
		case tokenPlus:
			p.advance()
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case tokenMinus:
			p.advance()
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().Type {
		case tokenStar:
			p.advance()
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case tokenSlash:
			p.advance()
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	if p.peek().Type == tokenMinus {
		p.advance()
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parseFactor()
}

func (p *parser) parseFactor() (float64, error) {
	tok := p.advance()
	switch tok.Type {
	case tokenNumber:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return 0, errMalformed
		}
		return v, nil
	case tokenIdent:
		return types.Number(p.rec[tok.Literal]), nil
	case tokenLParen:
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.advance().Type != tokenRParen {
			return 0, errMalformed
		}
		return v, nil
	default:
		return 0, errMalformed
	}
}
