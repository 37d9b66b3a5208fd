package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/thiremani/beamtypes/ast"
	"github.com/thiremani/beamtypes/lexer"
	"github.com/thiremani/beamtypes/token"
	"github.com/thiremani/beamtypes/types"
)

// shapeParseFn parses a named shape. It is called with curToken on the
// name and must leave curToken on the last token of the shape.
type shapeParseFn func() types.Shape

type Parser struct {
	l      *lexer.Lexer
	errors []string

	curToken  token.Token
	peekToken token.Token

	shapeParseFns map[string]shapeParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []string{},
	}

	p.shapeParseFns = make(map[string]shapeParseFn)
	p.registerConst("any", types.Any{})
	p.registerConst("none", types.None{})
	p.registerConst("float", types.Float{})
	p.registerConst("number", types.Number{})
	p.registerConst("boolean", types.MakeBoolean())
	p.registerConst("tuple", types.Tuple{})
	p.registerConst("nil", types.Nil{})
	p.registerConst("map", types.Map{})
	p.registerConst("binary", types.MakeBitstring(8))
	p.registerShape("integer", p.parseInteger)
	p.registerShape("atom", p.parseAtom)
	p.registerShape("bitstring", p.parseBitstring)
	p.registerShape("fun", p.parseFun)
	p.registerShape("list", p.listParser(false, true))
	p.registerShape("maybe_improper_list", p.listParser(false, false))
	p.registerShape("nonempty_list", p.listParser(true, true))
	p.registerShape("nonempty_maybe_improper_list", p.listParser(true, false))

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerShape(name string, fn shapeParseFn) {
	p.shapeParseFns[name] = fn
}

func (p *Parser) registerConst(name string, s types.Shape) {
	p.shapeParseFns[name] = func() types.Shape { return s }
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *Parser) peekError(t token.TokenType) {
	p.errorf("column %d: expected next token to be %s, got %s (%q) instead",
		p.peekToken.Column, t, p.peekToken, p.peekToken.Literal)
}

func (p *Parser) expectEnd() {
	if !p.peekTokenIs(token.EOF) {
		p.peekError(token.EOF)
	}
}

// ParseShape parses the whole input as a single shape.
func (p *Parser) ParseShape() types.Shape {
	s := p.parseShape()
	if len(p.errors) > 0 {
		return nil
	}
	p.expectEnd()
	return s
}

// ParseCall parses the whole input as a call descriptor
// module:function(shape, ...).
func (p *Parser) ParseCall() *ast.CallExpression {
	call := &ast.CallExpression{Token: p.curToken, Arguments: []types.Shape{}}
	var ok bool
	if call.Module, ok = p.parseName(); !ok {
		return nil
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	if call.Function, ok = p.parseName(); !ok {
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		p.expectEnd()
		return call
	}
	for {
		p.nextToken()
		arg := p.parseShape()
		if len(p.errors) > 0 {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.expectEnd()
	return call
}

func (p *Parser) parseName() (string, bool) {
	if p.curTokenIs(token.IDENT) || p.curTokenIs(token.ATOM) {
		return p.curToken.Literal, true
	}
	p.errorf("column %d: expected a module or function name, got %q", p.curToken.Column, p.curToken.Literal)
	return "", false
}

// parseShape parses term {'|' term}, joining the alternatives.
func (p *Parser) parseShape() types.Shape {
	s := p.parseTerm()
	for s != nil && p.peekTokenIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		alt := p.parseTerm()
		if alt == nil {
			return nil
		}
		s = types.Join(s, alt)
	}
	return s
}

func (p *Parser) parseTerm() types.Shape {
	switch p.curToken.Type {
	case token.IDENT:
		fn, ok := p.shapeParseFns[p.curToken.Literal]
		if !ok {
			p.errorf("column %d: unknown shape %q (quote atoms: '%s')", p.curToken.Column, p.curToken.Literal, p.curToken.Literal)
			return nil
		}
		return fn()
	case token.ATOM:
		return types.MakeAtom(p.curToken.Literal)
	case token.LBRACE:
		return p.parseTuple()
	case token.LBRACK:
		if !p.expectPeek(token.RBRACK) {
			return nil
		}
		return types.Nil{}
	default:
		p.errorf("column %d: no shape starts with %s (%q)", p.curToken.Column, p.curToken, p.curToken.Literal)
		return nil
	}
}

// parseInteger parses integer, integer(N) or integer(Lo..Hi).
func (p *Parser) parseInteger() types.Shape {
	if !p.peekTokenIs(token.LPAREN) {
		return types.Integer{}
	}
	p.nextToken()
	p.nextToken()
	lo, ok := p.parseBigInt()
	if !ok {
		return nil
	}
	hi := lo
	if p.peekTokenIs(token.DOTDOT) {
		p.nextToken()
		p.nextToken()
		if hi, ok = p.parseBigInt(); !ok {
			return nil
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	s := types.MakeIntegerRange(lo, hi)
	if s.Kind() == types.NoneKind {
		p.errorf("empty integer range %s..%s", lo, hi)
		return nil
	}
	return s
}

func (p *Parser) parseBigInt() (*big.Int, bool) {
	neg := false
	if p.curTokenIs(token.SUB) {
		neg = true
		p.nextToken()
	}
	if !p.curTokenIs(token.INT) {
		p.errorf("column %d: expected an integer, got %q", p.curToken.Column, p.curToken.Literal)
		return nil, false
	}
	v, ok := new(big.Int).SetString(p.curToken.Literal, 10)
	if !ok {
		p.errorf("could not parse %q as integer", p.curToken.Literal)
		return nil, false
	}
	if neg {
		v.Neg(v)
	}
	return v, true
}

func (p *Parser) parseSmallInt() (int, bool) {
	if !p.curTokenIs(token.INT) {
		p.errorf("column %d: expected an integer, got %q", p.curToken.Column, p.curToken.Literal)
		return 0, false
	}
	v, err := strconv.Atoi(p.curToken.Literal)
	if err != nil {
		p.errorf("could not parse %q as integer: %v", p.curToken.Literal, err)
		return 0, false
	}
	return v, true
}

// parseAtom parses atom or atom(a, 'B', ...).
func (p *Parser) parseAtom() types.Shape {
	if !p.peekTokenIs(token.LPAREN) {
		return types.Atom{}
	}
	p.nextToken()
	names := []string{}
	for {
		p.nextToken()
		if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.ATOM) {
			p.errorf("column %d: expected an atom name, got %q", p.curToken.Column, p.curToken.Literal)
			return nil
		}
		names = append(names, p.curToken.Literal)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return types.MakeAtom(names...)
}

func (p *Parser) parseBitstring() types.Shape {
	unit, ok := p.parseOptionalSmallInt(1)
	if !ok {
		return nil
	}
	if unit < 1 {
		p.errorf("bitstring unit must be positive, got %d", unit)
		return nil
	}
	return types.MakeBitstring(unit)
}

func (p *Parser) parseFun() types.Shape {
	if !p.peekTokenIs(token.LPAREN) {
		return types.Fun{}
	}
	arity, ok := p.parseOptionalSmallInt(0)
	if !ok {
		return nil
	}
	return types.MakeFun(arity)
}

func (p *Parser) parseOptionalSmallInt(def int) (int, bool) {
	if !p.peekTokenIs(token.LPAREN) {
		return def, true
	}
	p.nextToken()
	p.nextToken()
	v, ok := p.parseSmallInt()
	if !ok || !p.expectPeek(token.RPAREN) {
		return 0, false
	}
	return v, true
}

func (p *Parser) listParser(nonEmpty, proper bool) shapeParseFn {
	return func() types.Shape {
		var elem types.Shape = types.Any{}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			p.nextToken()
			if elem = p.parseShape(); elem == nil {
				return nil
			}
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
		}
		if nonEmpty {
			if elem.Kind() == types.NoneKind {
				return types.None{}
			}
			return types.Cons{Elem: elem, Proper: proper}
		}
		if elem.Kind() == types.NoneKind {
			return types.Nil{}
		}
		return types.List{Elem: elem, Proper: proper}
	}
}

// parseTuple parses {e1, ..., en} with '_' for unconstrained positions and
// a trailing '...' for tuples of at least n elements.
func (p *Parser) parseTuple() types.Shape {
	t := types.Tuple{Exact: true, Elements: map[int]types.Shape{}}
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return t
	}
	for {
		p.nextToken()
		if p.curTokenIs(token.ELLIPSIS) {
			t.Exact = false
			if !p.expectPeek(token.RBRACE) {
				return nil
			}
			return t
		}

		t.Size++
		if !p.curTokenIs(token.BLANK) {
			elem := p.parseShape()
			if elem == nil {
				return nil
			}
			if elem.Kind() == types.NoneKind {
				return types.None{}
			}
			t.Elements = types.SetTupleElement(t.Size, elem, t.Elements)
		}

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return t
}

// ParseShape parses src as a single shape.
func ParseShape(src string) (types.Shape, error) {
	p := New(lexer.New(src))
	s := p.ParseShape()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse shape %q: %s", src, strings.Join(errs, "; "))
	}
	return s, nil
}

// ParseCall parses src as a call descriptor.
func ParseCall(src string) (*ast.CallExpression, error) {
	p := New(lexer.New(src))
	call := p.ParseCall()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse call %q: %s", src, strings.Join(errs, "; "))
	}
	return call, nil
}

// MustParseShape is ParseShape for inputs known to be valid, such as test
// fixtures and built-in tables.
func MustParseShape(src string) types.Shape {
	s, err := ParseShape(src)
	if err != nil {
		panic(err)
	}
	return s
}
