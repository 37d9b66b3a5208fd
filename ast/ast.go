package ast

import (
	"strings"

	"github.com/thiremani/beamtypes/token"
	"github.com/thiremani/beamtypes/types"
)

// The base Node interface
type Node interface {
	Tok() token.Token
	String() string
}

// CallExpression is a call descriptor: a module, a function and the
// shapes of the arguments at one call site.
type CallExpression struct {
	Token     token.Token // the module token
	Module    string
	Function  string
	Arguments []types.Shape
}

func (ce *CallExpression) Tok() token.Token { return ce.Token }

func (ce *CallExpression) Arity() int { return len(ce.Arguments) }

func (ce *CallExpression) String() string {
	var out strings.Builder
	out.WriteString(types.QuoteAtom(ce.Module))
	out.WriteString(":")
	out.WriteString(types.QuoteAtom(ce.Function))
	out.WriteString("(")
	for i, a := range ce.Arguments {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(a.String())
	}
	out.WriteString(")")
	return out.String()
}
