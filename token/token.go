package token

import "strconv"

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	literal_beg
	// Identifiers + literals
	IDENT // integer, list, zip, ...
	ATOM  // 'foo', '++'
	INT   // 1343456
	literal_end

	operator_beg
	// Operators and delimiters
	SUB      // -
	COLON    // :
	PIPE     // |
	DOTDOT   // ..
	ELLIPSIS // ...
	BLANK    // _

	LPAREN // (
	LBRACK // [
	LBRACE // {
	COMMA  // ,

	RPAREN // )
	RBRACK // ]
	RBRACE // }
	operator_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",

	EOF: "EOF",

	IDENT: "IDENT",
	ATOM:  "ATOM",
	INT:   "INT",

	SUB:      "-",
	COLON:    ":",
	PIPE:     "|",
	DOTDOT:   "..",
	ELLIPSIS: "...",
	BLANK:    "_",

	LPAREN: "(",
	LBRACK: "[",
	LBRACE: "{",
	COMMA:  ",",

	RPAREN: ")",
	RBRACK: "]",
	RBRACE: "}",
}

type Token struct {
	Type    TokenType
	Literal string
	Column  int // 1-based offset of the first rune
}

func (t Token) IsLiteral() bool {
	return literal_beg < t.Type && t.Type < literal_end
}

func (t Token) IsOperator() bool {
	return operator_beg < t.Type && t.Type < operator_end
}

func (t Token) String() string {
	return t.Type.String()
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}
