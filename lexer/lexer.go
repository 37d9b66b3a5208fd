package lexer

import "github.com/thiremani/beamtypes/token"

type Lexer struct {
	input        []rune
	position     int  // current position in input (points to current rune)
	readPosition int  // current reading position in input (after current rune)
	curr         rune // current rune under examination
}

func New(input string) *Lexer {
	l := &Lexer{input: []rune(input)}
	l.readRune()
	return l
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()
	column := l.position + 1

	switch l.curr {
	case '-':
		tok = newToken(token.SUB, l.curr)
	case ':':
		tok = newToken(token.COLON, l.curr)
	case '|':
		tok = newToken(token.PIPE, l.curr)
	case '.':
		switch {
		case l.peekRune() == '.' && l.peekRuneAt(2) == '.':
			l.readRune()
			l.readRune()
			tok = token.Token{Type: token.ELLIPSIS, Literal: "..."}
		case l.peekRune() == '.':
			l.readRune()
			tok = token.Token{Type: token.DOTDOT, Literal: ".."}
		default:
			tok = newToken(token.ILLEGAL, l.curr)
		}
	case ',':
		tok = newToken(token.COMMA, l.curr)
	case '(':
		tok = newToken(token.LPAREN, l.curr)
	case ')':
		tok = newToken(token.RPAREN, l.curr)
	case '[':
		tok = newToken(token.LBRACK, l.curr)
	case ']':
		tok = newToken(token.RBRACK, l.curr)
	case '{':
		tok = newToken(token.LBRACE, l.curr)
	case '}':
		tok = newToken(token.RBRACE, l.curr)
	case '\'':
		tok = l.readQuotedAtom()
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
	default:
		if l.curr == '_' && !isLetter(l.peekRune()) && !isDigit(l.peekRune()) {
			tok = newToken(token.BLANK, l.curr)
		} else if isLetter(l.curr) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.IDENT
			tok.Column = column
			return tok
		} else if isDigit(l.curr) {
			tok.Type = token.INT
			tok.Literal = l.readNumber()
			tok.Column = column
			return tok
		} else {
			tok = newToken(token.ILLEGAL, l.curr)
		}
	}

	tok.Column = column
	l.readRune()
	return tok
}

// readQuotedAtom reads 'name' and leaves curr on the closing quote.
// An unterminated atom is ILLEGAL.
func (l *Lexer) readQuotedAtom() token.Token {
	start := l.readPosition
	for {
		l.readRune()
		if l.curr == 0 {
			return token.Token{Type: token.ILLEGAL, Literal: string(l.input[start-1:])}
		}
		if l.curr == '\'' {
			return token.Token{Type: token.ATOM, Literal: string(l.input[start:l.position])}
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.curr == ' ' || l.curr == '\t' || l.curr == '\n' || l.curr == '\r' {
		l.readRune()
	}
}

func (l *Lexer) readRune() {
	if l.readPosition >= len(l.input) {
		l.curr = 0
	} else {
		l.curr = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekRune() rune {
	return l.peekRuneAt(1)
}

// peekRuneAt looks n runes past the current one.
func (l *Lexer) peekRuneAt(n int) rune {
	pos := l.position + n
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.curr) || isDigit(l.curr) {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.curr) {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func newToken(tokenType token.TokenType, curr rune) token.Token {
	return token.Token{Type: tokenType, Literal: string(curr)}
}
