package expr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	mcerrors "github.com/randalmurphal/mathconv/pkg/mathconv/errors"
)

// twoCharOperators are matched before single-character ones.
var twoCharOperators = []string{"==", "!=", "<=", ">=", "&&", "||", "??"}

const singleCharOperators = "+-*/%^<>!?:"

const punctuation = "();,"

var keywords = map[string]TokenKind{
	"null":  TokenNull,
	"true":  TokenTrue,
	"false": TokenFalse,
}

// Tokenize splits src into tokens. The final token is always TokenEOF.
func Tokenize(src string) ([]Token, error) {
	l := lexer{src: src}
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (Token, error) {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]
	switch {
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		return l.number()
	case c == '`' || c == '"':
		return l.str(c)
	case c == '[':
		return l.slot()
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		text := l.src[start:l.pos]
		if kind, ok := keywords[text]; ok {
			return Token{Kind: kind, Text: text, Pos: start}, nil
		}
		return Token{Kind: TokenIdent, Text: text, Pos: start}, nil
	}

	for _, op := range twoCharOperators {
		if strings.HasPrefix(l.src[l.pos:], op) {
			l.pos += len(op)
			return Token{Kind: TokenOperator, Text: op, Pos: start}, nil
		}
	}
	if strings.IndexByte(singleCharOperators, c) >= 0 {
		l.pos++
		return Token{Kind: TokenOperator, Text: string(c), Pos: start}, nil
	}
	if strings.IndexByte(punctuation, c) >= 0 {
		l.pos++
		return Token{Kind: TokenPunct, Text: string(c), Pos: start}, nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return Token{}, mcerrors.Syntaxf(start, "unexpected character %q", r)
}

func (l *lexer) number() (Token, error) {
	start := l.pos
	l.digits()
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		l.digits()
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		mark := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.digits()
		} else {
			// Not an exponent; leave the 'e' for the next token.
			l.pos = mark
		}
	}

	text := l.src[start:l.pos]
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, mcerrors.Syntaxf(start, "invalid number %q", text)
	}
	if l.pos < len(l.src) && isIdentStart(l.src[l.pos]) {
		return Token{}, mcerrors.Syntaxf(l.pos, "unexpected character %q after number", l.src[l.pos])
	}
	return Token{Kind: TokenNumber, Text: text, Pos: start, Num: f}, nil
}

func (l *lexer) digits() {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
}

func (l *lexer) str(delim byte) (Token, error) {
	start := l.pos
	end := strings.IndexByte(l.src[start+1:], delim)
	if end < 0 {
		return Token{}, mcerrors.Syntaxf(start, "unterminated string literal")
	}
	l.pos = start + 1 + end + 1
	return Token{Kind: TokenString, Text: l.src[start+1 : start+1+end], Pos: start}, nil
}

func (l *lexer) slot() (Token, error) {
	start := l.pos
	l.pos++
	digitsStart := l.pos
	l.digits()
	if l.pos == digitsStart || l.pos >= len(l.src) || l.src[l.pos] != ']' {
		return Token{}, mcerrors.Syntaxf(start, "expected a slot index such as [0]")
	}
	index, err := strconv.Atoi(l.src[digitsStart:l.pos])
	if err != nil || index >= Slots {
		return Token{}, mcerrors.Syntaxf(start, "slot index must be between 0 and %d", Slots-1)
	}
	l.pos++
	return Token{Kind: TokenSlot, Text: l.src[start:l.pos], Pos: start, Num: float64(index)}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
