package expr

import "fmt"

// TokenKind classifies a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenNull
	TokenTrue
	TokenFalse
	// TokenSlot is an indexed variable such as [3].
	TokenSlot
	TokenOperator
	TokenPunct
)

var tokenKindNames = [...]string{
	TokenEOF:      "end of input",
	TokenIdent:    "identifier",
	TokenNumber:   "number",
	TokenString:   "string",
	TokenNull:     "null",
	TokenTrue:     "true",
	TokenFalse:    "false",
	TokenSlot:     "slot",
	TokenOperator: "operator",
	TokenPunct:    "punctuation",
}

// String returns a readable name for the kind.
func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// Token is a lexical unit of a formula.
type Token struct {
	Kind TokenKind
	// Text is the raw source text. For strings it excludes the delimiters.
	Text string
	// Pos is the byte offset of the token in the source.
	Pos int
	// Num holds the value of number literals and the index of slots.
	Num float64
}

// String implements fmt.Stringer.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return t.Kind.String()
	case TokenString:
		return fmt.Sprintf("string %q", t.Text)
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}

func (t Token) is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}
