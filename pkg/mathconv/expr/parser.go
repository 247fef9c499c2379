package expr

import (
	"fmt"

	mcerrors "github.com/randalmurphal/mathconv/pkg/mathconv/errors"
	"github.com/randalmurphal/mathconv/pkg/mathconv/function"
	"github.com/randalmurphal/mathconv/pkg/mathconv/operator"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// Slots is the number of addressable inputs.
const Slots = 10

// variables maps variable names to input slots.
var variables = map[string]int{
	"x": 0, "y": 1, "z": 2,
	"Var3": 3, "Var4": 4, "Var5": 5, "Var6": 6, "Var7": 7, "Var8": 8, "Var9": 9,
}

// SlotName returns the canonical variable name for slot i.
func SlotName(i int) string {
	switch i {
	case 0:
		return "x"
	case 1:
		return "y"
	case 2:
		return "z"
	}
	return fmt.Sprintf("Var%d", i)
}

// Parse parses src, resolving function names against cat. A nil cat means
// the built-in functions.
func Parse(src string, cat *function.Catalogue) (Node, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		cat = function.Builtins()
	}
	p := &parser{tokens: tokens, cat: cat}
	if p.peek().Kind == TokenEOF {
		return nil, mcerrors.Syntaxf(0, "empty formula")
	}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, mcerrors.Syntaxf(tok.Pos, "unexpected %s", tok)
	}
	return root, nil
}

type parser struct {
	tokens []Token
	pos    int
	cat    *function.Catalogue
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

// accept consumes the next token when it is the operator or punctuation text.
func (p *parser) accept(text string) bool {
	tok := p.peek()
	if (tok.Kind == TokenOperator || tok.Kind == TokenPunct) && tok.Text == text {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(text string) error {
	if p.accept(text) {
		return nil
	}
	tok := p.peek()
	return mcerrors.Syntaxf(tok.Pos, "expected %q but found %s", text, tok)
}

func (p *parser) expr() (Node, error) {
	return p.ternary()
}

func (p *parser) ternary() (Node, error) {
	cond, err := p.coalesce()
	if err != nil {
		return nil, err
	}
	if !p.accept("?") {
		return cond, nil
	}
	then, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	els, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return &Conditional{Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) coalesce() (Node, error) {
	left, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	if !p.accept("??") {
		return left, nil
	}
	right, err := p.coalesce()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: operator.Coalesce, Left: left, Right: right}, nil
}

// binaryLevel parses a left-associative chain of the given operators.
func (p *parser) binaryLevel(next func() (Node, error), symbols ...string) (Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		matched := ""
		if tok.Kind == TokenOperator {
			for _, s := range symbols {
				if tok.Text == s {
					matched = s
					break
				}
			}
		}
		if matched == "" {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		op, _ := operator.LookupBinary(matched)
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) logicOr() (Node, error) {
	return p.binaryLevel(p.logicAnd, "||")
}

func (p *parser) logicAnd() (Node, error) {
	return p.binaryLevel(p.equality, "&&")
}

func (p *parser) equality() (Node, error) {
	return p.binaryLevel(p.relational, "==", "!=")
}

func (p *parser) relational() (Node, error) {
	return p.binaryLevel(p.additive, "<", "<=", ">", ">=")
}

func (p *parser) additive() (Node, error) {
	return p.binaryLevel(p.multiplicative, "+", "-")
}

func (p *parser) multiplicative() (Node, error) {
	return p.binaryLevel(p.unary, "*", "/", "%")
}

func (p *parser) unary() (Node, error) {
	tok := p.peek()
	if tok.Kind == TokenOperator {
		if op, ok := operator.LookupUnary(tok.Text); ok {
			p.advance()
			operand, err := p.unary()
			if err != nil {
				return nil, err
			}
			return &Unary{Op: op, Operand: operand}, nil
		}
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.accept("^") {
		return base, nil
	}
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: operator.Pow, Left: base, Right: exp}, nil
}

func (p *parser) primary() (Node, error) {
	tok := p.advance()
	switch tok.Kind {
	case TokenNumber:
		return &Literal{Value: value.Number(tok.Num)}, nil
	case TokenString:
		return &Literal{Value: value.String(tok.Text)}, nil
	case TokenNull:
		return &Literal{Value: value.Null()}, nil
	case TokenTrue:
		return &Literal{Value: value.Bool(true)}, nil
	case TokenFalse:
		return &Literal{Value: value.Bool(false)}, nil
	case TokenSlot:
		slot := int(tok.Num)
		return &Variable{Name: SlotName(slot), Slot: slot}, nil
	case TokenIdent:
		return p.identifier(tok)
	case TokenPunct:
		if tok.Text == "(" {
			inner, err := p.expr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
	case TokenEOF:
		return nil, mcerrors.Syntaxf(tok.Pos, "unexpected end of formula")
	}
	return nil, mcerrors.Syntaxf(tok.Pos, "unexpected %s", tok)
}

func (p *parser) identifier(tok Token) (Node, error) {
	if p.accept("(") {
		return p.call(tok)
	}
	if slot, ok := variables[tok.Text]; ok {
		return &Variable{Name: tok.Text, Slot: slot}, nil
	}
	if p.cat.Has(tok.Text) {
		return nil, mcerrors.Syntaxf(tok.Pos, "function %s must be called with parentheses", tok.Text)
	}
	return nil, &mcerrors.UnresolvedError{Name: tok.Text, Pos: tok.Pos}
}

func (p *parser) call(name Token) (Node, error) {
	desc, ok := p.cat.Lookup(name.Text)
	if !ok {
		return nil, &mcerrors.UnresolvedError{Name: name.Text, Pos: name.Pos}
	}

	var args []Node
	if !p.accept(")") {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.accept(";") {
				continue
			}
			if p.accept(")") {
				break
			}
			tok := p.peek()
			if tok.is(TokenPunct, ",") {
				return nil, mcerrors.Syntaxf(tok.Pos, "function arguments are separated by ';', not ','")
			}
			return nil, mcerrors.Syntaxf(tok.Pos, "expected ';' or ')' but found %s", tok)
		}
	}

	if !desc.Accepts(len(args)) {
		return nil, &mcerrors.ArityError{Func: name.Text, Count: len(args), Pos: name.Pos}
	}
	return &Call{Name: name.Text, Func: desc, Args: args}, nil
}
