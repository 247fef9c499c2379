package expr

import (
	"strconv"
	"strings"

	"github.com/randalmurphal/mathconv/pkg/mathconv/function"
	"github.com/randalmurphal/mathconv/pkg/mathconv/operator"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// Node is a node of a parsed formula. Nodes are immutable once built and
// may be evaluated concurrently.
type Node interface {
	// Eval evaluates the node against env.
	Eval(env *Env) (value.Value, error)
	// String prints the node in canonical form. Parsing the output yields
	// a structurally identical tree.
	String() string
}

// Literal is a constant.
type Literal struct {
	Value value.Value
}

// Variable reads an input slot.
type Variable struct {
	Name string
	Slot int
}

// Unary applies a prefix operator.
type Unary struct {
	Op      operator.Op
	Operand Node
}

// Binary applies an infix operator.
type Binary struct {
	Op          operator.Op
	Left, Right Node
}

// Conditional is cond ? then : else.
type Conditional struct {
	Cond, Then, Else Node
}

// Call invokes a function resolved at parse time.
type Call struct {
	Name string
	Func *function.Descriptor
	Args []Node
}

func (n *Literal) String() string {
	switch n.Value.Kind() {
	case value.KindNull:
		return "null"
	case value.KindBool:
		b, _ := n.Value.AsBool()
		return strconv.FormatBool(b)
	case value.KindNumber:
		f, _ := n.Value.AsNumber()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case value.KindString:
		s, _ := n.Value.AsString()
		if strings.Contains(s, "`") {
			return `"` + s + `"`
		}
		return "`" + s + "`"
	}
	return n.Value.String()
}

func (n *Variable) String() string {
	return n.Name
}

func (n *Unary) String() string {
	return n.Op.String() + n.Operand.String()
}

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

func (n *Conditional) String() string {
	return "(" + n.Cond.String() + " ? " + n.Then.String() + " : " + n.Else.String() + ")"
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return n.Name + "(" + strings.Join(args, "; ") + ")"
}

// Inspect traverses the tree rooted at n in depth-first order, calling fn
// for each node. Children are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Unary:
		Inspect(n.Operand, fn)
	case *Binary:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *Conditional:
		Inspect(n.Cond, fn)
		Inspect(n.Then, fn)
		Inspect(n.Else, fn)
	case *Call:
		for _, arg := range n.Args {
			Inspect(arg, fn)
		}
	}
}

// Equal reports whether two trees have the same structure and literals.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Literal:
		b, ok := b.(*Literal)
		return ok && value.Equal(a.Value, b.Value)
	case *Variable:
		b, ok := b.(*Variable)
		return ok && a.Slot == b.Slot
	case *Unary:
		b, ok := b.(*Unary)
		return ok && a.Op == b.Op && Equal(a.Operand, b.Operand)
	case *Binary:
		b, ok := b.(*Binary)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Conditional:
		b, ok := b.(*Conditional)
		return ok && Equal(a.Cond, b.Cond) && Equal(a.Then, b.Then) && Equal(a.Else, b.Else)
	case *Call:
		b, ok := b.(*Call)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}
