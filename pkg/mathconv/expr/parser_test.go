package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcerrors "github.com/randalmurphal/mathconv/pkg/mathconv/errors"
	"github.com/randalmurphal/mathconv/pkg/mathconv/function"
	"github.com/randalmurphal/mathconv/pkg/mathconv/operator"
)

func TestParse_Canonical(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: "x+y*2", want: "(x + (y * 2))"},
		{src: "(x+y)*2", want: "((x + y) * 2)"},
		{src: "1-2-3", want: "((1 - 2) - 3)"},
		{src: "2^3^2", want: "(2 ^ (3 ^ 2))"},
		{src: "-2^2", want: "-(2 ^ 2)"},
		{src: "2^-1", want: "(2 ^ -1)"},
		{src: "!x && y || z", want: "((!x && y) || z)"},
		{src: "x ? y : z ? Var3 : Var4", want: "(x ? y : (z ? Var3 : Var4))"},
		{src: "x ?? y ?? 0", want: "(x ?? (y ?? 0))"},
		{src: "x ?? y ? 1 : 2", want: "((x ?? y) ? 1 : 2)"},
		{src: "x < 1 == y >= 2", want: "((x < 1) == (y >= 2))"},
		{src: "Round(x;2)", want: "Round(x; 2)"},
		{src: "Now()", want: "Now()"},
		{src: "[0] + [9]", want: "(x + Var9)"},
		{src: "`a` + \"b`c\"", want: "(`a` + \"b`c\")"},
		{src: "null ?? true", want: "(null ?? true)"},
		{src: "1.5e3 % .25", want: "(1500 % 0.25)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n, err := Parse(tt.src, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	sources := []string{
		"x+y*2",
		"Round(x; 2) > 3 ? `big` : IsNull(y; `none`)",
		"TryCatch(Throw(x); Format(`{0:N2}`; y ^ 2))",
		"-x % 3 ?? !z",
		"And(x; Or(y; z); Var3 != Var9)",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			first, err := Parse(src, nil)
			require.NoError(t, err)
			second, err := Parse(src, nil)
			require.NoError(t, err)
			assert.True(t, Equal(first, second))

			reparsed, err := Parse(first.String(), nil)
			require.NoError(t, err)
			assert.True(t, Equal(first, reparsed), "printing and parsing again keeps the structure")
			assert.Equal(t, first.String(), reparsed.String())
		})
	}
}

func TestParse_Nodes(t *testing.T) {
	n, err := Parse("Round(Var3; 2)", nil)
	require.NoError(t, err)

	call, ok := n.(*Call)
	require.True(t, ok)
	assert.Equal(t, "Round", call.Name)
	require.Len(t, call.Args, 2)
	assert.Equal(t, &Variable{Name: "Var3", Slot: 3}, call.Args[0])

	n, err = Parse("-x", nil)
	require.NoError(t, err)
	unary, ok := n.(*Unary)
	require.True(t, ok)
	assert.Equal(t, operator.Neg, unary.Op)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains string
	}{
		{name: "empty", src: "   ", contains: "empty formula"},
		{name: "trailing tokens", src: "x y", contains: "unexpected"},
		{name: "missing operand", src: "x +", contains: "end of formula"},
		{name: "unclosed paren", src: "(x + 1", contains: `expected ")"`},
		{name: "missing colon", src: "x ? 1", contains: `expected ":"`},
		{name: "comma separator", src: "Round(x, 2)", contains: "separated by ';'"},
		{name: "unknown function", src: "Foo(1)", contains: "Foo"},
		{name: "unknown variable", src: "w + 1", contains: `"w"`},
		{name: "function without parens", src: "Now + 1", contains: "parentheses"},
		{name: "arity", src: "IsNull(x)", contains: "the function IsNull does not accept 1 argument"},
		{name: "arity too many", src: "Round(1; 2; 3)", contains: "Round does not accept 3 arguments"},
		{name: "single argument TryCatch", src: "TryCatch(Throw())", contains: "TryCatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src, nil)
			require.Error(t, err)
			assert.True(t, mcerrors.IsSyntax(err), "parse failures are syntax category: %v", err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_ArityErrorDetails(t *testing.T) {
	_, err := Parse("1 + Round()", nil)
	var arityErr *mcerrors.ArityError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, "Round", arityErr.Func)
	assert.Equal(t, 0, arityErr.Count)
	assert.Equal(t, 4, arityErr.Pos)
}

func TestParse_CustomCatalogue(t *testing.T) {
	cat := function.NewCatalogue()
	cat.MustRegister(function.OneNumber("Twice", func(f float64) float64 { return f * 2 }))

	n, err := Parse("Twice(x)", cat)
	require.NoError(t, err)
	assert.Equal(t, "Twice(x)", n.String())

	_, err = Parse("Twice(x)", nil)
	var unresolved *mcerrors.UnresolvedError
	assert.ErrorAs(t, err, &unresolved)
}

func TestInspect(t *testing.T) {
	n, err := Parse("Max(x; Now()) + (y ? 1 : -z)", nil)
	require.NoError(t, err)

	var calls, vars int
	Inspect(n, func(n Node) bool {
		switch n.(type) {
		case *Call:
			calls++
		case *Variable:
			vars++
		}
		return true
	})
	assert.Equal(t, 2, calls)
	assert.Equal(t, 3, vars)
}
