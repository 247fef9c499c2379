package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// TestFormat_Holes tests index, alignment and specifier expansion.
func TestFormat_Holes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		args     []value.Value
		expected string
	}{
		{
			name:     "single hole",
			input:    "Hello {0}",
			args:     []value.Value{value.String("World")},
			expected: "Hello World",
		},
		{
			name:     "reordered holes",
			input:    "{1}-{0}",
			args:     []value.Value{value.Number(1), value.Number(2)},
			expected: "2-1",
		},
		{
			name:     "repeated hole",
			input:    "{0}{0}",
			args:     []value.Value{value.String("ab")},
			expected: "abab",
		},
		{
			name:     "null renders empty",
			input:    "[{0}]",
			args:     []value.Value{value.Null()},
			expected: "[]",
		},
		{
			name:     "bool",
			input:    "{0}",
			args:     []value.Value{value.Bool(true)},
			expected: "True",
		},
		{
			name:     "fixed",
			input:    "{0:F2}",
			args:     []value.Value{value.Number(3.14159)},
			expected: "3.14",
		},
		{
			name:     "fixed default precision",
			input:    "{0:F}",
			args:     []value.Value{value.Number(2)},
			expected: "2.00",
		},
		{
			name:     "integer padding",
			input:    "{0:D4}",
			args:     []value.Value{value.Number(42)},
			expected: "0042",
		},
		{
			name:     "negative integer padding",
			input:    "{0:D3}",
			args:     []value.Value{value.Number(-7)},
			expected: "-007",
		},
		{
			name:     "digit pattern",
			input:    "{0:0.0}",
			args:     []value.Value{value.Number(2.26)},
			expected: "2.3",
		},
		{
			name:     "exponent",
			input:    "{0:E2}",
			args:     []value.Value{value.Number(12345)},
			expected: "1.23E+04",
		},
		{
			name:     "right aligned",
			input:    "[{0,5}]",
			args:     []value.Value{value.String("ab")},
			expected: "[   ab]",
		},
		{
			name:     "left aligned",
			input:    "[{0,-5}]",
			args:     []value.Value{value.String("ab")},
			expected: "[ab   ]",
		},
		{
			name:     "alignment with specifier",
			input:    "[{0,6:F1}]",
			args:     []value.Value{value.Number(2)},
			expected: "[   2.0]",
		},
		{
			name:     "specifier ignored for strings",
			input:    "{0:N2}",
			args:     []value.Value{value.String("x")},
			expected: "x",
		},
		{
			name:     "escaped braces",
			input:    "{{{0}}}",
			args:     []value.Value{value.Number(5)},
			expected: "{5}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.input, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormat_Culture(t *testing.T) {
	us := NewFormatter(WithCulture(culture.MustParse("en-US")))
	got, err := us.Format("{0:N2}", []value.Value{value.Number(1234.5)})
	require.NoError(t, err)
	assert.Equal(t, "1,234.50", got)

	de := NewFormatter(WithCulture(culture.MustParse("de-DE")))
	got, err = de.Format("{0:N2} | {1}", []value.Value{value.Number(1234.5), value.Number(0.5)})
	require.NoError(t, err)
	assert.Equal(t, "1.234,50 | 0,5", got)
}

func TestFormat_Dates(t *testing.T) {
	when := []value.Value{value.DateTime(time.Date(2024, 3, 7, 14, 5, 9, 0, time.UTC))}

	tests := []struct {
		spec     string
		expected string
	}{
		{spec: "yyyy-MM-dd", expected: "2024-03-07"},
		{spec: "dd/MM/yy HH:mm:ss", expected: "07/03/24 14:05:09"},
		{spec: "MMMM d", expected: "March 7"},
		{spec: "s", expected: "2024-03-07T14:05:09"},
		{spec: "2006/01/02", expected: "2024/03/07"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Format("{0:"+tt.spec+"}", when)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormat_MissingActions(t *testing.T) {
	args := []value.Value{value.String("a")}

	_, err := Format("{0} {1}", args)
	var missing *MissingArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 1, missing.Index)
	assert.Equal(t, 1, missing.Count)

	got, err := NewFormatter(WithMissingAction(MissingEmpty)).Format("{0} {1}", args)
	require.NoError(t, err)
	assert.Equal(t, "a ", got)

	got, err = NewFormatter(WithMissingAction(MissingKeep)).Format("{0} {1:F2}", args)
	require.NoError(t, err)
	assert.Equal(t, "a {1:F2}", got)
}

func TestFormat_AlignmentOutOfRange(t *testing.T) {
	args := []value.Value{value.Number(1)}

	for _, input := range []string{"{0,99999999999999999999}", "{0,1000000}", "{0,-1000000}"} {
		t.Run(input, func(t *testing.T) {
			_, err := Format(input, args)
			var alignment *AlignmentError
			require.ErrorAs(t, err, &alignment)
			assert.Equal(t, input, alignment.Hole)
		})
	}

	got, err := Format("{0,5}|{0,-3}|", args)
	require.NoError(t, err)
	assert.Equal(t, "    1|1  |", got)
}

func TestFormat_UnbalancedBraces(t *testing.T) {
	for _, input := range []string{"{0", "0}", "{x}", "a { b"} {
		t.Run(input, func(t *testing.T) {
			_, err := Format(input, []value.Value{value.Number(1)})
			var syntax *SyntaxError
			assert.ErrorAs(t, err, &syntax)
		})
	}
}

func TestFormat_NoHoles(t *testing.T) {
	got, err := Format("plain text", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text", got)
}
