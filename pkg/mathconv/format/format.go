// Package format expands composite format strings such as
// "{0} of {1:N2}" against a list of dynamic values.
//
// A hole is written {index[,alignment][:specifier]}. Literal braces are
// escaped by doubling them. An alignment pads to its width, on the left when
// positive and on the right when negative; its magnitude must stay below
// one million. Numeric specifiers follow the familiar
// single-letter forms (N2, F1, P0, C, E3, D4, G) or a digit pattern such
// as "0.00" or "#,##0.0"; date specifiers accept yyyy/MM/dd/HH/mm/ss style
// patterns or a Go reference layout.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// holePattern matches escaped braces or a {index,alignment:spec} hole.
var holePattern = regexp.MustCompile(`\{\{|\}\}|\{(\d+)(?:,\s*(-?\d+))?(?::([^{}]*))?\}`)

// Formatter expands composite format strings.
//
// Create with NewFormatter() and configure with Option functions.
// Formatter is safe for concurrent use after construction.
type Formatter struct {
	missingAction MissingAction
	culture       *culture.Culture
}

// NewFormatter creates a new Formatter with the given options.
//
// Default configuration:
//   - MissingAction: MissingError
//   - Culture: culture.Invariant()
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		missingAction: MissingError,
		culture:       culture.Invariant(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format expands the holes in format using args.
//
// Example:
//
//	f := NewFormatter(WithCulture(culture.MustParse("en-US")))
//	s, _ := f.Format("{0}: {1:N2}", []value.Value{value.String("total"), value.Number(1234.5)})
//	// s: "total: 1,234.50"
func (f *Formatter) Format(format string, args []value.Value) (string, error) {
	var firstErr error

	result := holePattern.ReplaceAllStringFunc(format, func(match string) string {
		switch match {
		case "{{":
			return "\x00lbrace\x00"
		case "}}":
			return "\x00rbrace\x00"
		}

		parts := holePattern.FindStringSubmatch(match)
		index, _ := strconv.Atoi(parts[1])
		if index >= len(args) {
			switch f.missingAction {
			case MissingEmpty:
				return ""
			case MissingKeep:
				return match
			default:
				if firstErr == nil {
					firstErr = &MissingArgumentError{Index: index, Count: len(args)}
				}
				return match
			}
		}

		text := f.formatValue(args[index], parts[3])
		if parts[2] != "" {
			width, err := strconv.Atoi(parts[2])
			if err != nil || width >= maxAlignment || width <= -maxAlignment {
				if firstErr == nil {
					firstErr = &AlignmentError{Hole: match}
				}
				return match
			}
			text = align(text, width)
		}
		return text
	})

	if firstErr != nil {
		return "", firstErr
	}

	// Any brace left over after expansion is unbalanced.
	stripped := holePattern.ReplaceAllString(format, "")
	if strings.ContainsAny(stripped, "{}") {
		return "", &SyntaxError{Format: format}
	}

	result = strings.ReplaceAll(result, "\x00lbrace\x00", "{")
	result = strings.ReplaceAll(result, "\x00rbrace\x00", "}")
	return result, nil
}

// formatValue renders a single argument with an optional specifier.
func (f *Formatter) formatValue(v value.Value, spec string) string {
	if spec == "" {
		return value.Display(v, f.culture)
	}
	if n, ok := v.AsNumber(); ok {
		return formatNumber(f.culture, n, spec)
	}
	if t, ok := v.AsDateTime(); ok {
		return f.culture.FormatDate(t, dateLayout(spec))
	}
	return value.Display(v, f.culture)
}

func formatNumber(c *culture.Culture, n float64, spec string) string {
	letter := spec[0]
	digits, hasDigits := -1, false
	if len(spec) > 1 {
		if d, err := strconv.Atoi(spec[1:]); err == nil {
			digits, hasDigits = d, true
		}
	}
	precision := func(def int) int {
		if hasDigits {
			return digits
		}
		return def
	}

	if len(spec) == 1 || hasDigits {
		switch letter {
		case 'N', 'n':
			return c.FormatNumber(n, precision(2))
		case 'F', 'f':
			return c.FormatFixed(n, precision(2))
		case 'P', 'p':
			return c.FormatPercent(n, precision(2))
		case 'C', 'c':
			return c.FormatCurrency(n)
		case 'E', 'e':
			s := c.FormatExponent(n, precision(6))
			if letter == 'e' {
				s = strings.ToLower(s)
			}
			return s
		case 'D', 'd':
			if n == math.Trunc(n) {
				s := strconv.FormatInt(int64(math.Abs(n)), 10)
				if pad := precision(0) - len(s); pad > 0 {
					s = strings.Repeat("0", pad) + s
				}
				if n < 0 {
					s = "-" + s
				}
				return s
			}
		case 'G', 'g', 'R', 'r':
			return c.FormatFloat(n)
		}
	}

	if isDigitPattern(spec) {
		return formatPattern(c, n, spec)
	}
	return c.FormatFloat(n)
}

// isDigitPattern reports whether spec is a custom pattern like "#,##0.00".
func isDigitPattern(spec string) bool {
	return strings.Trim(spec, "0#,.") == "" && strings.ContainsAny(spec, "0#")
}

func formatPattern(c *culture.Culture, n float64, spec string) string {
	fraction := 0
	if dot := strings.IndexByte(spec, '.'); dot >= 0 {
		fraction = len(spec) - dot - 1
	}
	if strings.Contains(spec, ",") {
		return c.FormatNumber(n, fraction)
	}
	return c.FormatFixed(n, fraction)
}

// dateTokens maps date pattern tokens to Go reference layout pieces.
// Longer tokens come first so they win over their prefixes.
var dateTokens = []struct {
	token  string
	layout string
}{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"dd", "02"},
	{"d", "2"},
	{"HH", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"m", "4"},
	{"ss", "05"},
	{"s", "5"},
	{"fff", "000"},
	{"tt", "PM"},
}

// standardDates maps single-letter date specifiers to layouts.
var standardDates = map[string]string{
	"d": "1/2/2006",
	"D": "Monday, January 2, 2006",
	"t": "3:04 PM",
	"T": "3:04:05 PM",
	"g": "1/2/2006 3:04 PM",
	"G": "1/2/2006 3:04:05 PM",
	"s": "2006-01-02T15:04:05",
	"o": "2006-01-02T15:04:05.0000000Z07:00",
}

// dateLayout converts a date specifier into a Go reference layout. A
// specifier that already contains a Go reference year is used verbatim.
func dateLayout(spec string) string {
	if layout, ok := standardDates[spec]; ok {
		return layout
	}
	if strings.Contains(spec, "2006") {
		return spec
	}

	var b strings.Builder
	for i := 0; i < len(spec); {
		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(spec[i:], tok.token) {
				b.WriteString(tok.layout)
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(spec[i])
			i++
		}
	}
	return b.String()
}

func align(s string, width int) string {
	n := len([]rune(s))
	switch {
	case width > n:
		return strings.Repeat(" ", width-n) + s
	case -width > n:
		return s + strings.Repeat(" ", -width-n)
	}
	return s
}

// MissingArgumentError is returned when MissingError is set and a hole
// refers to an argument that was not supplied.
type MissingArgumentError struct {
	Index int
	Count int
}

// Error implements the error interface.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("format index %d is out of range (%d argument%s supplied)",
		e.Index, e.Count, map[bool]string{true: "", false: "s"}[e.Count == 1])
}

// maxAlignment bounds the absolute alignment of a hole.
const maxAlignment = 1_000_000

// AlignmentError is returned for a hole whose alignment is out of range.
type AlignmentError struct {
	Hole string
}

// Error implements the error interface.
func (e *AlignmentError) Error() string {
	return fmt.Sprintf("format item %s has an alignment outside (-%d, %d)", e.Hole, maxAlignment, maxAlignment)
}

// SyntaxError is returned for a format string with unbalanced braces.
type SyntaxError struct {
	Format string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("format string %q has unbalanced braces", e.Format)
}

// defaultFormatter is the package-level formatter with default settings.
var defaultFormatter = NewFormatter()

// Format expands format with args using the invariant culture.
//
// Example:
//
//	s, _ := format.Format("{0}-{1}", []value.Value{value.Number(1), value.String("a")})
//	// s: "1-a"
func Format(format string, args []value.Value) (string, error) {
	return defaultFormatter.Format(format, args)
}
