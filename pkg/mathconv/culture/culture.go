// Package culture provides the culture/format specifier used by mathconv for
// locale-sensitive conversions between numbers, dates and text.
//
// A Culture never affects how formulas are lexed: numeric literals always use
// '.' as decimal point. It only affects runtime coercion of strings to numbers
// and the textual form of values produced by concatenation or Format.
package culture

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Culture describes how numbers and dates are parsed and rendered.
// A Culture is immutable and safe for concurrent use.
type Culture struct {
	name    string
	tag     language.Tag
	decimal string
	group   string
	printer *message.Printer
	dates   monday.Locale
}

var invariant = newCulture("Invariant", language.Und)

// numberPattern matches a normalized number: optional sign, digits with an
// optional '.' fraction, optional exponent.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Invariant returns the culture-independent culture ('.' decimal point, ','
// group separator, English date names).
func Invariant() *Culture {
	return invariant
}

// Parse resolves a BCP 47 tag such as "de-DE" into a Culture.
// The empty string and "invariant" (any case) resolve to Invariant.
func Parse(name string) (*Culture, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "invariant") {
		return invariant, nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("parse culture %q: %w", name, err)
	}
	return newCulture(tag.String(), tag), nil
}

// MustParse is like Parse but panics on an invalid tag.
func MustParse(name string) *Culture {
	c, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return c
}

func newCulture(name string, tag language.Tag) *Culture {
	p := message.NewPrinter(tag)
	decimal, group := separators(p)
	return &Culture{
		name:    name,
		tag:     tag,
		decimal: decimal,
		group:   group,
		printer: p,
		dates:   dateLocale(tag),
	}
}

// separators derives the decimal and group separators of a locale by
// rendering a sample number and reading the characters between its digits.
func separators(p *message.Printer) (decimal, group string) {
	sample := p.Sprint(number.Decimal(1234.5,
		number.MinFractionDigits(1), number.MaxFractionDigits(1)))

	decimal, group = ".", ","
	four := strings.LastIndex(sample, "4")
	five := strings.LastIndex(sample, "5")
	if four >= 0 && five > four+1 {
		decimal = sample[four+1 : five]
	}
	one := strings.Index(sample, "1")
	two := strings.Index(sample, "2")
	if one >= 0 && two > one+1 {
		group = sample[one+1 : two]
	} else if one >= 0 && two == one+1 {
		group = ""
	}
	return decimal, group
}

// Name returns the culture's display name ("Invariant" or a BCP 47 tag).
func (c *Culture) Name() string {
	return c.name
}

// Tag returns the language tag of the culture.
func (c *Culture) Tag() language.Tag {
	return c.tag
}

// DecimalSeparator returns the culture's decimal separator.
func (c *Culture) DecimalSeparator() string {
	return c.decimal
}

// GroupSeparator returns the culture's digit group separator.
func (c *Culture) GroupSeparator() string {
	return c.group
}

// String implements fmt.Stringer.
func (c *Culture) String() string {
	return c.name
}

// ParseFloat parses s as a number written in this culture. Group separators
// are ignored; the culture's decimal separator marks the fraction. It reports
// false for malformed text instead of returning an error.
func (c *Culture) ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if c.group != "" {
		s = strings.ReplaceAll(s, c.group, "")
		if isSpace(c.group) {
			s = strings.Map(func(r rune) rune {
				if r == ' ' || r == '\u00a0' || r == '\u202f' {
					return -1
				}
				return r
			}, s)
		}
	}
	if c.decimal != "." {
		s = strings.ReplaceAll(s, c.decimal, ".")
	}
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isSpace(s string) bool {
	return strings.Trim(s, " \u00a0\u202f") == ""
}

// FormatFloat renders f with the shortest representation that round-trips,
// using the culture's decimal separator and no grouping.
func (c *Culture) FormatFloat(f float64) string {
	var s string
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-5 && abs < 1e15) {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'E', -1, 64)
	}
	return c.localize(s)
}

// FormatFixed renders f with exactly digits fraction digits and no grouping.
func (c *Culture) FormatFixed(f float64, digits int) string {
	return c.localize(strconv.FormatFloat(f, 'f', clampDigits(digits), 64))
}

// FormatExponent renders f in scientific notation with digits fraction digits.
func (c *Culture) FormatExponent(f float64, digits int) string {
	return c.localize(strconv.FormatFloat(f, 'E', clampDigits(digits), 64))
}

// FormatNumber renders f grouped, with exactly digits fraction digits.
func (c *Culture) FormatNumber(f float64, digits int) string {
	d := clampDigits(digits)
	return c.printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(d), number.MaxFractionDigits(d)))
}

// FormatPercent renders f as a percentage (0.5 -> 50%) with digits fraction digits.
func (c *Culture) FormatPercent(f float64, digits int) string {
	d := clampDigits(digits)
	return c.printer.Sprint(number.Percent(f,
		number.MinFractionDigits(d), number.MaxFractionDigits(d)))
}

// FormatCurrency renders f as an amount of the culture's regional currency.
// The invariant culture uses the generic currency symbol.
func (c *Culture) FormatCurrency(f float64) string {
	unit, conf := currency.FromTag(c.tag)
	if conf == language.No || c == invariant {
		return "¤" + c.FormatNumber(f, 2)
	}
	return c.printer.Sprint(currency.Symbol(unit.Amount(f)))
}

// FormatDate renders t using a Go reference layout with month and day names
// in the culture's language.
func (c *Culture) FormatDate(t time.Time, layout string) string {
	return monday.Format(t, layout, c.dates)
}

func (c *Culture) localize(s string) string {
	if c.decimal == "." {
		return s
	}
	return strings.Replace(s, ".", c.decimal, 1)
}

func clampDigits(d int) int {
	if d < 0 {
		return 0
	}
	if d > 15 {
		return 15
	}
	return d
}

// dateLocale maps a language tag to the closest monday locale.
func dateLocale(tag language.Tag) monday.Locale {
	base, _ := tag.Base()
	region, _ := tag.Region()
	key := strings.ToLower(base.String() + "_" + region.String())

	locales := map[string]monday.Locale{
		"en_us": monday.LocaleEnUS,
		"en_gb": monday.LocaleEnGB,
		"de_de": monday.LocaleDeDE,
		"fr_fr": monday.LocaleFrFR,
		"es_es": monday.LocaleEsES,
		"it_it": monday.LocaleItIT,
		"pt_br": monday.LocalePtBR,
		"nl_nl": monday.LocaleNlNL,
		"ru_ru": monday.LocaleRuRU,
		"ja_jp": monday.LocaleJaJP,
		"zh_cn": monday.LocaleZhCN,
	}
	if l, ok := locales[key]; ok {
		return l
	}

	byBase := map[string]monday.Locale{
		"en": monday.LocaleEnUS,
		"de": monday.LocaleDeDE,
		"fr": monday.LocaleFrFR,
		"es": monday.LocaleEsES,
		"it": monday.LocaleItIT,
		"pt": monday.LocalePtBR,
		"nl": monday.LocaleNlNL,
		"ru": monday.LocaleRuRU,
		"ja": monday.LocaleJaJP,
		"zh": monday.LocaleZhCN,
	}
	if l, ok := byBase[strings.ToLower(base.String())]; ok {
		return l
	}
	return monday.LocaleEnUS
}
