// Package display turns the calculator's raw display text into what the
// widget shows: locale grouping, exponent fallback for long integers and a
// font-size tier.
package display

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"calculadora/internal/numeric"
)

// MaxIntegerDigits is the longest integer part shown in plain notation.
const MaxIntegerDigits = 9

// infinity is the glyph CLDR number formats use for an infinite value.
const infinity = "∞"

// exponentDigits is the number of fraction digits in exponent notation.
const exponentDigits = 4

// Locale describes how grouped numbers are written.
type Locale struct {
	// Tag selects the CLDR grouping rules used for the integer part.
	Tag language.Tag
	// Decimal separates the integer part from the fraction digits.
	Decimal string
}

// BrazilianPortuguese is the locale the calculator is shipped with:
// "1.234.567" and "1.234,5".
var BrazilianPortuguese = Locale{Tag: language.BrazilianPortuguese, Decimal: ","}

// AmericanEnglish groups with commas and uses a point as decimal separator.
var AmericanEnglish = Locale{Tag: language.AmericanEnglish, Decimal: "."}

// Formatter formats raw display values for a single locale. It is safe for
// concurrent use.
type Formatter struct {
	locale  Locale
	printer *message.Printer
}

// NewFormatter returns a Formatter for the given locale.
func NewFormatter(locale Locale) *Formatter {
	return &Formatter{
		locale:  locale,
		printer: message.NewPrinter(locale.Tag),
	}
}

// Locale returns the formatter's locale.
func (f *Formatter) Locale() Locale {
	return f.locale
}

// Format renders a raw display value. Text that does not parse as a number,
// and values still being typed ("3."), are returned unchanged. Infinity is
// shown as the locale's "∞".
func (f *Formatter) Format(value string) string {
	num := numeric.Parse(value)
	if math.IsNaN(num) {
		return value
	}
	if strings.HasSuffix(value, ".") {
		return value
	}

	intPart, fracPart, hasFrac := strings.Cut(value, ".")
	if len(intPart) > MaxIntegerDigits {
		return numeric.Exponential(num, exponentDigits)
	}

	if !hasFrac {
		return f.formatWhole(value, num)
	}

	grouped, ok := f.groupInteger(intPart)
	if !ok {
		return value
	}
	return grouped + f.locale.Decimal + fracPart
}

// formatWhole formats values without a decimal point. These are integers in
// the common case, but exponent-encoded values ("5e-7", "1e+21") land here too
// and are expanded with at most three fraction digits.
func (f *Formatter) formatWhole(value string, num float64) string {
	sign := ""
	if strings.HasPrefix(value, "-") {
		sign = "-"
	}
	abs := math.Abs(num)

	if math.IsInf(abs, 0) {
		return sign + infinity
	}
	if abs == math.Trunc(abs) && abs < 1e15 {
		return sign + f.printer.Sprintf("%d", int64(abs))
	}
	return sign + f.printer.Sprint(number.Decimal(abs, number.MaxFractionDigits(3)))
}

// groupInteger applies locale grouping to the digits of an integer part,
// keeping a leading minus sign (so "-0" stays "-0").
func (f *Formatter) groupInteger(intPart string) (string, bool) {
	sign, digits := "", intPart
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return "", false
	}
	return sign + f.printer.Sprintf("%d", n), true
}
