// Package numeric converts between the calculator's text-encoded numbers and
// float64 values.
//
// The text form follows the conventions of the browser widget the calculator
// was modelled on: parsing accepts the longest numeric prefix of a string and
// encoding produces the shortest text that parses back to the same value.
package numeric

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ResultPrecision is the number of decimal places results are rounded to
// before being re-encoded.
const ResultPrecision = 10

var prefixPattern = regexp.MustCompile(`^[+-]?(?:Infinity|[0-9]+\.?[0-9]*(?:[eE][+-]?[0-9]+)?|\.[0-9]+(?:[eE][+-]?[0-9]+)?)`)

// Parse returns the value of the longest numeric prefix of s, ignoring
// leading whitespace. It returns NaN when s has no numeric prefix.
//
//	Parse("3.")        == 3
//	Parse("-0.25")     == -0.25
//	Parse("Infinity5") == +Inf
//	Parse("abc")       is NaN
func Parse(s string) float64 {
	m := prefixPattern.FindString(strings.TrimLeft(s, " \t\n\r"))
	if m == "" {
		return math.NaN()
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// Valid reports whether s has a numeric prefix.
func Valid(s string) bool {
	return !math.IsNaN(Parse(s))
}

// Format encodes f as the shortest text that round-trips through Parse.
// Magnitudes in [1e-6, 1e21) use plain decimal notation, everything else uses
// an exponent without zero padding ("1e+21", "5e-7"). Negative zero encodes
// as "0" and non-finite values as "NaN", "Infinity" or "-Infinity".
func Format(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Round rounds f to ResultPrecision decimal places, dropping the binary noise
// that accumulates in results such as 0.1+0.2. Exact ties round away from
// zero, so 1/2048 becomes 0.0004882813. Non-finite values are returned
// unchanged.
func Round(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}

	s := strconv.FormatFloat(math.Abs(f), 'f', exactDigits, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	digits := roundHalfUp(intPart+frac[:ResultPrecision], frac[ResultPrecision])
	cut := len(digits) - ResultPrecision

	v, err := strconv.ParseFloat(digits[:cut]+"."+digits[cut:], 64)
	if err != nil {
		return f
	}
	if f < 0 {
		return -v
	}
	return v
}

// Exponential renders f in exponent notation with exactly digits fraction
// digits, e.g. Exponential(1234567890, 4) == "1.2346e+9". Exact ties round
// away from zero.
func Exponential(f float64, digits int) string {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return Format(f)
	case digits < 0:
		digits = 0
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(math.Abs(f), 'e', exactDigits, 64), "e")
	all := mant[:1] + mant[2:]
	kept := roundHalfUp(all[:digits+1], all[digits+1])

	e, err := strconv.Atoi(exp)
	if err != nil {
		return Format(f)
	}
	if len(kept) > digits+1 {
		// 9.99995 carried into 10.0000
		kept = kept[:digits+1]
		e++
	}

	var b strings.Builder
	if f < 0 {
		b.WriteByte('-')
	}
	b.WriteString(kept[:1])
	if digits > 0 {
		b.WriteByte('.')
		b.WriteString(kept[1:])
	}
	b.WriteByte('e')
	if e < 0 {
		b.WriteByte('-')
		e = -e
	} else {
		b.WriteByte('+')
	}
	b.WriteString(strconv.Itoa(e))
	return b.String()
}

// exactDigits is more than the longest exact decimal expansion of a float64,
// so strconv only pads with zeros and never rounds at this precision.
const exactDigits = 1100

// roundHalfUp increments the decimal digit string kept when the digit that
// follows it is 5 or more. The result is one digit longer on carry out.
func roundHalfUp(kept string, next byte) string {
	if next < '5' {
		return kept
	}

	b := []byte(kept)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}

// trimExponent strips the zero padding strconv puts on exponents ("e-07").
func trimExponent(s string) string {
	mant, exp, ok := strings.Cut(s, "e")
	if !ok || exp == "" {
		return s
	}

	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
