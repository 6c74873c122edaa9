// pattern: Functional Core

package ratio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FromInt64 returns v/1.
func FromInt64(v int64) Rational { return Rational{num: v} }

// FromInt returns v/1.
func FromInt(v int) Rational { return FromInt64(int64(v)) }

// FromUint64 returns v/1, or ErrIntegerOverflow when v exceeds math.MaxInt64.
func FromUint64(v uint64) (Rational, error) {
	if v > math.MaxInt64 {
		return Rational{}, fmt.Errorf("%w: %d", ErrIntegerOverflow, v)
	}
	return FromInt64(int64(v)), nil
}

// FromUint is FromUint64 for the platform-sized unsigned integer.
func FromUint(v uint) (Rational, error) {
	return FromUint64(uint64(v))
}

// String formats x as "num/den", or "NaN", "+Inf", "-Inf" for the sentinels.
func (x Rational) String() string {
	switch {
	case x.IsNaN():
		return "NaN"
	case x.IsInf() && x.num > 0:
		return "+Inf"
	case x.IsInf():
		return "-Inf"
	}
	return strconv.FormatInt(x.num, 10) + "/" + strconv.FormatInt(x.Den(), 10)
}

// Float64 approximates x for rendering. Sentinels map to ±Inf and NaN.
func (x Rational) Float64() float64 {
	switch {
	case x.IsNaN():
		return math.NaN()
	case x.IsInf():
		return math.Inf(x.Sign())
	}
	return float64(x.num) / float64(x.Den())
}

// Parse reads a rational from one of the forms "n/d", "n", or a decimal such
// as "0.25" or "-1.5". The sentinel spellings produced by String are accepted
// too. Decimals are converted exactly.
func Parse(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "NaN":
		return NaN, nil
	case "+Inf", "Inf":
		return Infinity, nil
	case "-Inf":
		return NegInfinity, nil
	case "":
		return Rational{}, fmt.Errorf("%w: empty string", ErrFormat)
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		if err != nil {
			return Rational{}, fmt.Errorf("%w: numerator of %q: %w", ErrFormat, s, err)
		}
		d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if err != nil {
			return Rational{}, fmt.Errorf("%w: denominator of %q: %w", ErrFormat, s, err)
		}
		return TryNew(n, d)
	}

	if whole, frac, ok := strings.Cut(s, "."); ok {
		return parseDecimal(s, whole, frac)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("%w: %q: %w", ErrFormat, s, err)
	}
	return FromInt64(n), nil
}

// parseDecimal converts whole.frac into (whole*10^k + frac) / 10^k.
func parseDecimal(s, whole, frac string) (Rational, error) {
	if frac == "" || strings.ContainsAny(frac, "+-") || len(frac) > 18 {
		return Rational{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	neg := strings.HasPrefix(whole, "-")
	digits := strings.TrimLeft(whole, "+-") + frac
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("%w: %q: %w", ErrFormat, s, err)
	}
	if neg {
		n = -n
	}
	den := int64(1)
	for range len(frac) {
		den *= 10
	}
	return TryNew(n, den)
}

// MustParse is Parse that panics on error, for literals in tests and defaults.
func MustParse(s string) Rational {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// MarshalText implements encoding.TextMarshaler using String.
func (x Rational) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (x *Rational) UnmarshalText(text []byte) error {
	r, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = r
	return nil
}
