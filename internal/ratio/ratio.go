// pattern: Functional Core

// Package ratio implements exact rational numbers with int64 numerator and
// denominator, kept in canonical form.
//
// A Rational is always reduced and its denominator is never negative; the
// sign lives in the numerator. Zero denominators are not errors: they encode
// the sentinels Infinity (1/0), NegInfinity (-1/0) and NaN (0/0), which
// propagate through arithmetic the way the fraction formulas dictate.
//
// Values are immutable and may be freely copied and shared between
// goroutines. The zero value is 0/1.
package ratio

import (
	"cmp"
	"errors"
	"math"
	"math/bits"
)

// Errors returned (or panicked with) by this package.
var (
	ErrOverflow        = errors.New("rational overflow")
	ErrIntegerOverflow = errors.New("integer exceeds rational range")
	ErrFormat          = errors.New("invalid rational format")
)

// Rational is an exact fraction. The denominator is stored biased by one so
// that the zero value is 0/1 rather than NaN.
type Rational struct {
	num int64
	dm1 int64 // denominator - 1; -1 for the zero-denominator sentinels
}

// Exact constants.
var (
	Zero        = Rational{num: 0, dm1: 0}
	One         = Rational{num: 1, dm1: 0}
	Infinity    = Rational{num: 1, dm1: -1}
	NegInfinity = Rational{num: -1, dm1: -1}
	NaN         = Rational{num: 0, dm1: -1}
)

// New returns num/den in canonical form. A negative denominator moves its
// sign to the numerator; a zero denominator yields Infinity, NegInfinity or
// NaN. New panics with ErrOverflow only when the reduced value cannot be
// represented, which happens for math.MinInt64 divided by a negative
// denominator that does not cancel it.
func New(num, den int64) Rational {
	r, err := TryNew(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// TryNew is like New but reports an unrepresentable result as ErrOverflow.
func TryNew(num, den int64) (Rational, error) {
	return Reduce(num, den)
}

// Reduce divides num and den by GCD(num, den) and canonicalizes the sign.
// GCD(0, 0) is 0, in which case the result is NaN; n/0 reduces to sign(n)/0.
func Reduce(num, den int64) (Rational, error) {
	neg := (num < 0) != (den < 0)
	if num == 0 || den == 0 {
		neg = num < 0
	}
	return fromMagnitudes(neg, absU(num), absU(den))
}

// fromMagnitudes builds a canonical Rational from a sign and the absolute
// values of numerator and denominator.
func fromMagnitudes(neg bool, n, d uint64) (Rational, error) {
	g := gcdU(n, d)
	if g == 0 {
		return NaN, nil
	}
	n, d = n/g, d/g
	if d > math.MaxInt64 {
		return Rational{}, ErrOverflow
	}
	var num int64
	switch {
	case neg && n == 1<<63:
		num = math.MinInt64
	case n > math.MaxInt64:
		return Rational{}, ErrOverflow
	case neg:
		num = -int64(n)
	default:
		num = int64(n)
	}
	return Rational{num: num, dm1: int64(d) - 1}, nil
}

// GCD returns the greatest common divisor of |a| and |b| using the iterative
// Euclidean algorithm. GCD(0, b) == |b| and GCD(a, 0) == |a|. The result is
// unsigned so that GCD(math.MinInt64, 0) == 1<<63 is representable.
func GCD(a, b int64) uint64 {
	return gcdU(absU(a), absU(b))
}

func gcdU(a, b uint64) uint64 {
	for a != 0 {
		a, b = b%a, a
	}
	return b
}

// absU returns |v| as uint64. Negating math.MinInt64 wraps to itself, whose
// unsigned reading is exactly 1<<63.
func absU(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// Num returns the numerator; it carries the sign.
func (x Rational) Num() int64 { return x.num }

// Den returns the denominator, which is never negative.
func (x Rational) Den() int64 { return x.dm1 + 1 }

// Fraction returns numerator and denominator together.
func (x Rational) Fraction() (num, den int64) { return x.num, x.Den() }

// IsNaN reports whether x is the 0/0 sentinel.
func (x Rational) IsNaN() bool { return x.dm1 == -1 && x.num == 0 }

// IsInf reports whether x is +Inf or -Inf.
func (x Rational) IsInf() bool { return x.dm1 == -1 && x.num != 0 }

// IsFinite reports whether x has a non-zero denominator.
func (x Rational) IsFinite() bool { return x.dm1 != -1 }

// IsZero reports whether x == 0.
func (x Rational) IsZero() bool { return x.num == 0 && x.dm1 == 0 }

// Sign returns -1, 0 or +1. NaN has sign 0.
func (x Rational) Sign() int {
	return cmp.Compare(x.num, 0)
}

// rank orders the classes of values: NaN, -Inf, finite, +Inf.
func (x Rational) rank() int {
	switch {
	case x.IsNaN():
		return 0
	case x.IsInf() && x.num < 0:
		return 1
	case x.IsInf():
		return 3
	default:
		return 2
	}
}

// Cmp compares x and y exactly and returns -1, 0 or +1.
//
// Finite values are compared by cross-multiplication, x.num*y.den against
// y.num*x.den, carried out in 128 bits so it cannot overflow. The order over
// all values is total: NaN sorts before -Inf, which sorts before every finite
// value, which sorts before +Inf, and NaN equals NaN.
func (x Rational) Cmp(y Rational) int {
	xr, yr := x.rank(), y.rank()
	if xr != yr {
		return cmp.Compare(xr, yr)
	}
	if xr != 2 {
		return 0
	}
	sx, sy := x.Sign(), y.Sign()
	if sx != sy {
		return cmp.Compare(sx, sy)
	}
	if sx == 0 {
		return 0
	}
	ah, al := bits.Mul64(absU(x.num), uint64(y.Den()))
	bh, bl := bits.Mul64(absU(y.num), uint64(x.Den()))
	c := cmp.Compare(ah, bh)
	if c == 0 {
		c = cmp.Compare(al, bl)
	}
	return c * sx
}

// Less reports whether x < y under Cmp.
func (x Rational) Less(y Rational) bool { return x.Cmp(y) < 0 }

// Equal reports whether x and y are the same value. Canonical form makes
// this a field comparison; == on two Rationals is equivalent.
func (x Rational) Equal(y Rational) bool { return x == y }

// Compare is Cmp in function form, for slices.SortFunc and friends.
func Compare(x, y Rational) int { return x.Cmp(y) }

// Min returns the smaller of x and y.
func Min(x, y Rational) Rational {
	if y.Less(x) {
		return y
	}
	return x
}

// Max returns the larger of x and y.
func Max(x, y Rational) Rational {
	if x.Less(y) {
		return y
	}
	return x
}
