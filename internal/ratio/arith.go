// pattern: Functional Core

package ratio

import (
	"math"
	"math/big"
)

// small is the bound below which numerators and denominators can be
// cross-multiplied and summed in int64 without overflow.
const small = 1 << 31

func fitsSmall(xs ...int64) bool {
	for _, v := range xs {
		if v <= -small || v >= small {
			return false
		}
	}
	return true
}

// TryAdd returns x + y = (x.num*y.den + y.num*x.den) / (x.den*y.den), reduced.
func TryAdd(x, y Rational) (Rational, error) {
	xn, xd := x.Fraction()
	yn, yd := y.Fraction()
	if fitsSmall(xn, xd, yn, yd) {
		return Reduce(xn*yd+yn*xd, xd*yd)
	}
	n := new(big.Int).Mul(big.NewInt(xn), big.NewInt(yd))
	n.Add(n, new(big.Int).Mul(big.NewInt(yn), big.NewInt(xd)))
	d := new(big.Int).Mul(big.NewInt(xd), big.NewInt(yd))
	return fromBig(n, d)
}

// TrySub returns x - y = (x.num*y.den - y.num*x.den) / (x.den*y.den), reduced.
func TrySub(x, y Rational) (Rational, error) {
	xn, xd := x.Fraction()
	yn, yd := y.Fraction()
	if fitsSmall(xn, xd, yn, yd) {
		return Reduce(xn*yd-yn*xd, xd*yd)
	}
	n := new(big.Int).Mul(big.NewInt(xn), big.NewInt(yd))
	n.Sub(n, new(big.Int).Mul(big.NewInt(yn), big.NewInt(xd)))
	d := new(big.Int).Mul(big.NewInt(xd), big.NewInt(yd))
	return fromBig(n, d)
}

// TryMul returns x * y = (x.num*y.num) / (x.den*y.den), reduced.
func TryMul(x, y Rational) (Rational, error) {
	xn, xd := x.Fraction()
	yn, yd := y.Fraction()
	if fitsSmall(xn, xd, yn, yd) {
		return Reduce(xn*yn, xd*yd)
	}
	n := new(big.Int).Mul(big.NewInt(xn), big.NewInt(yn))
	d := new(big.Int).Mul(big.NewInt(xd), big.NewInt(yd))
	return fromBig(n, d)
}

// TryDiv returns x / y = (x.num*y.den) / (x.den*y.num), reduced. Dividing a
// non-zero value by zero gives ±Infinity and 0/0 gives NaN; no panic.
func TryDiv(x, y Rational) (Rational, error) {
	xn, xd := x.Fraction()
	yn, yd := y.Fraction()
	if fitsSmall(xn, xd, yn, yd) {
		return Reduce(xn*yd, xd*yn)
	}
	n := new(big.Int).Mul(big.NewInt(xn), big.NewInt(yd))
	d := new(big.Int).Mul(big.NewInt(xd), big.NewInt(yn))
	return fromBig(n, d)
}

// fromBig reduces n/d computed in arbitrary precision and narrows it back to
// int64, failing with ErrOverflow when it does not fit.
func fromBig(n, d *big.Int) (Rational, error) {
	neg := (n.Sign() < 0) != (d.Sign() < 0)
	if n.Sign() == 0 || d.Sign() == 0 {
		neg = n.Sign() < 0
	}
	an := new(big.Int).Abs(n)
	ad := new(big.Int).Abs(d)
	g := new(big.Int).GCD(nil, nil, an, ad)
	if g.Sign() == 0 {
		return NaN, nil
	}
	an.Quo(an, g)
	ad.Quo(ad, g)
	if !an.IsUint64() || !ad.IsUint64() {
		return Rational{}, ErrOverflow
	}
	return fromMagnitudes(neg, an.Uint64(), ad.Uint64())
}

// Add returns x + y. It panics with ErrOverflow if the result does not fit.
func (x Rational) Add(y Rational) Rational { return must(TryAdd(x, y)) }

// Sub returns x - y. It panics with ErrOverflow if the result does not fit.
func (x Rational) Sub(y Rational) Rational { return must(TrySub(x, y)) }

// Mul returns x * y. It panics with ErrOverflow if the result does not fit.
func (x Rational) Mul(y Rational) Rational { return must(TryMul(x, y)) }

// Div returns x / y. It panics with ErrOverflow if the result does not fit.
func (x Rational) Div(y Rational) Rational { return must(TryDiv(x, y)) }

// Neg returns -x. Sentinels negate to sentinels; NaN stays NaN.
func (x Rational) Neg() Rational {
	if x.num == math.MinInt64 {
		panic(ErrOverflow)
	}
	return Rational{num: -x.num, dm1: x.dm1}
}

// Abs returns |x|.
func (x Rational) Abs() Rational {
	if x.num < 0 {
		return x.Neg()
	}
	return x
}

// Inv returns 1/x; the inverse of zero is Infinity.
func (x Rational) Inv() Rational { return One.Div(x) }

// TrySum folds rs with TryAdd, starting at Zero. The result is exact.
func TrySum(rs ...Rational) (Rational, error) {
	acc := Zero
	for _, r := range rs {
		var err error
		if acc, err = TryAdd(acc, r); err != nil {
			return Rational{}, err
		}
	}
	return acc, nil
}

// Sum is TrySum that panics on overflow.
func Sum(rs ...Rational) Rational { return must(TrySum(rs...)) }

// Floor returns the largest integer not greater than x. It panics for
// sentinels, which have no integer part.
func (x Rational) Floor() int64 {
	if !x.IsFinite() {
		panic(ErrOverflow)
	}
	d := x.Den()
	q := x.num / d
	if x.num%d != 0 && x.num < 0 {
		q--
	}
	return q
}

func must(r Rational, err error) Rational {
	if err != nil {
		panic(err)
	}
	return r
}
