package ratio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	for _, tc := range []struct {
		a, b, want Rational
	}{
		{Zero, Zero, FromInt(0)},
		{One, Zero, FromInt(1)},
		{Zero, One, FromInt(1)},
		{One, One, FromInt(2)},
		{New(1, 2), New(7, 14), One},
		{New(1, 3), New(2, 6), New(2, 3)},
		{New(3, 14), New(23, 25), New(397, 350)},
		{New(859, 82), New(10, 12), New(1391, 123)},
		{New(-1, 2), New(7, 14), Zero},
		{New(1, 3), New(4, -6), New(-1, 3)},
	} {
		require.Equal(t, tc.want, tc.a.Add(tc.b), "%s + %s", tc.a, tc.b)
	}
}

func TestSub(t *testing.T) {
	for _, tc := range []struct {
		a, b, want Rational
	}{
		{Zero, Zero, FromInt(0)},
		{One, Zero, FromInt(1)},
		{Zero, One, FromInt(-1)},
		{One, One, Zero},
		{One, New(1, 2), New(1, 2)},
		{New(1, 3), New(2, 6), Zero},
		{New(3, 14), New(23, 25), New(-247, 350)},
		{New(859, 82), New(10, 12), New(1186, 123)},
		{New(-1, 2), New(7, 14), FromInt(-1)},
		{New(1, 3), New(2, -6), New(2, 3)},
	} {
		require.Equal(t, tc.want, tc.a.Sub(tc.b), "%s - %s", tc.a, tc.b)
	}
}

func TestMul(t *testing.T) {
	for _, tc := range []struct {
		a, b, want Rational
	}{
		{Zero, Zero, Zero},
		{One, Zero, Zero},
		{One, One, One},
		{New(1, 2), New(7, 14), New(1, 4)},
		{New(1, 3), New(2, 6), New(1, 9)},
		{New(3, 14), New(23, 25), New(69, 350)},
		{New(859, 82), New(10, 12), New(4295, 492)},
		{New(-1, 2), New(7, 14), New(-1, 4)},
		{New(1, 3), New(4, -6), New(-2, 9)},
	} {
		require.Equal(t, tc.want, tc.a.Mul(tc.b), "%s * %s", tc.a, tc.b)
	}
}

func TestDiv(t *testing.T) {
	for _, tc := range []struct {
		a, b, want Rational
	}{
		{Zero, One, Zero},
		{One, One, One},
		{One, New(1, 2), FromInt(2)},
		{One, New(2, 1), New(1, 2)},
		{New(1, 2), New(14, 7), New(1, 4)},
		{New(1, 3), New(2, 6), One},
		{New(3, 14), New(23, 25), New(75, 322)},
		{New(1, 2), New(-1, 4), FromInt(-2)},
		{New(-1, 2), New(-1, 4), FromInt(2)},
	} {
		require.Equal(t, tc.want, tc.a.Div(tc.b), "%s / %s", tc.a, tc.b)
	}
}

func TestSentinelPropagation(t *testing.T) {
	for name, tc := range map[string]struct {
		got, want Rational
	}{
		"0/0":          {Zero.Div(Zero), NaN},
		"1/0":          {One.Div(Zero), Infinity},
		"-1/0":         {FromInt(-3).Div(Zero), NegInfinity},
		"x/inf":        {New(1, 2).Div(Infinity), Zero},
		"inf+x":        {Infinity.Add(New(1, 2)), Infinity},
		"-inf+x":       {NegInfinity.Add(New(7, 3)), NegInfinity},
		"inf-inf":      {Infinity.Sub(Infinity), NaN},
		"inf+-inf":     {Infinity.Add(NegInfinity), NaN},
		"inf*0":        {Infinity.Mul(Zero), NaN},
		"inf*-x":       {Infinity.Mul(New(-1, 2)), NegInfinity},
		"nan+x":        {NaN.Add(One), NaN},
		"nan*x":        {NaN.Mul(New(3, 4)), NaN},
		"inv zero":     {Zero.Inv(), Infinity},
		"neg inf":      {Infinity.Neg(), NegInfinity},
		"neg nan":      {NaN.Neg(), NaN},
		"abs -inf":     {NegInfinity.Abs(), Infinity},
		"inv negative": {New(-2, 3).Inv(), New(-3, 2)},
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.got)
		})
	}
}

func TestArithmeticLaws(t *testing.T) {
	vals := []Rational{
		Zero, One, New(1, 2), New(-3, 4), New(5, 7), New(355, 113),
		New(-1, 9), New(1<<20, 3), New(7, 1<<15),
	}
	for _, a := range vals {
		require.Equal(t, a, a.Mul(One), "%s * 1", a)
		require.Equal(t, a, a.Add(Zero), "%s + 0", a)
		require.Equal(t, Zero, a.Sub(a), "%s - %s", a, a)
		require.Equal(t, Zero, a.Add(a.Neg()), "%s + -%s", a, a)
		for _, b := range vals {
			require.Equal(t, a.Add(b), b.Add(a), "%s + %s", a, b)
			require.Equal(t, a.Mul(b), b.Mul(a), "%s * %s", a, b)
			for _, c := range vals {
				require.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)), "(%s + %s) + %s", a, b, c)
			}
		}
	}
}

func TestWideOperandsStayExact(t *testing.T) {
	big := New(math.MaxInt64, math.MaxInt64-1)
	require.Equal(t, Zero, big.Sub(big))
	require.Equal(t, One, big.Div(big))

	// (2^62/3) * (3/2^61) = 2 needs a wide intermediate product.
	require.Equal(t, FromInt(2), New(1<<62, 3).Mul(New(3, 1<<61)))

	// 1/(2^40) + 1/(2^40) reduces back below the fast-path bound.
	require.Equal(t, New(1, 1<<39), New(1, 1<<40).Add(New(1, 1<<40)))
}

func TestOverflowIsReported(t *testing.T) {
	_, err := TryMul(FromInt64(math.MaxInt64), FromInt(2))
	require.ErrorIs(t, err, ErrOverflow)

	_, err = TryAdd(FromInt64(math.MaxInt64), One)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = TryAdd(New(1, math.MaxInt64), New(1, math.MaxInt64-1))
	require.ErrorIs(t, err, ErrOverflow)

	require.Panics(t, func() { FromInt64(math.MaxInt64).Add(One) })
	require.Panics(t, func() { FromInt64(math.MinInt64).Neg() })

	r, err := TrySub(FromInt64(math.MinInt64+1), One)
	require.NoError(t, err)
	require.Equal(t, FromInt64(math.MinInt64), r)
}

func TestSum(t *testing.T) {
	require.Equal(t, Zero, Sum())
	require.Equal(t, One, Sum(New(1, 3), New(1, 3), New(1, 3)))
	require.Equal(t, New(11, 12), Sum(New(1, 2), New(1, 4), New(1, 6)))

	parts := make([]Rational, 0, 30)
	for range 30 {
		parts = append(parts, New(1, 30))
	}
	require.Equal(t, One, Sum(parts...))

	_, err := TrySum(FromInt64(math.MaxInt64), One)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestFloor(t *testing.T) {
	require.Equal(t, int64(0), New(1, 2).Floor())
	require.Equal(t, int64(2), New(7, 3).Floor())
	require.Equal(t, int64(-1), New(-1, 2).Floor())
	require.Equal(t, int64(-3), New(-7, 3).Floor())
	require.Equal(t, int64(-2), FromInt(-2).Floor())
	require.Panics(t, func() { Infinity.Floor() })
}
