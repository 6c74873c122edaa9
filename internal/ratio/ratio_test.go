package ratio

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	for _, tc := range []struct {
		a, b int64
		want uint64
	}{
		{10, 2, 2},
		{10, 3, 1},
		{0, 3, 3},
		{3, 0, 3},
		{3, 3, 3},
		{56, 42, 14},
		{3, -3, 3},
		{-6, 3, 3},
		{-4, -2, 2},
		{0, 0, 0},
		{-7, 0, 7},
		{math.MinInt64, 0, 1 << 63},
		{math.MinInt64, 6, 2},
	} {
		t.Run(fmt.Sprintf("gcd(%d,%d)", tc.a, tc.b), func(t *testing.T) {
			require.Equal(t, tc.want, GCD(tc.a, tc.b))
			require.Equal(t, GCD(tc.a, tc.b), GCD(tc.b, tc.a))
		})
	}
}

func TestNewCanonicalForm(t *testing.T) {
	for _, tc := range []struct {
		num, den         int64
		wantNum, wantDen int64
	}{
		{1, 2, 1, 2},
		{2, 4, 1, 2},
		{-2, 4, -1, 2},
		{2, -4, -1, 2},
		{-2, -4, 1, 2},
		{0, 5, 0, 1},
		{0, -5, 0, 1},
		{7, 1, 7, 1},
		{859, 82, 859, 82},
		{math.MinInt64, 2, math.MinInt64 / 2, 1},
		{math.MaxInt64, math.MaxInt64, 1, 1},
	} {
		t.Run(fmt.Sprintf("%d/%d", tc.num, tc.den), func(t *testing.T) {
			r := New(tc.num, tc.den)
			require.Equal(t, tc.wantNum, r.Num())
			require.Equal(t, tc.wantDen, r.Den())
			require.Positive(t, r.Den())
		})
	}
}

func TestNewScaledIsIdempotent(t *testing.T) {
	pairs := [][2]int64{{1, 2}, {-3, 7}, {5, -9}, {0, 4}, {12, 18}}
	for _, p := range pairs {
		for _, k := range []int64{1, -1, 2, -3, 17, 1000} {
			require.Equal(t, New(p[0], p[1]), New(k*p[0], k*p[1]), "k=%d pair=%v", k, p)
		}
	}
}

func TestZeroDenominatorSentinels(t *testing.T) {
	require.Equal(t, NaN, New(0, 0))
	require.Equal(t, Infinity, New(5, 0))
	require.Equal(t, NegInfinity, New(-5, 0))
	require.Equal(t, Infinity, New(1, 0))
	require.True(t, NaN.IsNaN())
	require.False(t, NaN.IsInf())
	require.True(t, Infinity.IsInf())
	require.True(t, NegInfinity.IsInf())
	require.False(t, Infinity.IsFinite())
	require.True(t, One.IsFinite())
}

func TestZeroValueIsZero(t *testing.T) {
	var r Rational
	require.Equal(t, Zero, r)
	require.True(t, r.IsZero())
	require.Equal(t, int64(1), r.Den())
}

func TestNewOverflow(t *testing.T) {
	_, err := TryNew(math.MinInt64, -1)
	require.ErrorIs(t, err, ErrOverflow)
	require.Panics(t, func() { New(math.MinInt64, -1) })

	r, err := TryNew(math.MinInt64, -2)
	require.NoError(t, err)
	require.Equal(t, FromInt64(1<<62), r)
}

func TestCmp(t *testing.T) {
	for _, tc := range []struct {
		a, b Rational
		want int
	}{
		{New(1, 2), New(1, 3), 1},
		{New(1, 3), New(1, 2), -1},
		{New(2, 4), New(1, 2), 0},
		{New(-1, 2), New(1, 3), -1},
		{New(-1, 2), New(-1, 3), -1},
		{Zero, New(-1, 3), 1},
		{Zero, Zero, 0},
		{New(math.MaxInt64, math.MaxInt64-1), New(math.MaxInt64-1, math.MaxInt64-2), -1},
		{New(math.MinInt64, 3), New(math.MinInt64+1, 3), -1},
		{Infinity, New(math.MaxInt64, 1), 1},
		{NegInfinity, New(math.MinInt64, 1), -1},
		{Infinity, NegInfinity, 1},
		{Infinity, Infinity, 0},
		{NaN, NegInfinity, -1},
		{NaN, NaN, 0},
	} {
		t.Run(fmt.Sprintf("%s<=>%s", tc.a, tc.b), func(t *testing.T) {
			require.Equal(t, tc.want, tc.a.Cmp(tc.b))
			require.Equal(t, -tc.want, tc.b.Cmp(tc.a))
		})
	}
}

func TestCmpAgreesWithSubtraction(t *testing.T) {
	vals := []Rational{New(1, 2), New(-3, 4), New(5, 7), Zero, One, New(-1, 9), New(22, 7), New(355, 113)}
	for _, a := range vals {
		for _, b := range vals {
			require.Equal(t, a.Less(b), a.Sub(b).Num() < 0, "%s < %s", a, b)
		}
	}
}

func TestMinMax(t *testing.T) {
	require.Equal(t, New(1, 3), Min(New(1, 2), New(1, 3)))
	require.Equal(t, New(1, 2), Max(New(1, 2), New(1, 3)))
}
