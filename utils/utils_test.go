package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var testMod = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(59))

func TestFibonacci(t *testing.T) {
	one := big.NewInt(1)

	// 1 1 2 3 5 8 13 21 34 55
	require.Equal(t, int64(55), Fibonacci(one, one, 8, testMod).Int64())
	require.Equal(t, int64(2), Fibonacci(one, one, 1, testMod).Int64())
	require.Equal(t, int64(1), Fibonacci(one, one, 0, testMod).Int64())
}

func TestFibonacciReduces(t *testing.T) {
	mod := big.NewInt(100)
	got := Fibonacci(big.NewInt(1), big.NewInt(1), 11, mod)
	require.Equal(t, int64(33), got.Int64()) // fib term 233 mod 100
}

func TestSkewedFibonacci(t *testing.T) {
	one := big.NewInt(1)

	// 1 1 3 7 17 41
	require.Equal(t, int64(3), SkewedFibonacci(one, one, 1, testMod).Int64())
	require.Equal(t, int64(41), SkewedFibonacci(one, one, 4, testMod).Int64())
}

func TestDecompose(t *testing.T) {
	limbs, err := Decompose(0b101_110_011, 3, 4)
	require.NoError(t, err)
	require.Equal(t, []uint64{0b011, 0b110, 0b101, 0}, limbs)
	require.Equal(t, uint64(0b101_110_011), Recompose(limbs, 3))
}

func TestDecomposeDoesNotFit(t *testing.T) {
	_, err := Decompose(1<<12, 3, 4)
	require.Error(t, err)
}

func TestDecomposeBadParams(t *testing.T) {
	_, err := Decompose(1, 0, 4)
	require.Error(t, err)
	_, err = Decompose(1, 8, 9)
	require.Error(t, err)
}

func TestRecomposeRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 48879, 1<<32 - 1} {
		limbs, err := Decompose(v, 4, 8)
		require.NoError(t, err)
		require.Equal(t, v, Recompose(limbs, 4))
	}
}
