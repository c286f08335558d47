package utils

import "math/big"

// Fibonacci returns the value reached after rounds additive steps of the
// recurrence (a, b) -> (b, a+b), starting from (first, second) and reduced
// modulo mod. With rounds = 0 it returns second.
func Fibonacci(first, second *big.Int, rounds int, mod *big.Int) *big.Int {
	a := new(big.Int).Set(first)
	b := new(big.Int).Set(second)
	for i := 0; i < rounds; i++ {
		next := new(big.Int).Add(a, b)
		next.Mod(next, mod)
		a, b = b, next
	}
	return b
}

// SkewedFibonacci is Fibonacci with the recurrence (a, b) -> (b, a+2b).
func SkewedFibonacci(first, second *big.Int, rounds int, mod *big.Int) *big.Int {
	a := new(big.Int).Set(first)
	b := new(big.Int).Set(second)
	for i := 0; i < rounds; i++ {
		next := new(big.Int).Add(a, b)
		next.Add(next, b)
		next.Mod(next, mod)
		a, b = b, next
	}
	return b
}
