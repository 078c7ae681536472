package nt

import (
	"errors"
	"math/big"
)

var (
	one    = big.NewInt(1)
	ten    = big.NewInt(10)
	twenty = big.NewInt(20)
)

// ErrNonPositive is returned whenever a positivity precondition is violated.
// All of the number theory here is defined on positive integers only.
var ErrNonPositive = errors.New("nt: argument must be a positive integer")

// Nu2 returns the 2-adic valuation of n, the exponent of the largest power
// of 2 dividing n. Defined for n > 0 only.
func Nu2(n *big.Int) (int, error) {
	if n.Sign() <= 0 {
		return 0, ErrNonPositive
	}
	return int(n.TrailingZeroBits()), nil
}

// OddPart returns n / 2^Nu2(n) as a fresh value. The result is always odd
// and satisfies n == OddPart(n) << Nu2(n). Defined for n > 0 only.
func OddPart(n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, ErrNonPositive
	}
	return new(big.Int).Rsh(n, n.TrailingZeroBits()), nil
}

// ResidueMod20 reports whether n mod 20 is a member of allowed.
func ResidueMod20(n *big.Int, allowed map[uint64]bool) bool {
	r := new(big.Int).Mod(n, twenty)
	return allowed[r.Uint64()]
}

// InDigitCycle1247 reports whether x sits in the last-digit cycle
// {1,2,4,7} mod 10. The value 1 is the terminal fixed point and is
// excluded; reporting it as in-cycle would keep scans from stopping at
// the goal state.
func InDigitCycle1247(x *big.Int) bool {
	if x.Cmp(one) == 0 {
		return false
	}
	switch new(big.Int).Mod(x, ten).Uint64() {
	case 1, 2, 4, 7:
		return true
	}
	return false
}
