package collatz

import (
	"errors"
	"fmt"
	"math/big"

	"CollatzReduce/nt"
)

/*
Reduction engine for the Collatz trajectory problem. Rather than applying
the primitive map (halve if even, else 3n+1) one step at a time, integers
are partitioned into residue components by their last decimal digit
(refined modulo 20 for two components) and each component gets an exit map
that jumps the trajectory forward by several primitive steps at once,
either in closed form or by a bounded macro-scan. Every function here is
pure: arguments are never mutated and no state is shared between calls.
*/

var (
	one    = big.NewInt(1)
	two    = big.NewInt(2)
	three  = big.NewInt(3)
	five   = big.NewInt(5)
	ten    = big.NewInt(10)
	twenty = big.NewInt(20)
)

// c6 is the residue component scanned by E6, taken modulo 20.
var c6 = map[uint64]bool{0: true, 3: true, 5: true, 6: true}

// ErrInvariant reports a broken mathematical assumption: a bounded scan ran
// past its derived cap, or the router saw a digit it cannot see. This is a
// defect, not bad input, and is never retryable.
var ErrInvariant = errors.New("collatz: internal invariant violated")

// odd and nu2 assume their argument is positive, which every interior
// value of the maps below is by construction.
func odd(n *big.Int) *big.Int {
	v, err := nt.OddPart(n)
	if err != nil {
		panic(err)
	}
	return v
}

func nu2(n *big.Int) int {
	v, err := nt.Nu2(n)
	if err != nil {
		panic(err)
	}
	return v
}

// E0 is the exit map for the 0-component (multiples of 10). One halving
// turns 10k into 5k, and since 5 is odd, stripping the even part of 5k is
// the same as 5*odd(k). The single call covers 1+nu2(k) primitive steps.
// Outside the component it degrades to a plain halving.
func E0(n *big.Int) *big.Int {
	k, r := new(big.Int).QuoRem(n, ten, new(big.Int))
	if r.Sign() != 0 {
		return new(big.Int).Rsh(n, 1)
	}
	return k.Mul(five, odd(k))
}

// E8 is the exit map for the 8-component, refined modulo 20. Off the
// residue 18 the value is simply even and takes one halving. On it, write
// n = 20m-2; the odd step and the following run of halvings are governed
// by the 2-adic structure of m, collapsing to (10*3^(a+1)*odd(m) - 2)/2
// with a = nu2(m).
func E8(n *big.Int) *big.Int {
	if new(big.Int).Mod(n, twenty).Uint64() != 18 {
		return new(big.Int).Rsh(n, 1)
	}
	m := new(big.Int).Add(n, two)
	m.Quo(m, twenty)
	out := new(big.Int).Exp(three, big.NewInt(int64(nu2(m)+1)), nil)
	out.Mul(out, odd(m))
	out.Mul(out, ten)
	out.Sub(out, two)
	return out.Rsh(out, 1)
}

// F6 is the macro map for the 6-component: 3*odd(3n+2)+1. One call fuses
// an odd step, a full strip of factors of two, and another odd step.
func F6(n *big.Int) *big.Int {
	u := new(big.Int).Mul(three, n)
	u.Add(u, two)
	f := odd(u)
	return f.Mul(f, three).Add(f, one)
}

// E6 is the bounded macro-scan exit for the 6-component, whose residues
// modulo 20 are {0,3,5,6}. Each F6 step at least doubles the dominant
// term, so the number of steps needed to leave the component is bounded
// by the bit length of 3n+2; running past that cap would be a defect.
func E6(n *big.Int) *big.Int {
	if !nt.ResidueMod20(n, c6) {
		return new(big.Int).Rsh(n, 1)
	}
	u0 := new(big.Int).Mul(three, n)
	u0.Add(u0, two)
	bound := u0.BitLen()

	fk := new(big.Int).Set(n)
	for i := 0; i < bound; i++ {
		if !nt.ResidueMod20(fk, c6) {
			break
		}
		fk = F6(fk)
	}
	return fk.Rsh(fk, 1)
}

// F4 is the macro map for the 4-component: three micro odd-steps fused,
// 3*odd(3*odd(3*odd(n)+1)+1)+1.
func F4(n *big.Int) *big.Int {
	a := odd(n)
	a.Mul(a, three).Add(a, one)
	b := odd(a)
	b.Mul(b, three).Add(b, one)
	c := odd(b)
	return c.Mul(c, three).Add(c, one)
}

// microLeaving forms a = 3*odd(n)+1 and walks the successive halvings
// a>>r for r = 1..nu2(a), reporting the first candidate that has left the
// {1,2,4,7} digit cycle. ok is false when every candidate stays inside.
func microLeaving(n *big.Int) (*big.Int, bool) {
	a := odd(n)
	a.Mul(a, three).Add(a, one)
	t := nu2(a)
	for r := 1; r <= t; r++ {
		cand := new(big.Int).Rsh(a, uint(r))
		if !nt.InDigitCycle1247(cand) {
			return cand, true
		}
	}
	return nil, false
}

// internalLeaving scans the interior of one F4 macro step for a value
// that leaves the digit cycle: first the run of halvings from fk/2 down
// to the odd part, then a micro check on the odd part, then on its
// successor 3a+1.
func internalLeaving(fk *big.Int) (*big.Int, bool) {
	a := new(big.Int).Rsh(fk, 1)
	for a.Bit(0) == 0 {
		if !nt.InDigitCycle1247(a) {
			return a, true
		}
		a.Rsh(a, 1)
	}
	if v, ok := microLeaving(a); ok {
		return v, true
	}
	a.Mul(a, three).Add(a, one)
	return microLeaving(a)
}

// E4 is the bounded macro-scan exit for the 4-component. Starting from
// n0 it advances by F4 macro steps, scanning the interior of each step
// for the first value that leaves the digit cycle. The cap is derived
// from 3*n0+2: its bit length plus its 2-adic valuation. Exhausting the
// cap means the derivation of the bound was violated and is fatal.
func E4(n0 *big.Int) (*big.Int, error) {
	if n0.Sign() <= 0 {
		return nil, fmt.Errorf("collatz: E4: %w", nt.ErrNonPositive)
	}
	t := new(big.Int).Mul(three, n0)
	t.Add(t, two)
	ub := t.BitLen() + nu2(t)

	fk := new(big.Int).Set(n0)
	for i := 0; i <= ub; i++ {
		if v, ok := internalLeaving(fk); ok {
			return v, nil
		}
		fk = F4(fk)
	}
	return nil, fmt.Errorf("%w: E4 scan from %s ran %d macro steps without leaving", ErrInvariant, n0, ub+1)
}
