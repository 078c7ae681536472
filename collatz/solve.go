package collatz

import (
	"fmt"
	"math/big"

	"CollatzReduce/nt"
)

// Solve is the top-level digit router. It dispatches on the last decimal
// digit of the current value, applying the matching exit map (or a direct
// odd/even step) until the value drops below 10. Single digit values are
// known to reach 1 under the primitive map, so the base case is trusted
// rather than re-derived.
func Solve(n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("collatz: Solve: %w", nt.ErrNonPositive)
	}

	cur := new(big.Int).Set(n)
	for cur.Cmp(ten) >= 0 {
		var err error
		switch new(big.Int).Mod(cur, ten).Uint64() {
		case 0:
			cur = E0(cur)
		case 1, 3, 5, 7, 9:
			cur = new(big.Int).Mul(three, cur)
			cur.Add(cur, one)
		case 2:
			// branch on the parity of the decimal prefix (all digits
			// but the last)
			prefix := new(big.Int).Quo(cur, ten)
			half := new(big.Int).Rsh(cur, 1)
			if prefix.Bit(0) == 0 {
				cur = half.Mul(half, three).Add(half, one)
			} else {
				cur = half
			}
		case 4:
			if cur, err = E4(cur); err != nil {
				return nil, err
			}
		case 6:
			cur = E6(cur)
		case 8:
			cur = E8(cur)
		default:
			return nil, fmt.Errorf("%w: unhandled last digit of %s", ErrInvariant, cur)
		}
	}
	return big.NewInt(1), nil
}

// SolveViaHub drives the whole trajectory through the 4-component, which
// empirically funnels every trajectory. Each round exits the 4-component,
// then chains the 6- and 8-exits to route the value back toward it.
func SolveViaHub(n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("collatz: SolveViaHub: %w", nt.ErrNonPositive)
	}

	cur := new(big.Int).Set(n)
	for {
		a, err := E4(cur)
		if err != nil {
			return nil, err
		}
		if a.Cmp(one) == 0 {
			return big.NewInt(1), nil
		}
		cur = E8(E6(a))
	}
}
