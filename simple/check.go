package main

import (
	"flag"
	"log"
	"math/big"
	"time"

	"CollatzReduce/collatz"
	"CollatzReduce/common"
	"github.com/shopspring/decimal"
)

/*
Cross-checks the reduced solver against brute force: for every n in the
range, replays the primitive Collatz map (halve if even, else 3n+1) one
step at a time on decimal values until it reaches 1, and requires the
digit router to agree that n resolves to 1. The step counts accumulated
here also show how much work the exit maps compress away.

The brute trajectory gets a generous step ceiling so a regression in the
arithmetic cannot hang the check.
*/

const maxBruteSteps = 100_000

func main() {
	verbose := flag.Bool("verbose", false, "verbose output")
	rangeString := flag.String(
		"range",
		"10K",
		"Values to check, \"limit\" or \"start..limit\" with K, M, G, T, P, E suffixes",
	)
	flag.Parse()
	start, limit := common.DecodeRange(rangeString, verbose)

	one := decimal.NewFromInt(1)
	two := decimal.NewFromInt(2)
	three := decimal.NewFromInt(3)

	t0 := time.Now()
	bruteSteps := uint64(0)
	n := new(big.Int)
	for v := start; v <= limit; v++ {
		z := decimal.NewFromUint64(v)
		steps := 0
		for !z.Equal(one) {
			q, r := z.QuoRem(two, 0)
			if r.IsZero() {
				z = q
			} else {
				z = z.Mul(three).Add(one)
			}
			steps++
			if steps > maxBruteSteps {
				log.Fatalf("brute trajectory of %d exceeded %d steps", v, maxBruteSteps)
			}
		}
		bruteSteps += uint64(steps)

		n.SetUint64(v)
		out, err := collatz.Solve(n)
		if err != nil {
			log.Fatalf("solve(%d): %v", v, err)
		}
		if out.Cmp(big.NewInt(1)) != 0 {
			log.Fatalf("solve(%d) = %s but the brute trajectory reaches 1", v, out)
		}

		if *verbose && v%1_000_000 == 0 {
			t := time.Since(t0).Seconds()
			rate := float64(v-start+1) / t
			log.Printf(
				"%6dM candidates checked, %.3fs remaining\n",
				v/1_000_000,
				float64(limit-v)/rate,
			)
		}
	}
	log.Printf(
		"OK: solver agrees with %d brute primitive steps over [%d, %d] (%.1fs)\n",
		bruteSteps, start, limit, time.Since(t0).Seconds(),
	)
}
