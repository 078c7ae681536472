package main

import (
	"flag"
	"log"
	"math/big"
	"time"

	"CollatzReduce/collatz"
	"CollatzReduce/common"
)

/*
Smoke-tests the 4-component hub pipeline: every trajectory empirically
funnels through the 4-component, so SolveViaHub drives the whole solve as
repeated rounds of E4 followed by the 6- and 8-exits. This program runs
the pipeline over a stride-10 range of 4-component values and fails hard
on any error or non-1 result.
*/

func main() {
	verbose := flag.Bool("verbose", false, "verbose output")
	rangeString := flag.String(
		"range",
		"14..1_000_014",
		"Range of values to test, stride 10; must start on a value ending in 4",
	)
	flag.Parse()

	start, limit := common.DecodeRange(rangeString, verbose)
	if start%10 != 4 {
		log.Fatalf("Range must start on a 4-component value (last digit 4), got %d", start)
	}

	t0 := time.Now()
	n := new(big.Int)
	one := big.NewInt(1)
	count := 0
	for v := start; v <= limit; v += 10 {
		n.SetUint64(v)
		out, err := collatz.SolveViaHub(n)
		if err != nil {
			log.Fatalf("solveViaHub(%d): %v", v, err)
		}
		if out.Cmp(one) != 0 {
			log.Fatalf("solveViaHub(%d) = %s, want 1", v, out)
		}
		count++
		if *verbose && count%100_000 == 0 {
			t := time.Since(t0).Seconds()
			rate := float64(count) / t
			log.Printf(
				"%d values checked, %.3fs remaining\n",
				count,
				float64((limit-v)/10)/rate,
			)
		}
	}
	log.Printf(
		"OK: solveViaHub resolved %d values in [%d, %d] in %.1fs\n",
		count, start, limit, time.Since(t0).Seconds(),
	)
}
