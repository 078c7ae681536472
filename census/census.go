package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	"CollatzReduce/collatz"
	"CollatzReduce/common"
	"CollatzReduce/nt"
	"golang.org/x/text/message"
)

/*
Empirical census of component transitions. Each compressed component
(last digit 0, 4, 6 or 8) owns an exit map that must land outside its
home component; this program applies each exit map across a range of the
component's members, tallies where the results land modulo 20 and by last
digit, counts violations of the eventual-exit guarantee, and writes one
JSON summary per component. The counts make the transition structure of
the reduced solver visible without instrumenting the solver itself.
*/

type Census struct {
	Component    int
	Samples      uint64
	Violations   uint64
	LandingMod20 [20]uint64
	LandingDigit [10]uint64
}

func main() {
	verbose := flag.Bool("verbose", false, "verbose output")
	limitString := flag.String("limit", "100K", "Largest component member to sample, with K, M, G, T, P, E suffixes")
	flag.Parse()
	limit := common.DecodeLimit(limitString, verbose)

	p := message.NewPrinter(message.MatchLanguage("en"))
	_, _ = p.Printf("%9s %12s %10s  %s\n", "component", "samples", "violations", "landing digits")

	ten := big.NewInt(10)
	twenty := big.NewInt(20)
	for _, digit := range []int{0, 4, 6, 8} {
		c := Census{Component: digit}
		n := new(big.Int)
		first := uint64(digit)
		if first == 0 {
			first = 10
		}
		for v := first; v <= limit; v += 10 {
			n.SetUint64(v)
			out, err := exitMap(digit, n)
			if err != nil {
				log.Fatalf("component %d: exit map failed on %d: %v", digit, v, err)
			}
			c.Samples++
			c.LandingMod20[new(big.Int).Mod(out, twenty).Uint64()]++
			c.LandingDigit[new(big.Int).Mod(out, ten).Uint64()]++
			if !leftHome(digit, out) {
				c.Violations++
			}
		}

		writeCensus(c)
		_, _ = p.Printf("%9d %12d %10d  %s\n", digit, c.Samples, c.Violations, landings(c))
	}
}

func exitMap(digit int, n *big.Int) (*big.Int, error) {
	switch digit {
	case 0:
		return collatz.E0(n), nil
	case 4:
		return collatz.E4(n)
	case 6:
		return collatz.E6(n), nil
	case 8:
		return collatz.E8(n), nil
	}
	log.Fatalf("no exit map for component %d", digit)
	return nil, nil
}

// leftHome reports whether the exit value is outside its home component.
// The 4-component is the digit cycle {1,2,4,7} less the terminal 1; the
// others are plain last-digit classes.
func leftHome(digit int, out *big.Int) bool {
	if digit == 4 {
		return !nt.InDigitCycle1247(out)
	}
	d := new(big.Int).Mod(out, big.NewInt(10)).Uint64()
	return d != uint64(digit)
}

func landings(c Census) string {
	parts := []string{}
	for d, count := range c.LandingDigit {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%d:%d", d, count))
		}
	}
	return strings.Join(parts, " ")
}

func writeCensus(c Census) {
	f, err := os.OpenFile(fmt.Sprintf("census-%d.json", c.Component), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		log.Fatal(err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	txt, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	_, err = f.Write(txt)
	if err != nil {
		log.Fatal(err)
	}
	_ = f.Close()
}
