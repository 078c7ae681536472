package main

import (
	"flag"
	"log"
	"math/big"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"CollatzReduce/collatz"
	"CollatzReduce/common"
	"golang.org/x/text/message"
)

/*
Smoke-tests the digit router by running every integer in a range through
collatz.Solve and checking that each one resolves to 1. Any solver error
or non-1 result is a hard failure and the program exits non-zero.

The range is cut into fixed-size batches handed to workers over a channel
so large ranges spread across cores; the core solver itself is purely
sequential per value.
*/

const batchSize = 10_000

type Result struct {
	ID       int
	Failures []Failure
	Tests    uint64
}

type Failure struct {
	N       uint64
	Problem string
}

func main() {
	verbose := flag.Bool("verbose", false, "verbose output")
	threads := flag.Int("threads", runtime.NumCPU()/2, "Number of threads to use in the run")
	rangeString := flag.String("range", "10K", "Values to test, \"limit\" or \"start..limit\" with K, M, G, T, P, E suffixes")
	cpuProfile := flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile to file")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}
	defer func() {
		if *memProfile != "" {
			f, err := os.Create(*memProfile)
			if err != nil {
				log.Fatal(err)
			}
			runtime.GC()
			err = pprof.WriteHeapProfile(f)
			if err != nil {
				log.Fatal(err)
			}
			_ = f.Close()
		}
	}()

	start, limit := common.DecodeRange(rangeString, verbose)
	totalBatches := (limit - start + batchSize) / batchSize

	t0 := time.Now()
	dispatch := make(chan uint64, *threads)
	go dispatcher(totalBatches, dispatch, *verbose)

	results := make(chan Result, *threads)
	for i := 0; i < *threads; i++ {
		go worker(i, start, limit, dispatch, results)
	}

	tests := uint64(0)
	failures := []Failure{}
	for i := 0; i < *threads; i++ {
		r, ok := <-results
		if !ok {
			log.Fatalf("Results channel closed ... should be impossible")
		}
		if *verbose {
			log.Printf("thread %d done (%d values)\n", r.ID, r.Tests)
		}
		tests += r.Tests
		failures = append(failures, r.Failures...)
	}

	dt := time.Since(t0).Seconds()
	p := message.NewPrinter(message.MatchLanguage("en"))
	_, _ = p.Printf("%d values in %.1f s (%.0f values/s)\n", tests, dt, float64(tests)/dt)

	if len(failures) > 0 {
		for _, f := range failures {
			log.Printf("FAIL n=%d: %s", f.N, f.Problem)
		}
		os.Exit(1)
	}
	_, _ = p.Printf("OK: solve resolved every n in [%d, %d] to 1\n", start, limit)
}

// worker is where the actual testing happens
func worker(thread int, start, limit uint64, dispatch chan uint64, results chan Result) {
	r := Result{ID: thread}
	defer func() {
		results <- r
	}()

	n := new(big.Int)
	for {
		job, ok := <-dispatch
		if !ok {
			break
		}
		lo := start + job*batchSize
		hi := lo + batchSize - 1
		if hi > limit {
			hi = limit
		}
		for v := lo; v <= hi; v++ {
			n.SetUint64(v)
			out, err := collatz.Solve(n)
			r.Tests++
			if err != nil {
				r.Failures = append(r.Failures, Failure{N: v, Problem: err.Error()})
			} else if out.Cmp(big.NewInt(1)) != 0 {
				r.Failures = append(r.Failures, Failure{N: v, Problem: "solver returned " + out.String()})
			}
		}
	}
}

// dispatcher sends batch indexes to the workers via a channel and reports
// progress along the way.
func dispatcher(totalBatches uint64, dispatch chan uint64, verbose bool) {
	step := (totalBatches + 19) / 20
	t0 := time.Now()
	for i := uint64(0); i < totalBatches; i++ {
		if verbose && i > 0 && i%step == 0 {
			total := time.Since(t0).Seconds()
			dt := total / float64(i)
			log.Printf(
				"sender: %6d (%.0f%%) %.1f seconds remaining",
				i,
				float64(i*100)/float64(totalBatches),
				float64(totalBatches-i)*dt,
			)
		}
		dispatch <- i
	}
	if verbose {
		log.Printf("sender: completed")
	}
	close(dispatch)
}
