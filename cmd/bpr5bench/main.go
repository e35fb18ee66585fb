// Command bpr5bench repeatedly encodes or decodes a file and reports
// throughput, profiling the run with runtime/pprof.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/kelners/bpr5"
)

var (
	flagIters   int
	flagProfile string
)

func init() {
	flag.IntVar(&flagIters, "n", 10, "number of iterations")
	flag.StringVar(&flagProfile, "cpuprofile", "bpr5bench.pprof", "CPU profile output path")
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: bpr5bench [OPTION]... FILE")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Create(flagProfile)
	if err != nil {
		log.Println(err)
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		log.Println(err)
	}
	defer pprof.StopCPUProfile()

	if err := bench(flag.Arg(0), flagIters); err != nil {
		log.Fatalln(err)
	}
}

func bench(path string, iters int) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	isContainer := len(raw) >= len(bpr5.Magic) && string(raw[:len(bpr5.Magic)]) == bpr5.Magic

	var elapsed time.Duration
	for i := 0; i < iters; i++ {
		var out bytes.Buffer
		start := time.Now()
		if isContainer {
			err = bpr5.Decode(bytes.NewReader(raw), &out)
		} else {
			err = bpr5.Encode(bytes.NewReader(raw), &out)
		}
		elapsed += time.Since(start)
		if err != nil {
			return err
		}
	}

	op := "encode"
	if isContainer {
		op = "decode"
	}
	report(op, iters, int64(len(raw))*int64(iters), elapsed)
	return nil
}

func report(op string, iters int, totalBytes int64, elapsed time.Duration) {
	var rate float64
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(totalBytes) / secs / 1000
	}
	fmt.Printf("%s: %d iterations, %s total, %.1f kB/s\n", op, iters, elapsed, rate)
}
