// Command bpr5dump prints the header of a BPR5 container: row count,
// row-length statistics, the seed, and predictor/mode usage histograms.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/kelners/bpr5"
)

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: bpr5dump FILE...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	for _, path := range flag.Args() {
		if err := dump(path); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

func dump(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	hdr, err := bpr5.ReadHeader(bufio.NewReader(f))
	if err != nil {
		return errors.WithStack(err)
	}

	fmt.Printf("%s:\n", path)
	fmt.Printf("  row count: %d\n", len(hdr.RowLens))
	listRowLengthStats(hdr.RowLens)
	fmt.Printf("  seed: %d\n", hdr.Seed)
	listPredictorHistogram(hdr.Predictors)
	listModeHistogram(hdr.Modes)
	fmt.Printf("  blocks: %d\n", (len(hdr.RowLens)+bpr5.BlockSize-1)/bpr5.BlockSize)
	return nil
}

// listRowLengthStats reports the distribution of row lengths, the detail
// that matters most for judging how ragged a grid is before spending time on
// a full decode.
func listRowLengthStats(lens []int) {
	if len(lens) == 0 {
		fmt.Println("  row lengths: (no rows)")
		return
	}
	data := make(stats.Float64Data, len(lens))
	for i, l := range lens {
		data[i] = float64(l)
	}
	min, err := data.Min()
	if err != nil {
		fmt.Printf("  row lengths: %v\n", err)
		return
	}
	max, err := data.Max()
	if err != nil {
		fmt.Printf("  row lengths: %v\n", err)
		return
	}
	mean, err := data.Mean()
	if err != nil {
		fmt.Printf("  row lengths: %v\n", err)
		return
	}
	median, err := data.Median()
	if err != nil {
		fmt.Printf("  row lengths: %v\n", err)
		return
	}
	fmt.Printf("  row lengths: min=%.0f max=%.0f mean=%.1f median=%.0f\n", min, max, mean, median)
}

func listPredictorHistogram(preds []bpr5.Predictor) {
	var counts [4]int
	for _, p := range preds {
		if int(p) < len(counts) {
			counts[p]++
		}
	}
	fmt.Printf("  predictors: LEFT=%d UP=%d PAETH=%d MED=%d\n", counts[0], counts[1], counts[2], counts[3])
}

func listModeHistogram(modes []bpr5.DeltaMode) {
	var counts [2]int
	for _, m := range modes {
		if int(m) < len(counts) {
			counts[m]++
		}
	}
	fmt.Printf("  delta modes: first-order=%d second-order=%d\n", counts[0], counts[1])
}
