package bpr5

import (
	"bufio"
	"io"
)

// Decode reads a BPR5 container from r, reverses every pipeline stage, and
// writes the reconstructed text grid to w.
func Decode(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)

	if err := readMagic(br); err != nil {
		return err
	}
	lens, total, err := readLengths(br)
	if err != nil {
		return err
	}

	g := &Grid{Rows: make([][]int32, len(lens))}
	for i, l := range lens {
		g.Rows[i] = make([]int32, l)
	}
	if total == 0 {
		return WriteGrid(w, g)
	}

	seed, err := readSeed(br)
	if err != nil {
		return err
	}
	preds, modes, err := readPredModes(br, len(lens))
	if err != nil {
		return err
	}

	rowCount := len(lens)
	nBlocks := (rowCount + BlockSize - 1) / BlockSize
	var prev []int32
	for b := 0; b < nBlocks; b++ {
		blockReader, err := readBlock(br, b)
		if err != nil {
			return err
		}
		start := b * BlockSize
		end := start + BlockSize
		if end > rowCount {
			end = rowCount
		}
		for i := start; i < end; i++ {
			n := rowResidualCount(i, lens)
			residuals, err := readBlockRow(blockReader, n, b, i)
			if err != nil {
				return err
			}
			rec := reconstructRow(i, lens[i], seed, preds[i], modes[i], prev, residuals)
			g.Rows[i] = rec
			prev = rec
		}
		if err := checkBlockExhausted(blockReader, b); err != nil {
			return err
		}
	}

	return WriteGrid(w, g)
}
