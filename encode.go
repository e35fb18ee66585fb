package bpr5

import (
	"bufio"
	"io"
)

// Encode reads a text grid from r, runs it through the codec pipeline
// (predictor and mode selection, residual generation, ZigZag+varint,
// block-wise LZMA), and writes a BPR5 container to w.
func Encode(r io.Reader, w io.Writer) error {
	g, err := ParseGrid(r)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	total, err := writeHeader(bw, g)
	if err != nil {
		return err
	}
	if total == 0 {
		return wrapErr(KindIO, stageHeader, bw.Flush())
	}

	var seed int32
	if len(g.Rows) > 0 && len(g.Rows[0]) > 0 {
		seed = g.Rows[0][0]
	}
	if err := writeSeed(bw, seed); err != nil {
		return err
	}

	rows := make([]encodedRow, len(g.Rows))
	var prev []int32
	for i, row := range g.Rows {
		rows[i] = selectRow(i, row, prev)
		prev = row
	}

	if err := writePredModes(bw, rows); err != nil {
		return err
	}
	if err := writeBlockStream(bw, rows); err != nil {
		return err
	}
	return wrapErr(KindIO, "container writer", bw.Flush())
}
