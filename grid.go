package bpr5

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Grid is a finite ordered sequence of rows, each row a finite ordered
// sequence of signed integer samples. Row lengths may differ; in practice
// they are uniform for the target bathymetry data.
type Grid struct {
	Rows [][]int32
}

// RowCount returns the number of rows in the grid.
func (g *Grid) RowCount() int { return len(g.Rows) }

// RowLen returns the length of row i, or 0 if i is out of range.
func (g *Grid) RowLen(i int) int {
	if i < 0 || i >= len(g.Rows) {
		return 0
	}
	return len(g.Rows[i])
}

// maxScanTokenSize accommodates the widest rows the codec targets (≈ 35001
// samples per row); bufio.Scanner's 64 KiB default line buffer is too small.
const maxScanTokenSize = 1 << 20

// ParseGrid reads a text grid: one row per line, samples separated by any
// run of whitespace, optionally signed decimal integers. An empty input (no
// lines) parses to a zero-row grid.
func ParseGrid(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxScanTokenSize)

	g := &Grid{}
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		fields := strings.Fields(line)
		row := make([]int32, len(fields))
		for i, tok := range fields {
			n, err := strconv.ParseInt(tok, 10, 32)
			if err != nil {
				return nil, errorf(KindTextParse, fmt.Sprintf("text parser: line %d", lineNum), "invalid integer token %q: %v", tok, err)
			}
			row[i] = int32(n)
		}
		g.Rows = append(g.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, wrapErr(KindIO, "text parser", err)
	}
	return g, nil
}

// WriteGrid writes a grid as text: each row's samples joined by single
// spaces, each row terminated by a single "\n". An empty grid writes no
// bytes.
func WriteGrid(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	for _, row := range g.Rows {
		toks := make([]string, len(row))
		for i, v := range row {
			toks[i] = strconv.FormatInt(int64(v), 10)
		}
		if _, err := bw.WriteString(strings.Join(toks, " ")); err != nil {
			return wrapErr(KindIO, "text writer", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return wrapErr(KindIO, "text writer", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return wrapErr(KindIO, "text writer", err)
	}
	return nil
}
