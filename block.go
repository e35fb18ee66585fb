package bpr5

import (
	"bufio"
	"bytes"
	"io"

	"github.com/ulikunitz/xz/lzma"

	iobits "github.com/kelners/bpr5/internal/bits"
)

const stageBlock = "block compressor"

// minDictCap and maxDictCap bound the LZMA dictionary size picked for a
// block. Every block is treated as an opaque blob compressed at the
// strongest practical setting ("preset 9 extreme"); ulikunitz/xz/lzma
// exposes compression level only through dictionary size and match
// properties, so preset 9 extreme is approximated here as the smallest
// power-of-two dictionary that holds the whole block, no smaller than 4 KiB
// and capped at 64 MiB, with
// the library's default (LC=3, LP=0, PB=2) match properties.
const (
	minDictCap = 1 << 12
	maxDictCap = 1 << 26
)

func dictCapFor(n int) int {
	cap := minDictCap
	for cap < n && cap < maxDictCap {
		cap <<= 1
	}
	return cap
}

// compressBlock LZMA-compresses buf as a complete, independent LZMA1 stream
// rather than a raw filter output, so each block can be decompressed on its
// own without any other block's history.
func compressBlock(buf []byte) ([]byte, error) {
	var out bytes.Buffer
	cfg := lzma.WriterConfig{
		Properties: &lzma.Properties{LC: 3, LP: 0, PB: 2},
		DictCap:    dictCapFor(len(buf)),
	}
	lw, err := cfg.NewWriter(&out)
	if err != nil {
		return nil, wrapErr(KindIO, stageBlock, err)
	}
	if _, err := lw.Write(buf); err != nil {
		return nil, wrapErr(KindIO, stageBlock, err)
	}
	if err := lw.Close(); err != nil {
		return nil, wrapErr(KindIO, stageBlock, err)
	}
	return out.Bytes(), nil
}

// decompressBlock reverses compressBlock.
func decompressBlock(compressed []byte) ([]byte, error) {
	lr, err := lzma.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, wrapErr(KindMalformedContainer, stageBlock, err)
	}
	buf, err := io.ReadAll(lr)
	if err != nil {
		return nil, wrapErr(KindMalformedContainer, stageBlock, err)
	}
	return buf, nil
}

// packResiduals concatenates the varint-encoded ZigZag residuals of a run of
// rows, row-major, forming one block's uncompressed byte buffer.
func packResiduals(rows []encodedRow) []byte {
	var buf []byte
	for _, row := range rows {
		for _, res := range row.Residuals {
			buf = iobits.AppendVarint(buf, uint64(iobits.EncodeZigZag(res)))
		}
	}
	return buf
}

// writeBlockStream groups rows into blocks of BlockSize, LZMA-compresses
// each block's residual buffer independently, and writes the
// length-prefixed block sequence.
func writeBlockStream(w io.Writer, rows []encodedRow) error {
	for start := 0; start < len(rows); start += BlockSize {
		end := start + BlockSize
		if end > len(rows) {
			end = len(rows)
		}
		buf := packResiduals(rows[start:end])
		compressed, err := compressBlock(buf)
		if err != nil {
			return err
		}
		if err := writeVarint(w, uint64(len(compressed))); err != nil {
			return err
		}
		if _, err := w.Write(compressed); err != nil {
			return wrapErr(KindIO, stageBlock, err)
		}
	}
	return nil
}

// rowResidualCount returns how many residuals row i contributes: lens[i],
// except row 0 contributes one fewer (its column 0 is the seed) whenever it
// is non-empty.
func rowResidualCount(i int, lens []int) int {
	if i == 0 {
		if lens[0] > 0 {
			return lens[0] - 1
		}
		return 0
	}
	return lens[i]
}

// readBlockRow pulls the next row's worth of residuals from a block's
// decompressed byte stream.
func readBlockRow(br *bufio.Reader, n int, blockIdx, rowIdx int) ([]int32, error) {
	out := make([]int32, n)
	for j := 0; j < n; j++ {
		v, err := readZigzagVarint(br)
		if err != nil {
			return nil, errorf(KindResidualUnderflow, stageBlock, "block %d row %d: expected %d residuals, ran out at %d: %v", blockIdx, rowIdx, n, j, err)
		}
		out[j] = v
	}
	return out, nil
}

// readBlock reads block blockIdx's length-prefixed compressed payload from
// r, decompresses it, and returns a reader positioned at its start, for readBlockRow to consume row by row.
// The caller must verify the reader is exhausted after consuming every row
// assigned to the block: trailing bytes mean the container is malformed.
func readBlock(r *bufio.Reader, blockIdx int) (*bufio.Reader, error) {
	clen, err := iobits.ReadVarint(r)
	if err != nil {
		return nil, errorf(KindMalformedContainer, stageBlock, "block %d: truncated length prefix: %v", blockIdx, err)
	}
	compressed := make([]byte, clen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, errorf(KindMalformedContainer, stageBlock, "block %d: length %d exceeds remaining input: %v", blockIdx, clen, err)
	}
	buf, err := decompressBlock(compressed)
	if err != nil {
		return nil, err
	}
	return bufio.NewReader(bytes.NewReader(buf)), nil
}

// checkBlockExhausted verifies no residual bytes remain unconsumed in a
// block's decompressed stream.
func checkBlockExhausted(br *bufio.Reader, blockIdx int) error {
	if _, err := br.ReadByte(); err != io.EOF {
		return errorf(KindResidualUnderflow, stageBlock, "block %d: unconsumed trailing bytes after its rows", blockIdx)
	}
	return nil
}
