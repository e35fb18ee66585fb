package bpr5

import (
	"bufio"
	"io"

	"github.com/mewkiz/pkg/readerutil"

	iobits "github.com/kelners/bpr5/internal/bits"
)

const stageHeader = "container header"

// writeVarint writes the little-endian base-128 varint encoding of x to w.
func writeVarint(w io.Writer, x uint64) error {
	_, err := w.Write(iobits.AppendVarint(nil, x))
	return wrapErr(KindIO, stageHeader, err)
}

// writeZigzagVarint ZigZag-maps a signed residual or sample and writes it as
// a varint.
func writeZigzagVarint(w io.Writer, n int32) error {
	return writeVarint(w, uint64(iobits.EncodeZigZag(n)))
}

// readZigzagVarint reads a varint and ZigZag-decodes it back to a signed
// value.
func readZigzagVarint(br iobits.ByteReader) (int32, error) {
	z, err := iobits.ReadVarint(br)
	if err != nil {
		return 0, err
	}
	return iobits.DecodeZigZag(uint32(z)), nil
}

// writeHeader writes the magic, row count, and per-row length table. It
// returns the total sample count across all rows, which the caller uses to
// decide whether any further data follows.
func writeHeader(w io.Writer, g *Grid) (total int64, err error) {
	if _, err := io.WriteString(w, Magic); err != nil {
		return 0, wrapErr(KindIO, stageHeader, err)
	}
	if err := writeVarint(w, uint64(g.RowCount())); err != nil {
		return 0, err
	}
	for _, row := range g.Rows {
		if err := writeVarint(w, uint64(len(row))); err != nil {
			return 0, err
		}
		total += int64(len(row))
	}
	return total, nil
}

// writeSeed writes the first sample of the grid, ZigZag-varint encoded.
func writeSeed(w io.Writer, seed int32) error {
	return writeZigzagVarint(w, seed)
}

// writePredModes writes the R predictor-id bytes followed by the R delta-
// mode bytes. Row 0's mode byte is always written as 0: the decoder never
// consults it, since row 0 is always reconstructed with the fixed
// seed/first-difference/second-difference rule.
func writePredModes(w io.Writer, rows []encodedRow) error {
	buf := make([]byte, len(rows))
	for i, r := range rows {
		buf[i] = byte(r.Predictor)
	}
	if _, err := w.Write(buf); err != nil {
		return wrapErr(KindIO, stageHeader, err)
	}
	for i, r := range rows {
		if i == 0 {
			buf[i] = 0
		} else {
			buf[i] = byte(r.Mode)
		}
	}
	if _, err := w.Write(buf); err != nil {
		return wrapErr(KindIO, stageHeader, err)
	}
	return nil
}

// Header holds a container's header fields, decoupled from the block stream
// that follows it. ReadHeader parses no further than the mode table (or the
// length table, for an empty grid), but it reads through a bufio.Reader, so
// unless r is already a *bufio.Reader of at least the default size (which
// it then uses directly), bytes past the header may have been consumed
// from r.
type Header struct {
	RowLens    []int
	Seed       int32
	Predictors []Predictor
	Modes      []DeltaMode
}

// ReadHeader reads a BPR5 container's header from r without touching its
// block stream, for tools that only need the container's shape and
// predictor/mode usage (e.g. a diagnostic dump) rather than a full decode.
func ReadHeader(r io.Reader) (*Header, error) {
	br := bufio.NewReader(r)
	if err := readMagic(br); err != nil {
		return nil, err
	}
	lens, total, err := readLengths(br)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return &Header{RowLens: lens}, nil
	}
	seed, err := readSeed(br)
	if err != nil {
		return nil, err
	}
	preds, modes, err := readPredModes(br, len(lens))
	if err != nil {
		return nil, err
	}
	return &Header{RowLens: lens, Seed: seed, Predictors: preds, Modes: modes}, nil
}

// readMagic reads and verifies the 4-byte "BPR5" signature.
func readMagic(r io.Reader) error {
	buf := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, buf); err != nil {
		return wrapErr(KindMalformedContainer, stageHeader, err)
	}
	if string(buf) != Magic {
		return errorf(KindMalformedContainer, stageHeader, "bad magic: expected %q, got %q", Magic, buf)
	}
	return nil
}

// readLengths reads the row count and per-row length table, returning the
// lengths and their sum.
func readLengths(br *bufio.Reader) (lens []int, total int64, err error) {
	r, err := iobits.ReadVarint(br)
	if err != nil {
		return nil, 0, wrapErr(KindMalformedContainer, stageHeader, err)
	}
	lens = make([]int, r)
	for i := range lens {
		l, err := iobits.ReadVarint(br)
		if err != nil {
			return nil, 0, wrapErr(KindMalformedContainer, stageHeader, err)
		}
		lens[i] = int(l)
		total += int64(l)
	}
	return lens, total, nil
}

// readSeed reads the ZigZag-varint encoded first sample.
func readSeed(br *bufio.Reader) (int32, error) {
	seed, err := readZigzagVarint(br)
	if err != nil {
		return 0, wrapErr(KindMalformedContainer, stageHeader, err)
	}
	return seed, nil
}

// readPredModes reads the R predictor-id bytes and R delta-mode bytes,
// validating every byte against its closed set: an out-of-range predictor id
// and an out-of-range delta mode are reported as distinct error kinds.
func readPredModes(br *bufio.Reader, r int) ([]Predictor, []DeltaMode, error) {
	preds := make([]Predictor, r)
	for i := range preds {
		b, err := readerutil.ReadByte(br)
		if err != nil {
			return nil, nil, wrapErr(KindMalformedContainer, stageHeader, err)
		}
		p := Predictor(b)
		if !p.Valid() {
			return nil, nil, errorf(KindUnknownPredictor, stageHeader, "row %d: predictor id %d out of range", i, b)
		}
		preds[i] = p
	}
	modes := make([]DeltaMode, r)
	for i := range modes {
		b, err := readerutil.ReadByte(br)
		if err != nil {
			return nil, nil, wrapErr(KindMalformedContainer, stageHeader, err)
		}
		m := DeltaMode(b)
		if !m.Valid() {
			return nil, nil, errorf(KindUnknownMode, stageHeader, "row %d: delta mode %d out of range", i, b)
		}
		modes[i] = m
	}
	return preds, modes, nil
}
