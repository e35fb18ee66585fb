package bits

import (
	"bufio"
	"bytes"
	"io"
	"testing"
)

func TestEncodeVarint(t *testing.T) {
	golden := []struct {
		x    uint64
		want []byte
	}{
		{x: 0, want: []byte{0x00}},
		{x: 1, want: []byte{0x01}},
		{x: 127, want: []byte{0x7f}},
		{x: 128, want: []byte{0x80, 0x01}},
		{x: 300, want: []byte{0xac, 0x02}},
		{x: 1 << 35, want: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
	}
	for _, g := range golden {
		got := EncodeVarint(g.x)
		if !bytes.Equal(got, g.want) {
			t.Errorf("result mismatch of EncodeVarint(x=%d); expected %x, got %x", g.x, g.want, got)
			continue
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 2, 127, 128, 129, 16383, 16384, 1 << 20, 1<<35 + 7, ^uint64(0)}
	for _, want := range values {
		buf := EncodeVarint(want)
		br := bufio.NewReader(bytes.NewReader(buf))
		got, err := ReadVarint(br)
		if err != nil {
			t.Errorf("ReadVarint(%d) returned error: %v", want, err)
			continue
		}
		if got != want {
			t.Errorf("result mismatch of varint round-trip; expected %d, got %d", want, got)
		}
	}
}

func TestReadVarintTruncated(t *testing.T) {
	// A continuation byte (high bit set) with nothing following must fail
	// rather than silently return a short value.
	br := bufio.NewReader(bytes.NewReader([]byte{0x80, 0x80}))
	if _, err := ReadVarint(br); err != io.ErrUnexpectedEOF {
		t.Errorf("expected io.ErrUnexpectedEOF for truncated varint, got %v", err)
	}
}

func TestEncodeVarintZeroLength(t *testing.T) {
	if got := len(EncodeVarint(0)); got != 1 {
		t.Errorf("EncodeVarint(0) must emit exactly one byte, got %d", got)
	}
}
