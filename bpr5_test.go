package bpr5

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	iobits "github.com/kelners/bpr5/internal/bits"
)

func roundTrip(t *testing.T, input string) string {
	t.Helper()
	var container bytes.Buffer
	require.NoError(t, Encode(bytes.NewReader([]byte(input)), &container))

	var out bytes.Buffer
	require.NoError(t, Decode(bytes.NewReader(container.Bytes()), &out))
	return out.String()
}

func TestEmptyGrid(t *testing.T) {
	var container bytes.Buffer
	require.NoError(t, Encode(bytes.NewReader(nil), &container))
	require.Equal(t, append([]byte(Magic), 0x00), container.Bytes())

	var out bytes.Buffer
	require.NoError(t, Decode(bytes.NewReader(container.Bytes()), &out))
	require.Empty(t, out.Bytes())
}

func TestSingleRowSingleSample(t *testing.T) {
	require.Equal(t, "42\n", roundTrip(t, "42\n"))
}

func TestSingleRowArithmeticProgression(t *testing.T) {
	const input = "10 11 12 13 14\n"

	var container bytes.Buffer
	require.NoError(t, Encode(bytes.NewReader([]byte(input)), &container))

	hdr, err := ReadHeader(bytes.NewReader(container.Bytes()))
	require.NoError(t, err)
	require.Equal(t, int32(10), hdr.Seed)
	require.Equal(t, ModeFirstOrder, hdr.Modes[0]) // row 0's mode byte is always forced to 0

	require.Equal(t, input, roundTrip(t, input))
}

func TestTwoRowsIdentical(t *testing.T) {
	const input = "5 6 7\n5 6 7\n"

	var container bytes.Buffer
	require.NoError(t, Encode(bytes.NewReader([]byte(input)), &container))
	hdr, err := ReadHeader(bytes.NewReader(container.Bytes()))
	require.NoError(t, err)
	require.Equal(t, UP, hdr.Predictors[1], "row 1 repeats row 0 exactly, so UP must win strictly")

	require.Equal(t, input, roundTrip(t, input))
}

func TestNegativeValues(t *testing.T) {
	const input = "-1 -2 -3\n-4 -5 -6\n"
	require.Equal(t, input, roundTrip(t, input))
}

func TestRaggedRows(t *testing.T) {
	const input = "1 2 3\n4 5\n6 7 8 9\n"
	require.Equal(t, input, roundTrip(t, input))
}

// TestModeMonotonicity checks that, for every row after row 0, the selected
// mode's residual L1 sum is never larger than the other mode's would have
// been. Row 0 is exempt: its residuals always follow the fixed second-
// difference rule regardless of which mode would score lower.
func TestModeMonotonicity(t *testing.T) {
	grids := []string{
		"1 2 3\n4 5\n6 7 8 9\n",
		"5 6 7\n5 6 7\n5 6 7\n",
		"-1 -2 -3\n-4 -5 -6\n0 0 0\n",
		"100 90 80 70\n1 1 1 1\n",
	}
	for _, text := range grids {
		g, err := ParseGrid(bytes.NewReader([]byte(text)))
		require.NoError(t, err)

		var prev []int32
		for i, row := range g.Rows {
			r := selectRow(i, row, prev)
			if i > 0 {
				pid, mode0 := selectPredictor(i, row, prev)
				mode1 := genResidualsMode1(i, row, prev, pid)
				chosenSum := l1Sum(r.Residuals)
				otherSum := l1Sum(mode1)
				if r.Mode == ModeSecondOrder {
					otherSum = l1Sum(mode0)
				}
				require.LessOrEqual(t, chosenSum, otherSum, "row %d: chosen mode %s should not exceed the alternative", i, r.Mode)
			}
			prev = row
		}
	}
}

func TestMalformedContainerBadMagic(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader([]byte("XXXX\x00")))
	require.Error(t, err)
	var bErr *Error
	require.ErrorAs(t, err, &bErr)
	require.Equal(t, KindMalformedContainer, bErr.Kind)
}

func TestDecodeRejectsUnknownPredictor(t *testing.T) {
	const input = "1 2 3\n"
	var container bytes.Buffer
	require.NoError(t, Encode(bytes.NewReader([]byte(input)), &container))

	raw := container.Bytes()
	// R=1, L[0]=3, and seed=1 (ZigZag 2) are all single-byte varints, so the
	// predictor byte sits at a fixed, computable offset.
	idx := len(Magic) +
		len(iobits.AppendVarint(nil, 1)) +
		len(iobits.AppendVarint(nil, 3)) +
		len(iobits.AppendVarint(nil, uint64(iobits.EncodeZigZag(1))))

	corrupted := append([]byte(nil), raw...)
	corrupted[idx] = 0xFF

	var out bytes.Buffer
	err := Decode(bytes.NewReader(corrupted), &out)
	require.Error(t, err)
	var bErr *Error
	require.ErrorAs(t, err, &bErr)
	require.Equal(t, KindUnknownPredictor, bErr.Kind)
}
