package bpr5

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGridEmpty(t *testing.T) {
	g, err := ParseGrid(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 0, g.RowCount())
}

func TestParseGridBasic(t *testing.T) {
	g, err := ParseGrid(strings.NewReader("1 2 3\n4 5 6\n"))
	require.NoError(t, err)
	require.Equal(t, 2, g.RowCount())
	require.Equal(t, []int32{1, 2, 3}, g.Rows[0])
	require.Equal(t, []int32{4, 5, 6}, g.Rows[1])
}

func TestParseGridCollapsesRunsOfWhitespace(t *testing.T) {
	g, err := ParseGrid(strings.NewReader("1\t\t2   3\n"))
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, g.Rows[0])
}

func TestParseGridBlankLineIsEmptyRow(t *testing.T) {
	g, err := ParseGrid(strings.NewReader("1 2\n\n3 4\n"))
	require.NoError(t, err)
	require.Equal(t, 3, g.RowCount())
	require.Empty(t, g.Rows[1])
}

func TestParseGridRejectsNonInteger(t *testing.T) {
	_, err := ParseGrid(strings.NewReader("1 2 three\n"))
	require.Error(t, err)
	var bErr *Error
	require.ErrorAs(t, err, &bErr)
	require.Equal(t, KindTextParse, bErr.Kind)
}

func TestWriteGridJoinsWithSingleSpaces(t *testing.T) {
	g := &Grid{Rows: [][]int32{{1, -2, 3}, {}}}
	var buf bytes.Buffer
	require.NoError(t, WriteGrid(&buf, g))
	require.Equal(t, "1 -2 3\n\n", buf.String())
}

func TestRowLenOutOfRange(t *testing.T) {
	g := &Grid{Rows: [][]int32{{1, 2}}}
	require.Equal(t, 2, g.RowLen(0))
	require.Equal(t, 0, g.RowLen(-1))
	require.Equal(t, 0, g.RowLen(5))
}
