// Package bpr5 implements a lossless codec for two-dimensional grids of
// integer sea-level heights stored as whitespace-separated decimal rows.
//
// A grid is parsed from text, run through a per-row predictor (LEFT, UP,
// PAETH, or MED) and a per-row first- or second-order residual mode, then
// ZigZag+varint encoded and LZMA-compressed in blocks of 8 rows, and framed
// in a small self-describing container (magic "BPR5"). Decoding reverses
// every stage to reproduce the original grid byte-for-byte, up to
// normalizing intra-row whitespace to single spaces and line endings to
// "\n".
//
// The package is organized the way the pipeline is described, leaves first:
// text parsing (grid.go), predictor math (predictor.go), predictor and mode
// selection (select.go), residual generation (residual.go), block packing
// and LZMA framing (block.go), and the container reader/writer
// (container.go). encode.go and decode.go wire the stages together into the
// two exported operations.
package bpr5

// Magic is the 4-byte signature at the start of every BPR5 container.
const Magic = "BPR5"

// BlockSize is the number of rows grouped into one independently
// LZMA-compressed block.
const BlockSize = 8
