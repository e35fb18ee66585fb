// Command bpr5 encodes a text grid to a BPR5 container, or decodes a BPR5
// container back to a text grid. The direction is chosen automatically from
// the first four bytes of the input file.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/kelners/bpr5"
	"github.com/kelners/bpr5/internal/bufseekio"
)

const (
	exitOK = iota
	exitIO
	exitMalformed
	exitVerifyMismatch
)

var (
	flagVerify  bool
	flagVerbose bool
)

func init() {
	flag.BoolVar(&flagVerify, "verify", false, "round-trip the output and compare it against the input before exiting")
	flag.BoolVar(&flagVerbose, "v", false, "enable debug logging")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: bpr5 [OPTION]... SRC DST")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) > 2 {
		// Options may also follow SRC and DST, as in "bpr5 SRC DST --verify".
		rest := args[2:]
		args = args[:2:2]
		flag.CommandLine.Parse(rest)
		args = append(args, flag.Args()...)
	}
	if len(args) != 2 {
		flag.Usage()
		os.Exit(exitIO)
	}

	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).With().Timestamp().Logger()

	os.Exit(run(log, args[0], args[1]))
}

func run(log zerolog.Logger, src, dst string) int {
	f, err := os.Open(src)
	if err != nil {
		log.Error().Err(err).Str("path", src).Msg("cannot open input")
		return exitIO
	}
	defer f.Close()

	rs := bufseekio.NewReadSeeker(f)
	isContainer, err := sniffIsContainer(rs)
	if err != nil {
		log.Error().Err(err).Msg("cannot sniff input")
		return exitIO
	}
	log.Debug().Bool("container", isContainer).Str("path", src).Msg("dispatching")

	var out bytes.Buffer
	if isContainer {
		err = bpr5.Decode(rs, &out)
	} else {
		err = bpr5.Encode(rs, &out)
	}
	if err != nil {
		log.Error().Err(err).Msg("transform failed")
		return exitCodeFor(err)
	}

	if err := os.WriteFile(dst, out.Bytes(), 0o644); err != nil {
		log.Error().Err(err).Str("path", dst).Msg("cannot write output")
		return exitIO
	}

	if !flagVerify || isContainer {
		// --verify only applies to the encode direction.
		if flagVerify {
			log.Debug().Msg("--verify ignored on decode")
		}
		return exitOK
	}
	return verify(log, src, out.Bytes())
}

// sniffIsContainer peeks the first four bytes of rs to tell a BPR5 container
// from a text grid, then rewinds to the start so the real transform sees the
// whole input.
func sniffIsContainer(rs *bufseekio.ReadSeeker) (bool, error) {
	magic := make([]byte, len(bpr5.Magic))
	n, err := io.ReadFull(rs, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	if _, serr := rs.Seek(0, io.SeekStart); serr != nil {
		return false, serr
	}
	return n == len(magic) && string(magic) == bpr5.Magic, nil
}

// verify decodes the just-written container back to text and checks that it
// reproduces the original input byte for byte. Only meaningful after an
// encode: a decode output has no canonical "expected" re-encoding to compare
// against.
func verify(log zerolog.Logger, src string, produced []byte) int {
	orig, err := os.ReadFile(src)
	if err != nil {
		log.Error().Err(err).Str("path", src).Msg("cannot reread input for verification")
		return exitIO
	}

	var back bytes.Buffer
	if err = bpr5.Decode(bytes.NewReader(produced), &back); err != nil {
		log.Error().Err(err).Msg("verification pass failed")
		return exitCodeFor(err)
	}

	if !bytes.Equal(back.Bytes(), orig) {
		log.Error().Int("orig_len", len(orig)).Int("roundtrip_len", back.Len()).Msg("round trip does not match input")
		return exitVerifyMismatch
	}
	log.Info().Msg("verify: round trip matches")
	return exitOK
}

// exitCodeFor maps a bpr5.Error's Kind to the process exit code the CLI
// contract assigns it.
func exitCodeFor(err error) int {
	var bErr *bpr5.Error
	if !errors.As(err, &bErr) {
		return exitIO
	}
	switch bErr.Kind {
	case bpr5.KindMalformedContainer, bpr5.KindResidualUnderflow, bpr5.KindUnknownPredictor, bpr5.KindUnknownMode:
		return exitMalformed
	default:
		return exitIO
	}
}
