package main

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/readahead"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

const (
	defaultBufferSize = 64 << 10
	defaultBuffers    = 4
	tabWidth          = 8

	// stdinName identifies standard input in errors and logs.
	stdinName = "standard input"
)

// Counter computes counts over a byte stream in a single sequential scan.
type Counter struct {
	modes     Mode
	tokenizer Tokenizer // required for ModeTokens
	bufSize   int
	buffers   int
	log       *zap.Logger
}

// NewCounter returns a Counter for the given modes. An empty mode set
// selects DefaultModes.
func NewCounter(modes Mode, tk Tokenizer, log *zap.Logger) *Counter {
	if modes == 0 {
		modes = DefaultModes
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Counter{
		modes:     modes,
		tokenizer: tk,
		bufSize:   defaultBufferSize,
		buffers:   defaultBuffers,
		log:       log,
	}
}

// CountFile opens path (or reads stdin when path is "" or "-") and counts it.
// The input is closed on every return path.
func (c *Counter) CountFile(path string, stdin io.Reader) (Counts, error) {
	in, name, err := openInput(path, stdin)
	if err != nil {
		return Counts{}, err
	}
	defer in.Close()
	return c.count(in, name)
}

// openInput opens path, or wraps stdin when path is "" or "-". The returned
// name identifies the input in errors and logs.
func openInput(path string, stdin io.Reader) (io.ReadCloser, string, error) {
	if isStdin(path) {
		return io.NopCloser(stdin), stdinName, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, path, newIOError(path, err)
	}
	return f, path, nil
}

// Count scans r once and returns the counts for the selected modes.
func (c *Counter) Count(r io.Reader) (Counts, error) {
	return c.count(r, stdinName)
}

func (c *Counter) count(r io.Reader, name string) (Counts, error) {
	if c.modes.Has(ModeTokens) && c.tokenizer == nil {
		return Counts{}, &InvalidArgumentError{
			Arg: "--tokens",
			Err: errors.New("token counting requested without a tokenizer"),
		}
	}

	ra, err := readahead.NewReaderSize(r, c.buffers, c.bufSize)
	if err != nil {
		return Counts{}, newIOError(name, err)
	}
	defer ra.Close()

	s := scanner{modes: c.modes}
	if c.modes.Has(ModeTokens) {
		s.text = new(strings.Builder)
	}

	buf := make([]byte, c.bufSize)
	for {
		n, err := ra.Read(buf)
		if n > 0 {
			s.feed(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Counts{}, newIOError(name, err)
		}
	}
	s.finish()

	counts := s.counts
	if s.text != nil {
		counts.Tokens = int64(c.tokenizer.CountTokens(s.text.String()))
	}
	c.log.Debug("scan complete",
		zap.String("input", name),
		zap.Stringer("modes", c.modes),
		zap.String("size", humanize.Bytes(uint64(s.read))),
	)
	return counts, nil
}

func isStdin(path string) bool {
	return path == "" || path == "-"
}

func newIOError(path string, err error) *IOError {
	return &IOError{Path: path, Err: err}
}

// scanner holds the O(1) state carried between read buffers.
type scanner struct {
	modes  Mode
	counts Counts
	read   int64

	inWord bool

	// pending holds the prefix of a UTF-8 sequence split by a buffer boundary.
	pending  [utf8.UTFMax]byte
	npending int
	linePos  int64

	text *strings.Builder
}

func (s *scanner) feed(p []byte) {
	s.read += int64(len(p))
	if s.modes&(ModeLines|ModeWords) != 0 {
		s.feedBytes(p)
	}
	if s.modes.needsRunes() {
		s.feedRunes(p)
	}
	if s.text != nil {
		s.text.Write(p)
	}
}

func (s *scanner) feedBytes(p []byte) {
	for _, b := range p {
		if b == '\n' {
			s.counts.Lines++
		}
		if isSpace(b) {
			s.inWord = false
		} else if !s.inWord {
			s.inWord = true
			s.counts.Words++
		}
	}
}

func (s *scanner) feedRunes(p []byte) {
	for s.npending > 0 && len(p) > 0 {
		s.pending[s.npending] = p[0]
		s.npending++
		p = p[1:]
		if !utf8.FullRune(s.pending[:s.npending]) {
			continue
		}
		r, size := utf8.DecodeRune(s.pending[:s.npending])
		s.char(r)
		var rest [utf8.UTFMax]byte
		n := copy(rest[:], s.pending[size:s.npending])
		s.npending = 0
		s.decode(rest[:n])
	}
	s.decode(p)
}

// decode consumes complete runes from p and parks a trailing partial
// sequence in pending.
func (s *scanner) decode(p []byte) {
	for len(p) > 0 {
		if !utf8.FullRune(p) {
			s.npending = copy(s.pending[:], p)
			return
		}
		r, size := utf8.DecodeRune(p)
		s.char(r)
		p = p[size:]
	}
}

func (s *scanner) char(r rune) {
	s.counts.Chars++
	switch r {
	case '\n', '\r', '\f':
		s.endLine()
	case '\t':
		s.linePos += tabWidth - s.linePos%tabWidth
	default:
		s.linePos += int64(runewidth.RuneWidth(r))
	}
}

func (s *scanner) endLine() {
	if s.linePos > s.counts.MaxLineLength {
		s.counts.MaxLineLength = s.linePos
	}
	s.linePos = 0
}

// finish flushes a truncated trailing sequence, one character per byte,
// and zeroes counts that were only computed as a side effect.
func (s *scanner) finish() {
	if s.modes.needsRunes() {
		for i := 0; i < s.npending; i++ {
			s.char(utf8.RuneError)
		}
		s.npending = 0
		s.endLine()
	}
	if s.modes.Has(ModeBytes) {
		s.counts.Bytes = s.read
	}
	if !s.modes.Has(ModeLines) {
		s.counts.Lines = 0
	}
	if !s.modes.Has(ModeWords) {
		s.counts.Words = 0
	}
	if !s.modes.Has(ModeChars) {
		s.counts.Chars = 0
	}
	if !s.modes.Has(ModeMaxLineLength) {
		s.counts.MaxLineLength = 0
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
