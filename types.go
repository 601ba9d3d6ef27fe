package main

import "strings"

// Mode selects which counts are computed. Modes combine as a bit set.
type Mode uint8

const (
	ModeBytes Mode = 1 << iota
	ModeLines
	ModeWords
	ModeChars
	ModeMaxLineLength
	ModeTokens
)

// DefaultModes is used when no count flag is given.
const DefaultModes = ModeLines | ModeWords | ModeBytes

// Has reports whether every mode in x is selected.
func (m Mode) Has(x Mode) bool {
	return m&x == x
}

// needsRunes reports whether the scan has to decode UTF-8.
func (m Mode) needsRunes() bool {
	return m&(ModeChars|ModeMaxLineLength) != 0
}

func (m Mode) String() string {
	if m == 0 {
		return "none"
	}
	var names []string
	for _, c := range columns {
		if m.Has(c.mode) {
			names = append(names, c.name)
		}
	}
	return strings.Join(names, ",")
}

// Counts holds the result of one scan. Fields for unselected modes stay zero.
type Counts struct {
	Lines         int64
	Words         int64
	Chars         int64
	Bytes         int64
	MaxLineLength int64
	Tokens        int64
}

// column describes one output column, in print order.
type column struct {
	mode  Mode
	name  string
	value func(Counts) int64
}

var columns = []column{
	{ModeLines, "lines", func(c Counts) int64 { return c.Lines }},
	{ModeWords, "words", func(c Counts) int64 { return c.Words }},
	{ModeChars, "chars", func(c Counts) int64 { return c.Chars }},
	{ModeBytes, "bytes", func(c Counts) int64 { return c.Bytes }},
	{ModeMaxLineLength, "max-line-length", func(c Counts) int64 { return c.MaxLineLength }},
	{ModeTokens, "tokens", func(c Counts) int64 { return c.Tokens }},
}
