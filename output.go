package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// formatCounts renders the selected counts in wc column order: lines, words,
// chars, bytes, max line length, tokens. Columns are separated by a single
// space and right-aligned to width when width > 0. A non-empty name is
// appended as the last column.
func formatCounts(c Counts, modes Mode, name string, width int) string {
	var builder strings.Builder
	for _, col := range columns {
		if !modes.Has(col.mode) {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		v := col.value(c)
		if width > 0 {
			builder.WriteString(fmt.Sprintf("%*d", width, v))
		} else {
			builder.WriteString(strconv.FormatInt(v, 10))
		}
	}
	if name != "" {
		builder.WriteByte(' ')
		builder.WriteString(name)
	}
	return builder.String()
}

// displayName is the file column for path; standard input has none.
func displayName(path string) string {
	if isStdin(path) {
		return ""
	}
	return path
}

// emit writes line to stdout and, when requested, copies it to the
// clipboard. A clipboard failure only produces a warning.
func emit(stdout, stderr io.Writer, line string, copyToClipboard bool) error {
	if _, err := fmt.Fprintln(stdout, line); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	if copyToClipboard {
		if err := writeClipboard(line); err != nil {
			fmt.Fprintf(stderr, "Warning: could not copy output to clipboard: %v\n", err)
		}
	}
	return nil
}
