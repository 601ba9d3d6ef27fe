package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// options holds the count-selection flags. They are never read from config:
// the mode set depends only on the command line.
type options struct {
	bytes         bool
	lines         bool
	words         bool
	chars         bool
	maxLineLength bool
	tokens        bool

	cfgFile string
}

// Invocation is what the command line resolves to.
type Invocation struct {
	Modes Mode
	Path  string // "" or "-" means standard input
}

func (o *options) modes() Mode {
	var m Mode
	if o.bytes {
		m |= ModeBytes
	}
	if o.lines {
		m |= ModeLines
	}
	if o.words {
		m |= ModeWords
	}
	if o.chars {
		m |= ModeChars
	}
	if o.maxLineLength {
		m |= ModeMaxLineLength
	}
	if o.tokens {
		m |= ModeTokens
	}
	if m == 0 {
		return DefaultModes
	}
	return m
}

func (o *options) resolve(args []string) Invocation {
	inv := Invocation{Modes: o.modes()}
	if len(args) > 0 {
		inv.Path = args[0]
	}
	return inv
}

// atMostOneFile accepts zero or one positional argument.
func atMostOneFile(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return &InvalidArgumentError{
			Arg: args[1],
			Err: errors.New("extra operand, only one FILE may be given"),
		}
	}
	return nil
}

// flagError turns a pflag parse failure into an InvalidArgumentError.
func flagError(cmd *cobra.Command, err error) error {
	return &InvalidArgumentError{Arg: offendingFlag(err.Error()), Err: err}
}

// offendingFlag extracts the flag named in a pflag error message, e.g.
// "unknown shorthand flag: 'x' in -lx" yields "-x".
func offendingFlag(msg string) string {
	const shorthand = "unknown shorthand flag: '"
	if rest, ok := strings.CutPrefix(msg, shorthand); ok {
		if i := strings.IndexByte(rest, '\''); i > 0 {
			return "-" + rest[:i]
		}
	}
	for _, prefix := range []string{"unknown flag: ", "bad flag syntax: ", "flag needs an argument: "} {
		if rest, ok := strings.CutPrefix(msg, prefix); ok {
			if i := strings.LastIndex(rest, " in "); i >= 0 {
				return rest[i+len(" in "):]
			}
			return rest
		}
	}
	if _, after, ok := strings.Cut(msg, " for \""); ok {
		if i := strings.IndexByte(after, '"'); i > 0 {
			return after[:i]
		}
	}
	return ""
}
