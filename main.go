package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is the application version, set via ldflags.
var version string = "dev"

const longHelp = `Print newline, word, and byte counts for FILE. A word is a non-zero-length
sequence of non-whitespace bytes delimited by white space.

With no FILE, or when FILE is -, read standard input.

The options below may be used to select which counts are printed, always in
the following order: newline, word, character, byte, maximum line length,
tokens. With no count option, newline, word and byte counts are printed.

Settings other than the count options may also come from
$HOME/.config/ccwc/config.toml (or ./config.toml) and CCWC_* environment
variables, e.g. CCWC_WIDTH=7.`

// newRootCmd builds the ccwc command with its own flag set and config state.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	v := viper.New()
	var cfg config
	log := zap.NewNop()

	rootCmd := &cobra.Command{
		Use:           "ccwc [FILE]",
		Short:         "ccwc - print newline, word, and byte counts for a file",
		Long:          longHelp,
		Version:       version,
		Args:          atMostOneFile,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			used := initConfig(v, opts.cfgFile, cmd.ErrOrStderr())
			var err error
			cfg, err = loadConfig(v)
			if err != nil {
				return err
			}
			log = newLogger(cfg.Verbose, cmd.ErrOrStderr())
			if used != "" {
				log.Debug("using config file", zap.String("path", used))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = log.Sync() }()

			inv := opts.resolve(args)
			log.Debug("resolved invocation", zap.Stringer("modes", inv.Modes), zap.String("path", inv.Path))

			// Open before loading a tokenizer so a bad path fails without a download.
			in, name, err := openInput(inv.Path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			var tokenizer Tokenizer
			if inv.Modes.Has(ModeTokens) {
				tokenizer, err = loadTokenizer(cfg.Tokenizer, log)
				if err != nil {
					return fmt.Errorf("error initializing tokenizer: %w", err)
				}
				defer tokenizer.Close()
			}

			counts, err := NewCounter(inv.Modes, tokenizer, log).count(in, name)
			if err != nil {
				return err
			}

			line := formatCounts(counts, inv.Modes, displayName(inv.Path), cfg.Width)
			return emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), line, cfg.Clipboard)
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(flagError)

	flags := rootCmd.Flags()

	// Counts
	flags.BoolVarP(&opts.bytes, "bytes", "c", false, "Print the byte counts")
	flags.BoolVarP(&opts.chars, "chars", "m", false, "Print the character counts")
	flags.BoolVarP(&opts.lines, "lines", "l", false, "Print the newline counts")
	flags.BoolVarP(&opts.words, "words", "w", false, "Print the word counts")
	flags.BoolVarP(&opts.maxLineLength, "max-line-length", "L", false, "Print the maximum display width")
	flags.BoolVar(&opts.tokens, "tokens", false, "Print the token count of the input")

	// Output
	flags.Int(keyWidth, 0, "Right-align every count to this width (0 separates counts by a single space)")
	flags.Bool(keyClipboard, false, "Also copy the output to the clipboard")
	flags.Bool(keyVerbose, false, "Log diagnostics to standard error")

	// Token Counting
	flags.String(keyTokenizer, tokenizerTiktoken, "Tokenizer to use: tiktoken or huggingface")
	flags.String(keyModel, "", "Model name for tokenizer (e.g., gpt-4o, gpt2)")
	flags.String("tokenizer-file", "", "Path to local tokenizer file")

	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/ccwc/config.toml)")

	_ = v.BindPFlag(keyWidth, flags.Lookup(keyWidth))
	_ = v.BindPFlag(keyClipboard, flags.Lookup(keyClipboard))
	_ = v.BindPFlag(keyVerbose, flags.Lookup(keyVerbose))
	_ = v.BindPFlag(keyTokenizer, flags.Lookup(keyTokenizer))
	_ = v.BindPFlag(keyModel, flags.Lookup(keyModel))
	_ = v.BindPFlag(keyTokenizerFile, flags.Lookup("tokenizer-file"))
	setDefaults(v)

	return rootCmd
}

// run executes ccwc with args and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "ccwc: %v\n", err)
		var argErr *InvalidArgumentError
		if errors.As(err, &argErr) {
			fmt.Fprintln(stderr, "Try 'ccwc --help' for more information.")
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
