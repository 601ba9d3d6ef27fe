package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config keys. Flags use the dashed form, viper and the config file use
// snake_case.
const (
	keyWidth         = "width"
	keyClipboard     = "clipboard"
	keyVerbose       = "verbose"
	keyTokenizer     = "tokenizer"
	keyModel         = "model"
	keyTokenizerFile = "tokenizer_file"
)

// config is the resolved ambient configuration: defaults < config file <
// CCWC_* environment < flags.
type config struct {
	Width     int
	Clipboard bool
	Verbose   bool
	Tokenizer TokenizerConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyWidth, 0)
	v.SetDefault(keyClipboard, false)
	v.SetDefault(keyVerbose, false)
	v.SetDefault(keyTokenizer, tokenizerTiktoken)
	v.SetDefault(keyModel, "")
	v.SetDefault(keyTokenizerFile, "")
}

// initConfig reads in the config file and environment variables if set.
// It returns the path of the config file used, if any.
func initConfig(v *viper.Viper, cfgFile string, stderr io.Writer) string {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ccwc"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix("CCWC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			fmt.Fprintf(stderr, "Warning: error reading config file: %s\n", err)
		}
		return ""
	}
	return v.ConfigFileUsed()
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		Width:     v.GetInt(keyWidth),
		Clipboard: v.GetBool(keyClipboard),
		Verbose:   v.GetBool(keyVerbose),
		Tokenizer: TokenizerConfig{
			Type:  v.GetString(keyTokenizer),
			Model: v.GetString(keyModel),
			File:  v.GetString(keyTokenizerFile),
		},
	}
	if cfg.Width < 0 {
		return config{}, &InvalidArgumentError{
			Arg: "--width",
			Err: fmt.Errorf("width must not be negative, got %d", cfg.Width),
		}
	}
	return cfg, nil
}
