package main

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// Tokenizer is an interface for different tokenizer implementations.
type Tokenizer interface {
	CountTokens(text string) int
	Close()
}

// --- Tiktoken Wrapper ---

type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

func (w *TiktokenWrapper) Close() {}

// --- Tokenizer Loading Logic ---

const (
	tokenizerTiktoken    = "tiktoken"
	tokenizerHuggingFace = "huggingface"

	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

// TokenizerConfig selects and locates a tokenizer.
type TokenizerConfig struct {
	Type  string // tiktoken or huggingface
	Model string
	File  string // local tokenizer.json, huggingface only
}

// loadTokenizer returns a tokenizer for cfg. Loading may download encoding
// files on first use.
func loadTokenizer(cfg TokenizerConfig, log *zap.Logger) (Tokenizer, error) {
	log.Debug("initializing tokenizer",
		zap.String("type", cfg.Type),
		zap.String("model", cfg.Model),
		zap.String("file", cfg.File),
	)

	switch strings.ToLower(cfg.Type) {
	case "", tokenizerTiktoken:
		return loadTiktoken(cfg.Model, log)
	case tokenizerHuggingFace:
		return loadHuggingFace(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use '%s' or '%s'", cfg.Type, tokenizerTiktoken, tokenizerHuggingFace)
	}
}

func loadTiktoken(model string, log *zap.Logger) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		log.Warn("tiktoken model not found, falling back to default",
			zap.String("model", model),
			zap.String("default", defaultTiktokenModel),
			zap.Error(err),
		)
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}
