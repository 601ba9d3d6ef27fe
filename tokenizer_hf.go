//go:build huggingface

package main

import (
	"fmt"

	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	"go.uber.org/zap"
)

// --- HuggingFace (sugarme) Wrapper ---

type HFTokenizerWrapper struct {
	htk *hf.Tokenizer
	log *zap.Logger
}

func (w *HFTokenizerWrapper) CountTokens(text string) int {
	if w.htk == nil {
		return 0
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		w.log.Warn("huggingface tokenizer failed to encode text", zap.Error(err))
		return 0
	}
	return len(en.Tokens)
}

func (w *HFTokenizerWrapper) Close() {}

func loadHuggingFace(cfg TokenizerConfig, log *zap.Logger) (Tokenizer, error) {
	if cfg.File != "" {
		ttk, err := pretrained.FromFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", cfg.File, err)
		}
		return &HFTokenizerWrapper{htk: ttk, log: log}, nil
	}

	model := cfg.Model
	if model == "" {
		model = defaultHFModel
	}
	log.Debug("loading huggingface tokenizer (this may download files)", zap.String("model", model))

	configFilePath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}
	ttk, err := pretrained.FromFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configFilePath, err)
	}
	return &HFTokenizerWrapper{htk: ttk, log: log}, nil
}
