//go:build !huggingface

package main

import (
	"fmt"

	"go.uber.org/zap"
)

// The HuggingFace tokenizer package creates and announces a cache directory
// from its init, so it is only linked into builds tagged huggingface.
func loadHuggingFace(cfg TokenizerConfig, log *zap.Logger) (Tokenizer, error) {
	return nil, fmt.Errorf("unsupported tokenizer type: %s. Rebuild with -tags huggingface", cfg.Type)
}
