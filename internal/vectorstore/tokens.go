// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorstore

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter measures text length in model tokens. The context budget in
// ContextWithinBudget is expressed in tokens of the generation model, so
// the counter must match its tokenizer.
type TokenCounter interface {
	Count(text string) int
}

// tiktokenCounter counts tokens with the BPE encoding of a named model.
type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTokenCounter returns a TokenCounter for model (e.g.
// "text-embedding-3-small"). Unknown models fall back to the cl100k_base
// encoding rather than failing: an approximate budget is better than none.
func NewTokenCounter(model string) (TokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("loading token encoding: %w", err)
		}
	}
	return &tiktokenCounter{encoding: enc}, nil
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}
