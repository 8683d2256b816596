// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keyword turns a free-text research query into the 2-3 salient
// search terms the DBpia API is queried with.
package keyword

import (
	"context"
	"fmt"
	"strings"

	"github.com/fakepaperia/fakepaperia/internal/openai"
)

// ChatBackend abstracts the chat-completion API so tests can supply a mock.
type ChatBackend interface {
	Chat(ctx context.Context, req openai.ChatRequest) (string, error)
}

const systemPrompt = "You are a helpful research assistant. Extract only the most important 2-3 keywords from the given research topic."

const promptTemplate = `다음 연구 주제에서 가장 중요한 키워드 2-3개만 추출해주세요.
키워드는 연구의 핵심 주제를 나타내는 명사여야 합니다.
각 키워드는 쉼표로 구분하여 한 줄로 작성해주세요.

연구 주제: %s`

// Extract asks the chat model for the most important keywords of query and
// returns them trimmed, empties dropped. A low temperature keeps the reply
// close to a plain comma-separated list. Transport and API errors propagate
// uncaught; the caller treats an empty list as "no results".
func Extract(ctx context.Context, chat ChatBackend, model, query string) ([]string, error) {
	reply, err := chat.Chat(ctx, openai.ChatRequest{
		Model: model,
		Messages: []openai.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(promptTemplate, query)},
		},
		Temperature: 0.3,
		MaxTokens:   100,
	})
	if err != nil {
		return nil, fmt.Errorf("extracting keywords: %w", err)
	}

	var keywords []string
	for _, part := range strings.Split(reply, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords, nil
}

// Extractor binds a chat backend and model so callers can hold one
// value satisfying the aggregator's extractor interface.
type Extractor struct {
	Chat  ChatBackend
	Model string
}

// Extract implements the single-argument form over the bound backend.
func (e *Extractor) Extract(ctx context.Context, query string) ([]string, error) {
	return Extract(ctx, e.Chat, e.Model, query)
}
