// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fakegen fabricates a satirical academic paper from the papers
// most similar to a query: it retrieves context from the vector store,
// prompts the chat model with a fixed section template, and parses the
// free-text reply into a GeneratedPaper.
package fakegen

import (
	"context"
	"fmt"

	"github.com/fakepaperia/fakepaperia/internal/openai"
	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// retrievalK is how many similar papers feed the generation context.
const retrievalK = 5

// Retriever is the slice of the vector store the generator needs.
type Retriever interface {
	SearchSimilar(ctx context.Context, query string, k int) ([]types.Paper, error)
	ContextWithinBudget(papers []types.Paper, maxTokens int) string
}

// ChatBackend abstracts the chat-completion API so tests can supply a mock.
type ChatBackend interface {
	Chat(ctx context.Context, req openai.ChatRequest) (string, error)
}

const systemPrompt = "You are a professional academic researcher with a good sense of humor. Write a detailed academic paper in Korean with fun references."

const promptTemplate = `다음은 주제 '%s'와 관련된 논문 스타일의 텍스트입니다.
이를 바탕으로 **새롭고 창의적인 학술 논문**을 작성해주세요.
논문은 다음 마크다운 형식을 따라야 합니다:

# [논문 제목]

## 초록
목적, 방법, 결과, 결론을 요약 (200~300자, 학술적 톤 유지)

## 1. 서론
연구의 배경과 동기를 설명하되, 현실과 살짝 엉뚱한 세계관이 섞이도록

## 2. 이론적 배경
실제 연구를 기반으로 하되, 유쾌한 문헌 예시나 비유 포함 가능

## 3. 연구 방법
현실적인 연구 방법을 사용하되, 다소 엉뚱한 요소를 함께 기술할 수 있음

## 4. 연구 결과
실제 분석 결과처럼 보이게 작성하되, 독특한 인사이트나 유머도 반영

## 5. 결론
의의와 한계를 정리하고, 향후 연구 방향을 제시

## 참고문헌
연예인, 애니메이션 캐릭터 등을 이용하여 가상의 유쾌하고 독특한 문헌들을 작성해주세요

참고 논문의 핵심 내용:
%s

지침:
1. 실제로 연구 가능할 법한 주제를 선택하되, 창의적이고 엉뚱한 접근도 허용됩니다
2. 현실에 기반한 방법론을 사용하되, 엉뚱한 요소와 혼합해 표현해도 좋습니다
3. 전체적으로는 학술적인 어조를 유지하되, 적절한 위트나 비유를 포함할 수 있습니다
4. 참고문헌은 논문의 분위기를 반영하며, 캐릭터, 음식점, 연예인, 밈 등을 활용해 가상으로 구성해주세요

위 형식에 맞춰 새롭고 독창적인 논문을 작성해주세요.
각 섹션은 반드시 내용을 포함해야 하며, 섹션 제목과 내용을 명확히 구분해주세요.`

// Generate retrieves the papers most similar to query from store, builds
// a context bounded to half of maxTokens, and asks the chat model for a
// fabricated paper following the section template. The reply is parsed
// into a GeneratedPaper whose missing sections default to placeholders.
// Retrieval and chat errors propagate.
func Generate(ctx context.Context, store Retriever, chat ChatBackend, model, query string, maxTokens int) (types.GeneratedPaper, error) {
	similar, err := store.SearchSimilar(ctx, query, retrievalK)
	if err != nil {
		return types.GeneratedPaper{}, fmt.Errorf("retrieving similar papers: %w", err)
	}

	contextText := store.ContextWithinBudget(similar, maxTokens/2)

	reply, err := chat.Chat(ctx, openai.ChatRequest{
		Model: model,
		Messages: []openai.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(promptTemplate, query, contextText)},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return types.GeneratedPaper{}, fmt.Errorf("generating paper: %w", err)
	}

	return ParseSections(reply), nil
}
