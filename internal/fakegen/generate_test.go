// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fakegen

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fakepaperia/fakepaperia/internal/openai"
	"github.com/fakepaperia/fakepaperia/pkg/types"
)

type mockRetriever struct {
	papers     []types.Paper
	err        error
	gotK       int
	gotBudget  int
	contextStr string
}

func (m *mockRetriever) SearchSimilar(_ context.Context, _ string, k int) ([]types.Paper, error) {
	m.gotK = k
	return m.papers, m.err
}

func (m *mockRetriever) ContextWithinBudget(_ []types.Paper, maxTokens int) string {
	m.gotBudget = maxTokens
	return m.contextStr
}

type mockChat struct {
	reply string
	err   error
	got   openai.ChatRequest
}

func (m *mockChat) Chat(_ context.Context, req openai.ChatRequest) (string, error) {
	m.got = req
	return m.reply, m.err
}

func TestGenerate(t *testing.T) {
	retriever := &mockRetriever{
		papers:     []types.Paper{{Title: "유사 논문", Abstract: "초록."}},
		contextStr: "제목: 유사 논문\n핵심 내용: 초록.\n",
	}
	chat := &mockChat{reply: fullReply}

	paper, err := Generate(context.Background(), retriever, chat, "gpt-4.1-nano", "이어폰 줄꼬임", 4096)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if retriever.gotK != 5 {
		t.Errorf("retrieval k = %d, want 5", retriever.gotK)
	}
	if retriever.gotBudget != 2048 {
		t.Errorf("context budget = %d, want maxTokens/2", retriever.gotBudget)
	}
	if chat.got.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", chat.got.Temperature)
	}
	if chat.got.MaxTokens != 4096 {
		t.Errorf("max tokens = %d", chat.got.MaxTokens)
	}

	prompt := chat.got.Messages[1].Content
	if !strings.Contains(prompt, "이어폰 줄꼬임") {
		t.Error("prompt should embed the query")
	}
	if !strings.Contains(prompt, "제목: 유사 논문") {
		t.Error("prompt should embed the assembled context")
	}
	if !strings.Contains(prompt, "## 참고문헌") {
		t.Error("prompt should carry the section template")
	}

	if paper.Title != "이어폰 줄꼬임의 심리학적 기제" {
		t.Errorf("title = %q", paper.Title)
	}
}

func TestGenerateRetrievalErrorPropagates(t *testing.T) {
	retriever := &mockRetriever{err: fmt.Errorf("embed down")}
	if _, err := Generate(context.Background(), retriever, &mockChat{}, "m", "q", 100); err == nil {
		t.Fatal("Generate() should propagate retrieval errors")
	}
}

func TestGenerateChatErrorPropagates(t *testing.T) {
	chat := &mockChat{err: fmt.Errorf("api down")}
	if _, err := Generate(context.Background(), &mockRetriever{}, chat, "m", "q", 100); err == nil {
		t.Fatal("Generate() should propagate chat errors")
	}
}

func TestGenerateMalformedReplyStillComplete(t *testing.T) {
	chat := &mockChat{reply: "아무 구조도 없는 텍스트"}
	paper, err := Generate(context.Background(), &mockRetriever{}, chat, "m", "q", 100)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for field, got := range map[string]string{
		"title":      paper.Title,
		"abstract":   paper.Abstract,
		"references": paper.References,
	} {
		if got == "" {
			t.Errorf("%s empty on malformed reply", field)
		}
	}
}
