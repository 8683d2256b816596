// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reaction

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fakepaperia/fakepaperia/internal/openai"
)

type mockChat struct {
	reply string
	err   error
	got   openai.ChatRequest
}

func (m *mockChat) Chat(_ context.Context, req openai.ChatRequest) (string, error) {
	m.got = req
	return m.reply, m.err
}

func TestReactStripsQuotesAndWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"plain", "이게 진짜 논문이라고요?", "이게 진짜 논문이라고요?"},
		{"quoted", `"도대체 뭘 읽은 거지?"`, "도대체 뭘 읽은 거지?"},
		{"padded", "  헐...  ", "헐..."},
		{"quoted and padded", "  \"대박이네요\"\n", "대박이네요"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chat := &mockChat{reply: tc.reply}
			got, err := React(context.Background(), chat, "gpt-4.1-nano", "제목", "초록")
			if err != nil {
				t.Fatalf("React: %v", err)
			}
			if got != tc.want {
				t.Errorf("reaction = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReactRequestShape(t *testing.T) {
	chat := &mockChat{reply: "웃기네요"}
	if _, err := React(context.Background(), chat, "gpt-4.1-nano", "양자 김치", "김치의 양자적 특성을 다룬다."); err != nil {
		t.Fatalf("React: %v", err)
	}
	if chat.got.Temperature != 0.8 {
		t.Errorf("temperature = %v, want 0.8", chat.got.Temperature)
	}
	if chat.got.MaxTokens != 100 {
		t.Errorf("max tokens = %d, want 100", chat.got.MaxTokens)
	}
	if len(chat.got.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(chat.got.Messages))
	}
	user := chat.got.Messages[1].Content
	for _, want := range []string{"양자 김치", "김치의 양자적 특성을 다룬다."} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}
}

func TestReactPropagatesErrors(t *testing.T) {
	chat := &mockChat{err: errors.New("rate limited")}
	if _, err := React(context.Background(), chat, "gpt-4.1-nano", "t", "a"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestEmotionForDefaultTable(t *testing.T) {
	table := DefaultEmotionTable()
	tests := []struct {
		reaction string
		want     string
	}{
		{"도대체 뭘 읽은 거지?", "confused"},
		{"교수님이 보시면 기절하실 듯", "faint"},
		{"당신은 천재인가요?", "genius"},
		{"정말 놀랍네요", "surprised"},
		{"황당하기 그지없다", "shocked"},
		{"너무 웃겨요", "laugh"},
		{"대박 사건", "amazing"},
		{"미쳤다 진짜", "crazy"},
		{"헐...", "omg"},
		{"어이가 없네", "speechless"},
		{"그냥 평범한 감상입니다", "confused"},
	}
	for _, tc := range tests {
		if got := table.EmotionFor(tc.reaction); got != tc.want {
			t.Errorf("EmotionFor(%q) = %q, want %q", tc.reaction, got, tc.want)
		}
	}
}

func TestEmotionForFirstRuleWins(t *testing.T) {
	// "뭘" appears before "기절" in the table, so it takes priority even
	// when both substrings are present.
	table := DefaultEmotionTable()
	if got := table.EmotionFor("뭘 봐도 기절할 것 같다"); got != "confused" {
		t.Errorf("EmotionFor = %q, want %q", got, "confused")
	}
}

func TestLoadEmotionTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emotions.yaml")
	content := "- match: 폭소\n  emotion: laugh\n- match: 충격\n  emotion: shocked\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadEmotionTable(path)
	if err != nil {
		t.Fatalf("LoadEmotionTable: %v", err)
	}
	if got := table.EmotionFor("폭소가 터졌다"); got != "laugh" {
		t.Errorf("EmotionFor = %q, want %q", got, "laugh")
	}
	// Custom tables replace the defaults entirely.
	if got := table.EmotionFor("천재인데?"); got != "confused" {
		t.Errorf("EmotionFor = %q, want fallback %q", got, "confused")
	}
}

func TestLoadEmotionTableErrors(t *testing.T) {
	if _, err := LoadEmotionTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEmotionTable(empty); err == nil {
		t.Error("expected error for empty table")
	}
}
