// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reaction produces a one-line comedic reaction to a generated
// paper and maps it to an emotion keyword for a GIF lookup.
package reaction

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/fakepaperia/fakepaperia/internal/openai"
)

// ChatBackend abstracts the chat-completion API so tests can supply a mock.
type ChatBackend interface {
	Chat(ctx context.Context, req openai.ChatRequest) (string, error)
}

const systemPrompt = "You are a witty academic reviewer who loves to make funny reactions to papers."

const promptTemplate = `다음 논문의 제목과 초록을 읽고, 이에 대한 재미있고 위트있는 리액션을 한 문장으로 만들어주세요.
재미있거나, 황당하거나, 의아하거나, 놀라운 반응이면 좋습니다.

제목: %s
초록: %s

예시:
- "도대체 뭘 읽은 거지?"
- "이게 진짜 논문이라고요?"
- "교수님이 보시면 기절하실 것 같아요..."
- "이런 연구를 하다니 당신은 천재인가요?"

위와 같은 스타일로, 논문을 읽은 후의 재미있는 리액션을 한 문장으로 만들어주세요.
단, 반드시 한국어로 작성해주세요.`

// React asks the chat model for a one-sentence reaction to the paper's
// title and abstract, with surrounding whitespace and quotation marks
// stripped. Errors propagate; the caller decides whether a reaction is
// essential.
func React(ctx context.Context, chat ChatBackend, model, title, abstract string) (string, error) {
	reply, err := chat.Chat(ctx, openai.ChatRequest{
		Model: model,
		Messages: []openai.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(promptTemplate, title, abstract)},
		},
		Temperature: 0.8,
		MaxTokens:   100,
	})
	if err != nil {
		return "", fmt.Errorf("generating reaction: %w", err)
	}
	return strings.Trim(strings.TrimSpace(reply), `"`), nil
}

// EmotionRule maps a Korean substring to an English emotion keyword.
type EmotionRule struct {
	Match   string `yaml:"match"`
	Emotion string `yaml:"emotion"`
}

// defaultEmotion is used when no rule matches a reaction.
const defaultEmotion = "confused"

// defaultEmotionTable is the built-in mapping. Order matters: the first
// rule whose substring appears in the reaction wins.
var defaultEmotionTable = []EmotionRule{
	{"뭘", "confused"},
	{"기절", "faint"},
	{"천재", "genius"},
	{"놀랍", "surprised"},
	{"황당", "shocked"},
	{"웃", "laugh"},
	{"대박", "amazing"},
	{"미쳤", "crazy"},
	{"헐", "omg"},
	{"어이", "speechless"},
}

// EmotionTable resolves reactions to GIF search keywords.
type EmotionTable struct {
	rules []EmotionRule
}

// DefaultEmotionTable returns the built-in table.
func DefaultEmotionTable() *EmotionTable {
	return &EmotionTable{rules: defaultEmotionTable}
}

// LoadEmotionTable reads a YAML rule list from path. The file replaces
// the built-in table entirely so deployments control rule priority.
func LoadEmotionTable(path string) (*EmotionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading emotion table: %w", err)
	}
	var rules []EmotionRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing emotion table: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("emotion table %s is empty", path)
	}
	return &EmotionTable{rules: rules}, nil
}

// EmotionFor returns the emotion keyword of the first rule whose
// substring appears in reaction, or "confused" when none match.
func (t *EmotionTable) EmotionFor(reaction string) string {
	for _, rule := range t.rules {
		if strings.Contains(reaction, rule.Match) {
			return rule.Emotion
		}
	}
	return defaultEmotion
}
