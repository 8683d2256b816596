// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dbpia

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractAbstractFromContainer(t *testing.T) {
	page := `<html><body>
		<div class="header">메뉴</div>
		<div class="abstractTxt">
			본 연구는 이어폰 줄꼬임 현상을 다룬다.
		</div>
	</body></html>`

	got, err := extractAbstract(strings.NewReader(page), "https://www.dbpia.co.kr/journal/1")
	if err != nil {
		t.Fatalf("extractAbstract() error = %v", err)
	}
	if got != "본 연구는 이어폰 줄꼬임 현상을 다룬다." {
		t.Errorf("extractAbstract() = %q", got)
	}
}

func TestExtractAbstractMultiClassAttribute(t *testing.T) {
	page := `<html><body><p class="txt abstractTxt bold">초록 내용</p></body></html>`

	got, err := extractAbstract(strings.NewReader(page), "https://example.com")
	if err != nil {
		t.Fatalf("extractAbstract() error = %v", err)
	}
	if got != "초록 내용" {
		t.Errorf("extractAbstract() = %q", got)
	}
}

func TestExtractAbstractPlaceholder(t *testing.T) {
	page := `<html><body><div class="abstractTxt">등록된 정보가 없습니다.</div></body></html>`

	got, err := extractAbstract(strings.NewReader(page), "https://example.com")
	if err != nil {
		t.Fatalf("extractAbstract() error = %v", err)
	}
	if got != "" {
		t.Errorf("placeholder text must count as no abstract, got %q", got)
	}
}

func TestExtractAbstractPlaceholderSkipsFallback(t *testing.T) {
	// When the abstract container exists but holds the placeholder, the
	// page is discarded; surrounding article text must never stand in
	// for the abstract.
	page := `<html><body>
		<article>
			<h1>논문 상세</h1>
			<p>` + strings.Repeat("본문 텍스트가 길게 이어진다 ", 60) + `</p>
			<div class="abstractTxt">등록된 정보가 없습니다.</div>
		</article>
	</body></html>`

	got, err := extractAbstract(strings.NewReader(page), "https://example.com/detail/3")
	if err != nil {
		t.Fatalf("extractAbstract() error = %v", err)
	}
	if got != "" {
		t.Errorf("placeholder page must yield no abstract, got %q", got)
	}
}

func TestExtractAbstractEmptyContainer(t *testing.T) {
	page := `<html><body><div class="abstractTxt">   </div></body></html>`

	got, err := extractAbstract(strings.NewReader(page), "https://example.com")
	if err != nil {
		t.Fatalf("extractAbstract() error = %v", err)
	}
	if got != "" {
		t.Errorf("blank container must count as no abstract, got %q", got)
	}
}

func TestExtractAbstractReadabilityFallback(t *testing.T) {
	// No abstractTxt container anywhere; the fallback should still pull
	// the main article text.
	page := `<html><head><title>논문 상세</title></head><body>
		<article>
			<h1>줄꼬임의 역학</h1>
			<p>이 페이지는 알려진 초록 컨테이너 없이 본문만 제공한다. 본문은 충분히 길어야
			리더빌리티 추출기가 기사로 인식하므로 문장을 몇 개 더 채워 넣는다. 줄꼬임은
			가방 속에서 무작위 진동을 겪는 이어폰 줄에서 관찰된다. 매듭 이론의 관점에서
			교차 수가 증가할수록 풀기가 어려워진다.</p>
		</article>
	</body></html>`

	got, err := extractAbstract(strings.NewReader(page), "https://example.com/detail/1")
	if err != nil {
		t.Fatalf("extractAbstract() error = %v", err)
	}
	if !strings.Contains(got, "줄꼬임") {
		t.Errorf("fallback extraction lost the body text: %q", got)
	}
}

func TestExtractAbstractReadabilityCutKeepsRunesWhole(t *testing.T) {
	// One long Korean paragraph with no newline anywhere near the cut:
	// the length cap must land on a rune boundary, not mid-character.
	body := strings.Repeat("진동하는 이어폰 줄은 가방 안에서 스스로 매듭을 만든다 ", 120)
	page := `<html><head><title>논문 상세</title></head><body>
		<article><h1>줄꼬임</h1><p>` + body + `</p></article>
	</body></html>`

	got, err := extractAbstract(strings.NewReader(page), "https://example.com/detail/2")
	if err != nil {
		t.Fatalf("extractAbstract() error = %v", err)
	}
	if got == "" {
		t.Fatal("fallback extraction returned nothing")
	}
	if len(got) > 2000 {
		t.Errorf("abstract is %d bytes, want at most 2000", len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("abstract contains invalid UTF-8 near the cut: %q", got[len(got)-12:])
	}
}
