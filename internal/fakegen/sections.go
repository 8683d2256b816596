// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fakegen

import (
	"fmt"
	"strings"

	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// placeholderFormat fills any section the model reply did not produce, so
// a GeneratedPaper always has all eight fields populated.
const placeholderFormat = "%s 섹션이 비어있습니다. 다시 시도해주세요."

// sectionName identifies one of the seven "##" sections (the title is
// handled separately).
type sectionName int

const (
	secNone sectionName = iota
	secAbstract
	secIntroduction
	secBackground
	secMethod
	secResults
	secConclusion
	secReferences
)

// headingRules maps heading prefixes to sections. Each section matches
// either its numbered template heading or its Korean keyword, so replies
// that drop the numbering still parse. Order within the table follows the
// template but carries no meaning: matching is per-line.
var headingRules = []struct {
	prefix  string
	section sectionName
}{
	{"## 초록", secAbstract},
	{"## 1.", secIntroduction},
	{"## 서론", secIntroduction},
	{"## 2.", secBackground},
	{"## 이론", secBackground},
	{"## 3.", secMethod},
	{"## 연구 방법", secMethod},
	{"## 4.", secResults},
	{"## 연구 결과", secResults},
	{"## 5.", secConclusion},
	{"## 결론", secConclusion},
	{"## 참고문헌", secReferences},
}

// fieldKeys are the placeholder names, matching the GeneratedPaper JSON keys.
var fieldKeys = map[sectionName]string{
	secAbstract:     "abstract",
	secIntroduction: "introduction",
	secBackground:   "background",
	secMethod:       "method",
	secResults:      "results",
	secConclusion:   "conclusion",
	secReferences:   "references",
}

// matchHeading returns the section a trimmed line opens, or secNone.
func matchHeading(line string) sectionName {
	for _, rule := range headingRules {
		if strings.HasPrefix(line, rule.prefix) {
			return rule.section
		}
	}
	return secNone
}

// ParseSections splits a raw model reply into the eight named sections.
//
// The scanner is a small state machine over lines: outside any section a
// "# " line supplies the title (first one wins) and a recognised "## "
// heading enters that section; inside a section every non-blank,
// non-heading line is accumulated, and a blank line or the next "## "
// heading leaves it. Headings may appear out of template order; a section
// seen twice accumulates both bodies. Any section empty after trimming is
// replaced by its placeholder, so the result always carries all eight
// fields regardless of how malformed the reply is.
func ParseSections(content string) types.GeneratedPaper {
	title := ""
	bodies := make(map[sectionName]*strings.Builder)
	for sec := range fieldKeys {
		bodies[sec] = &strings.Builder{}
	}

	current := secNone
	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)

		if line == "" {
			current = secNone
			continue
		}

		if strings.HasPrefix(line, "## ") {
			current = matchHeading(line)
			continue
		}

		if current != secNone {
			bodies[current].WriteString(line)
			bodies[current].WriteString("\n")
			continue
		}

		if strings.HasPrefix(line, "# ") && title == "" {
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}

	finish := func(sec sectionName) string {
		body := strings.TrimSpace(bodies[sec].String())
		if body == "" {
			return fmt.Sprintf(placeholderFormat, fieldKeys[sec])
		}
		return body
	}

	if title == "" {
		title = fmt.Sprintf(placeholderFormat, "title")
	}

	return types.GeneratedPaper{
		Title:        title,
		Abstract:     finish(secAbstract),
		Introduction: finish(secIntroduction),
		Background:   finish(secBackground),
		Method:       finish(secMethod),
		Results:      finish(secResults),
		Conclusion:   finish(secConclusion),
		References:   finish(secReferences),
	}
}

// Placeholder returns the fallback string for a named section. Exposed so
// callers can tell a parsed section from a defaulted one.
func Placeholder(field string) string {
	return fmt.Sprintf(placeholderFormat, field)
}
