package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

// sentenceEnd 句末标点后跟空白，或者换行
var sentenceEnd = regexp.MustCompile(`[.!?]+\s+|\n+`)

// RuleAnnotator 确定性的规则标注器
//
// 人名：简历抬头的惯例，取第一个非空行，要求它由 2~4 个首字母大写的单词组成，
// 且不含数字、'@' 等联系方式字符。
// 分句：按句末标点 + 空白或换行切分。
type RuleAnnotator struct{}

// NewRuleAnnotator 创建规则标注器
func NewRuleAnnotator() *RuleAnnotator {
	return &RuleAnnotator{}
}

// FindPersonEntities 最多返回一个人名片段
func (r *RuleAnnotator) FindPersonEntities(text string) []Span {
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			offset += len(line)
			continue
		}
		if !looksLikeName(trimmed) {
			return nil
		}
		start := offset + strings.Index(line, trimmed)
		return []Span{{Text: trimmed, Start: start, End: start + len(trimmed)}}
	}
	return nil
}

func looksLikeName(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		runes := []rune(w)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, c := range runes[1:] {
			if !unicode.IsLetter(c) && c != '-' && c != '\'' && c != '.' {
				return false
			}
		}
	}
	return true
}

// SegmentSentences 切分句子，返回去除首尾空白后的非空句子
func (r *RuleAnnotator) SegmentSentences(text string) []Span {
	var spans []Span
	prev := 0
	appendSpan := func(from, to int) {
		raw := text[from:to]
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return
		}
		start := from + strings.Index(raw, trimmed)
		spans = append(spans, Span{Text: trimmed, Start: start, End: start + len(trimmed)})
	}

	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		// 句末标点留在句子里，空白和换行丢弃
		end := loc[0] + len(strings.TrimRightFunc(text[loc[0]:loc[1]], unicode.IsSpace))
		appendSpan(prev, end)
		prev = loc[1]
	}
	if prev < len(text) {
		appendSpan(prev, len(text))
	}
	return spans
}
