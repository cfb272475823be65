// Package nlp 提供人名识别与分句能力
//
// 分析核心只依赖 Annotator 接口：生产环境使用基于 prose 的实现，
// 测试和无模型环境使用确定性的规则实现。
package nlp

import (
	"fmt"
	"strings"
)

// Span 文本片段，Start/End 为原文中的字节偏移 (End 不含)
type Span struct {
	Text  string
	Start int
	End   int
}

// Annotator 语言标注能力
type Annotator interface {
	// FindPersonEntities 返回识别出的人名片段，按出现顺序
	FindPersonEntities(text string) []Span
	// SegmentSentences 返回分句结果，按出现顺序
	SegmentSentences(text string) []Span
}

// 引擎名称
const (
	EngineProse = "prose"
	EngineRule  = "rule"
)

// New 按名称创建标注器，空名称使用 prose
func New(engine string) (Annotator, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineProse:
		return NewProseAnnotator(), nil
	case EngineRule:
		return NewRuleAnnotator(), nil
	default:
		return nil, fmt.Errorf("未知的NLP引擎: %s", engine)
	}
}

// locate 在 text 中从 cursor 开始查找 piece，返回对应的 Span 和新的游标
// 找不到时 Start/End 为 -1，游标不变
func locate(text, piece string, cursor int) (Span, int) {
	if cursor > len(text) {
		cursor = len(text)
	}
	idx := strings.Index(text[cursor:], piece)
	if idx < 0 {
		return Span{Text: piece, Start: -1, End: -1}, cursor
	}
	start := cursor + idx
	end := start + len(piece)
	return Span{Text: piece, Start: start, End: end}, end
}
