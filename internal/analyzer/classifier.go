package analyzer

import (
	"strings"

	"resume-analyzer/internal/types"
	"resume-analyzer/internal/vocabulary"
)

// Classifier 基于关键词的单标签分类器
// 按词表声明顺序依次检查，第一个命中任意关键词的类别胜出，而不是命中最多的类别
type Classifier struct {
	store *vocabulary.Store
}

// NewClassifier 创建分类器
func NewClassifier(store *vocabulary.Store) *Classifier {
	return &Classifier{store: store}
}

// Classify 返回文本所属类别，没有命中时返回兜底分类
func (c *Classifier) Classify(text string) types.Category {
	category, _ := c.ClassifyWithEvidence(text)
	return category
}

// ClassifyWithEvidence 同 Classify，并返回触发分类的关键词 (兜底分类时为空)
func (c *Classifier) ClassifyWithEvidence(text string) (types.Category, string) {
	lower := strings.ToLower(text)
	if lower == "" {
		return c.store.Fallback(), ""
	}
	for _, category := range c.store.Categories() {
		for _, kw := range c.store.KeywordsFor(category) {
			if Contains(lower, kw) {
				return category, kw
			}
		}
	}
	return c.store.Fallback(), ""
}
