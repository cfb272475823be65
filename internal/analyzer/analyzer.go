// Package analyzer 简历分析核心：分类、技能匹配、字段抽取与打分
//
// 所有组件在启动时构建一次，之后只读；Analyze 没有共享的可变状态，
// 不做 I/O，可被多个 goroutine 并发调用。
package analyzer

import (
	"resume-analyzer/internal/nlp"
	"resume-analyzer/internal/types"
	"resume-analyzer/internal/vocabulary"
)

// Analyzer 串联分类 -> 词表查询 -> 技能匹配 -> 字段抽取 -> 打分
type Analyzer struct {
	store      *vocabulary.Store
	classifier *Classifier
	matcher    *PhraseMatcher
	extractor  *FieldExtractor
}

// New 基于词表和标注器创建分析器
func New(store *vocabulary.Store, annotator nlp.Annotator, opts ...ExtractorOption) *Analyzer {
	return &Analyzer{
		store:      store,
		classifier: NewClassifier(store),
		matcher:    NewPhraseMatcher(),
		extractor:  NewFieldExtractor(annotator, opts...),
	}
}

// Analyze 分析一段简历文本，不会失败
func (a *Analyzer) Analyze(text string) *types.AnalysisResult {
	category, evidence := a.classifier.ClassifyWithEvidence(text)
	skills := a.store.SkillsFor(category)
	matched := a.matcher.Match(text, skills)
	fields := a.extractor.Extract(text)

	return &types.AnalysisResult{
		Category:       category,
		Evidence:       evidence,
		MatchedSkills:  matched,
		VocabularySize: len(skills),
		Fields:         fields,
		Score:          Score(matched, skills),
	}
}
