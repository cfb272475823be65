package nlp

import (
	"github.com/jdkato/prose/v2"
	"github.com/rs/zerolog/log"
)

// ProseAnnotator 基于 github.com/jdkato/prose 的标注器
// 词性和实体模型只在创建时加载一次，之后只读共享；每次调用新建 prose.Document，可并发使用
type ProseAnnotator struct {
	model *prose.Model
}

// NewProseAnnotator 创建 prose 标注器并加载内置英文模型
func NewProseAnnotator() *ProseAnnotator {
	// 空文档只为拿到 prose 构建好的默认模型
	doc, err := prose.NewDocument("", prose.WithSegmentation(false))
	if err != nil || doc.Model == nil {
		log.Warn().Err(err).Msg("加载 prose 模型失败，每次调用时重新加载")
		return &ProseAnnotator{}
	}
	return &ProseAnnotator{model: doc.Model}
}

func (p *ProseAnnotator) options(opts ...prose.DocOpt) []prose.DocOpt {
	if p.model != nil {
		opts = append(opts, prose.UsingModel(p.model))
	}
	return opts
}

// FindPersonEntities 返回 PERSON 类型的命名实体
func (p *ProseAnnotator) FindPersonEntities(text string) []Span {
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text, p.options()...)
	if err != nil {
		log.Warn().Err(err).Msg("prose 实体识别失败")
		return nil
	}

	var spans []Span
	cursor := 0
	for _, ent := range doc.Entities() {
		if ent.Label != "PERSON" {
			continue
		}
		var span Span
		span, cursor = locate(text, ent.Text, cursor)
		spans = append(spans, span)
	}
	return spans
}

// SegmentSentences 使用 prose 的分句结果，只做分句不做词性和实体标注
func (p *ProseAnnotator) SegmentSentences(text string) []Span {
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text, p.options(
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)...)
	if err != nil {
		log.Warn().Err(err).Msg("prose 分句失败")
		return nil
	}

	sents := doc.Sentences()
	spans := make([]Span, 0, len(sents))
	cursor := 0
	for _, s := range sents {
		var span Span
		span, cursor = locate(text, s.Text, cursor)
		spans = append(spans, span)
	}
	return spans
}
