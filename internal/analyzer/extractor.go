package analyzer

import (
	"regexp"
	"strings"

	"resume-analyzer/internal/constants"
	"resume-analyzer/internal/nlp"
	"resume-analyzer/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+`)

	// 可选的 '+'、一个数字、至少 8 个数字/空白/连字符/括号、以数字结尾
	// 规则很宽松，可能把日期区间之类的数字串当成电话，这是已知限制
	phonePattern = regexp.MustCompile(`\+?\d[\d\s\-()]{8,}\d`)
)

// DefaultEducationKeywords 学历句子的指示词 (小写子串)
var DefaultEducationKeywords = []string{
	"b.tech", "m.tech", "bachelor", "master", "mba", "phd", "engineering", "science", "commerce",
}

// FieldExtractor 结构化字段抽取
// 四个字段各自独立，某个字段缺失不影响其他字段
type FieldExtractor struct {
	annotator         nlp.Annotator
	educationKeywords []string
}

// ExtractorOption 抽取器选项
type ExtractorOption func(*FieldExtractor)

// WithEducationKeywords 覆盖学历指示词
func WithEducationKeywords(keywords []string) ExtractorOption {
	return func(e *FieldExtractor) {
		lowered := make([]string, 0, len(keywords))
		for _, k := range keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				lowered = append(lowered, k)
			}
		}
		e.educationKeywords = lowered
	}
}

// NewFieldExtractor 创建字段抽取器
func NewFieldExtractor(annotator nlp.Annotator, opts ...ExtractorOption) *FieldExtractor {
	e := &FieldExtractor{
		annotator:         annotator,
		educationKeywords: DefaultEducationKeywords,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract 抽取全部字段
func (e *FieldExtractor) Extract(text string) types.ExtractedFields {
	return types.ExtractedFields{
		Name:      e.Name(text),
		Email:     e.Email(text),
		Phone:     e.Phone(text),
		Education: e.Education(text),
	}
}

// Name 第一个人名实体
func (e *FieldExtractor) Name(text string) string {
	for _, span := range e.annotator.FindPersonEntities(text) {
		if name := strings.TrimSpace(span.Text); name != "" {
			return name
		}
	}
	return constants.NotFound
}

// Email 第一个形如邮箱的子串
func (e *FieldExtractor) Email(text string) string {
	return firstMatch(emailPattern, text)
}

// Phone 第一个形如电话号码的数字串
func (e *FieldExtractor) Phone(text string) string {
	return firstMatch(phonePattern, text)
}

// Education 第一个包含学历指示词的句子
func (e *FieldExtractor) Education(text string) string {
	for _, sent := range e.annotator.SegmentSentences(text) {
		lower := strings.ToLower(sent.Text)
		for _, kw := range e.educationKeywords {
			if strings.Contains(lower, kw) {
				return sent.Text
			}
		}
	}
	return constants.NotFound
}

func firstMatch(re *regexp.Regexp, text string) string {
	if m := re.FindString(text); m != "" {
		return m
	}
	return constants.NotFound
}
