package types

// Category 表示分类体系中的一个岗位类别
type Category string

// String 返回类别名称
func (c Category) String() string {
	return string(c)
}

// ExtractedFields 从简历文本中抽取的结构化字段
// 每个字段相互独立，未找到时为 constants.NotFound
type ExtractedFields struct {
	Name      string `json:"name"`      // 候选人姓名
	Email     string `json:"email"`     // 邮箱地址
	Phone     string `json:"phone"`     // 电话号码
	Education string `json:"education"` // 包含学历信息的句子
}

// AnalysisResult 一次简历分析的结果
// 构造完成后不再修改
type AnalysisResult struct {
	// 分类结果，未命中任何关键词时为兜底分类
	Category Category `json:"category"`

	// 命中的分类关键词，兜底分类时为空
	Evidence string `json:"evidence,omitempty"`

	// 在类别技能词表中命中的技能 (集合语义，按词表声明顺序)
	MatchedSkills []string `json:"matched_skills"`

	// 类别技能词表大小
	VocabularySize int `json:"vocabulary_size"`

	// 抽取的结构化字段
	Fields ExtractedFields `json:"fields"`

	// 技能覆盖率得分 (0-100)
	Score int `json:"score"`
}
