package analyzer

import "strings"

// PhraseMatcher 在文本中查找词表短语
// 按词元边界匹配，"ai" 不会命中 "maintain" 中的子串
type PhraseMatcher struct{}

// NewPhraseMatcher 创建短语匹配器
func NewPhraseMatcher() *PhraseMatcher {
	return &PhraseMatcher{}
}

// Match 返回在 text 中出现过的短语 (保持词表中的原始大小写)
// 结果按 phrases 的顺序排列，重复短语只保留第一次出现的写法
func (m *PhraseMatcher) Match(text string, phrases []string) []string {
	matched := make([]string, 0)
	if len(phrases) == 0 {
		return matched
	}

	tokens := tokenize(normalize(text))
	if len(tokens) == 0 {
		return matched
	}

	// 首词元 -> 出现位置
	positions := make(map[string][]int, len(tokens))
	for i, tok := range tokens {
		positions[tok] = append(positions[tok], i)
	}

	seen := make(map[string]struct{}, len(phrases))
	for _, phrase := range phrases {
		ptoks := tokenize(normalize(phrase))
		if len(ptoks) == 0 {
			continue
		}
		key := strings.Join(ptoks, " ")
		if _, dup := seen[key]; dup {
			continue
		}
		if containsSequence(tokens, positions[ptoks[0]], ptoks) {
			seen[key] = struct{}{}
			matched = append(matched, phrase)
		}
	}
	return matched
}

// containsSequence 判断 tokens 中是否存在从 starts 之一开始、与 seq 完全相同的连续片段
func containsSequence(tokens []string, starts []int, seq []string) bool {
	for _, start := range starts {
		if start+len(seq) > len(tokens) {
			continue
		}
		ok := true
		for j := 1; j < len(seq); j++ {
			if tokens[start+j] != seq[j] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// Contains 分类使用的子串包含判断，lowerText 需已转为小写
// 多词关键词必须连续出现
func Contains(lowerText, keyword string) bool {
	if keyword == "" {
		return false
	}
	return strings.Contains(lowerText, keyword)
}
