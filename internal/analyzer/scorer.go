package analyzer

// Score 技能覆盖率，floor(100 * |matched| / |vocabulary|)
// 词表为空时返回 0；使用整数除法截断，1/3 得 33 而不是 34
func Score(matched, vocabulary []string) int {
	if len(vocabulary) == 0 {
		return 0
	}
	score := 100 * len(matched) / len(vocabulary)
	if score > 100 {
		return 100
	}
	return score
}
