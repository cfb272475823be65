package analyzer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// normalize NFKC 归一化并转小写，匹配前对文本和短语都只做一次
func normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// tokenize 将已归一化的文本切分为词元
//
// 词元是字母/数字的连续串，另外：
//   - 紧跟在词元末尾的 '+' 和 '#' 归入词元 ("c++", "c#")，后面若还是字母数字则视为分隔符 ("python+django")
//   - 两侧都是字母数字的 '.' 归入词元 ("node.js", "asp.net")，句末句点不算
//   - 连字符、斜杠和其他符号都是分隔符 ("ci/cd" -> ci, cd)
func tokenize(s string) []string {
	runes := []rune(s)
	tokens := make([]string, 0, len(runes)/5+1)
	start := -1

	for i, r := range runes {
		switch {
		case isWordRune(r):
			if start < 0 {
				start = i
			}
			continue
		case start >= 0 && (r == '+' || r == '#'):
			if i+1 >= len(runes) || !isWordRune(runes[i+1]) {
				continue
			}
		case start >= 0 && r == '.':
			if isWordRune(runes[i-1]) && i+1 < len(runes) && isWordRune(runes[i+1]) {
				continue
			}
		}
		if start >= 0 {
			tokens = append(tokens, string(runes[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, string(runes[start:]))
	}
	return tokens
}
