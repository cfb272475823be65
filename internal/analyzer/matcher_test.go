package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"空文本", "", []string{}},
		{"普通单词", "Hello,   World!", []string{"hello", "world"}},
		{"加号和井号后缀", "C++ and C#, F#.", []string{"c++", "and", "c#", "f#"}},
		{"加号连接两个单词时是分隔符", "python+django", []string{"python", "django"}},
		{"单词内部的点", "Node.js / ASP.NET end.", []string{"node.js", "asp.net", "end"}},
		{"斜杠和连字符是分隔符", "CI/CD full-stack", []string{"ci", "cd", "full", "stack"}},
		{"全角字符归一化", "Ｐｙｔｈｏｎ３", []string{"python3"}},
		{"数字", "3+ years, 2019-2023", []string{"3+", "years", "2019", "2023"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(normalize(tt.in)))
		})
	}
}

func TestPhraseMatcher_TokenAligned(t *testing.T) {
	m := NewPhraseMatcher()

	assert.Empty(t, m.Match("I maintain legacy systems", []string{"AI"}), "ai 不应命中 maintain 的子串")
	assert.Equal(t, []string{"JavaScript"}, m.Match("JavaScript expert", []string{"Java", "JavaScript"}), "Java 不应命中 JavaScript")
	assert.Equal(t, []string{"C++"}, m.Match("Proficient in C++ and C", []string{"C++"}))
	assert.Empty(t, m.Match("C programming only", []string{"C++"}), "C 不应命中 C++")
}

func TestPhraseMatcher_MultiTokenPhrases(t *testing.T) {
	m := NewPhraseMatcher()
	skills := []string{"Docker", "Kubernetes", "CI/CD", "AWS", "Terraform", "Jenkins", "GitHub Actions"}

	got := m.Match("Built ci/cd pipelines with github actions and Docker", skills)
	assert.Equal(t, []string{"Docker", "CI/CD", "GitHub Actions"}, got, "结果按词表顺序返回并保留原始大小写")

	// 多词短语必须连续出现
	assert.Empty(t, m.Match("GitHub hosted, Actions later", []string{"GitHub Actions"}))
	assert.Equal(t, []string{"REST API"}, m.Match("REST-API design", []string{"REST API"}))
	assert.Equal(t, []string{"Scikit-learn"}, m.Match("scikit learn and pandas", []string{"Scikit-learn"}))
}

func TestPhraseMatcher_SetSemantics(t *testing.T) {
	m := NewPhraseMatcher()

	got := m.Match("python python PYTHON", []string{"Python", "python", "PYTHON", "Go"})
	assert.Equal(t, []string{"Python"}, got, "重复短语只保留一次")

	assert.Empty(t, m.Match("anything", nil))
	assert.Empty(t, m.Match("", []string{"Python"}))
	assert.Empty(t, m.Match("some text", []string{"", "  ", "---"}), "切分后为空的短语不应命中")
	assert.NotNil(t, m.Match("", nil), "返回空切片而不是 nil")
}

// 对任意文本与短语列表：结果是输入的子集、没有重复、且每个结果都能在文本中按词元找到
func TestPhraseMatcher_Properties(t *testing.T) {
	m := NewPhraseMatcher()
	texts := []string{
		"Experienced Python developer skilled in Flask and REST API design",
		"Figma, Adobe XD; user-research & prototyping",
		"Node.js/React/Redux full stack engineer with MongoDB",
		"Nothing relevant at all",
		"",
	}
	phrases := []string{
		"Python", "Flask", "REST API", "Figma", "Adobe XD", "User Research", "Prototyping",
		"Node.js", "React", "Redux", "MongoDB", "python", "Go", "AI", "Design",
	}

	for _, text := range texts {
		got := m.Match(text, phrases)

		seen := map[string]bool{}
		textTokens := " " + strings.Join(tokenize(normalize(text)), " ") + " "
		for _, p := range got {
			require.Contains(t, phrases, p, "结果必须来自输入短语")
			key := strings.Join(tokenize(normalize(p)), " ")
			require.False(t, seen[key], "结果不应重复: %s", p)
			seen[key] = true
			require.Contains(t, textTokens, " "+key+" ", "结果必须在文本中出现: %s", p)
		}

		// 同样的输入多次调用结果一致
		assert.Equal(t, got, m.Match(text, phrases))
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("rapid prototyping", "api"), "分类使用子串语义")
	assert.True(t, Contains("worked on machine learning", "machine learning"))
	assert.False(t, Contains("machine and learning", "machine learning"), "多词关键词必须连续出现")
	assert.False(t, Contains("anything", ""))
}
