package vocabulary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/types"
)

func TestDefaultTaxonomyOrder(t *testing.T) {
	s := Default()

	cats := s.Categories()
	require.Len(t, cats, 19, "内置分类体系应有19个类别")
	assert.Equal(t, types.Category("Software Engineer"), cats[0], "第一个类别应为 Software Engineer")
	assert.Equal(t, types.Category("Full Stack Developer"), cats[1])
	assert.Equal(t, types.Category("Content Writer"), cats[len(cats)-1], "最后一个类别应为 Content Writer")
	assert.Equal(t, types.Category("Other"), s.Fallback())
}

func TestLookupsAreTotal(t *testing.T) {
	s := Default()

	assert.Len(t, s.SkillsFor("Software Engineer"), 9)
	assert.Equal(t, []string{"Python", "Java", "C++", "Git", "Flask", "SQL", "JavaScript", "REST API", "OOP"}, s.SkillsFor("Software Engineer"))

	// 未知类别和兜底分类都返回空切片而不是 nil
	assert.NotNil(t, s.SkillsFor("Astronaut"))
	assert.Empty(t, s.SkillsFor("Astronaut"))
	assert.Empty(t, s.SkillsFor(s.Fallback()))
	assert.Empty(t, s.KeywordsFor("Astronaut"))
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	s := Default()

	skills := s.SkillsFor("Finance")
	skills[0] = "mutated"
	assert.Equal(t, "Accounting", s.SkillsFor("Finance")[0], "调用方修改返回值不应影响词表")

	entries := s.Entries()
	entries[0].Keywords[0] = "mutated"
	assert.Equal(t, "developer", s.KeywordsFor("Software Engineer")[0])
}

func TestNewNormalizesAndValidates(t *testing.T) {
	s, err := New([]Entry{
		{Category: " Ops ", Keywords: []string{"  SRE ", "", "On-Call"}, Skills: []string{" Terraform ", ""}},
	})
	require.NoError(t, err)
	assert.Equal(t, []types.Category{"Ops"}, s.Categories())
	assert.Equal(t, []string{"sre", "on-call"}, s.KeywordsFor("Ops"), "关键词应去空白并转小写")
	assert.Equal(t, []string{"Terraform"}, s.SkillsFor("Ops"), "技能应保留原始大小写")

	_, err = New([]Entry{{Category: ""}})
	assert.Error(t, err, "空类别名称应报错")

	_, err = New([]Entry{{Category: "A"}, {Category: "A"}})
	assert.Error(t, err, "重复类别应报错")

	_, err = New([]Entry{{Category: "Other"}})
	assert.Error(t, err, "与兜底分类同名应报错")

	s, err = New([]Entry{{Category: "Other"}}, WithFallback("Unclassified"))
	require.NoError(t, err)
	assert.Equal(t, types.Category("Unclassified"), s.Fallback())
}

func TestParsePreservesDeclarationOrder(t *testing.T) {
	data := []byte(`
fallback: Unknown
categories:
  - category: Zeta
    keywords: [zeta]
    skills: [Z1]
  - category: Alpha
    keywords: [alpha, "multi word"]
    skills: [A1, A2]
`)
	s, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []types.Category{"Zeta", "Alpha"}, s.Categories(), "YAML 序列顺序即优先级")
	assert.Equal(t, types.Category("Unknown"), s.Fallback())
	assert.Equal(t, []string{"alpha", "multi word"}, s.KeywordsFor("Alpha"))

	_, err = Parse([]byte("categories: []"))
	assert.Error(t, err, "空词表应报错")

	_, err = Parse([]byte("categories: [: bad"))
	assert.Error(t, err, "非法 YAML 应报错")
}

func TestMarshalRoundTripKeepsOrder(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	s, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default().Categories(), s.Categories())
	assert.Equal(t, Default().SkillsFor("DevOps Engineer"), s.SkillsFor("DevOps Engineer"))
}

func TestWriteSampleAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")

	require.NoError(t, WriteSample(path))
	assert.Error(t, WriteSample(path), "已存在的文件不应被覆盖")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 19, s.Len())

	s, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 19, s.Len(), "空路径使用内置词表")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("categories: {}"), 0644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}
