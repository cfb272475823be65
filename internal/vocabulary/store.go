// Package vocabulary 保存分类关键词与技能词表
//
// Store 在启动时构建一次，之后只读，可被任意数量的 goroutine 并发读取。
// 类别的声明顺序就是分类优先级，因此内部使用有序切片而不是 map 进行遍历。
package vocabulary

import (
	"fmt"
	"strings"

	"resume-analyzer/internal/constants"
	"resume-analyzer/internal/types"
)

// Entry 一个类别的词表配置
type Entry struct {
	Category types.Category `yaml:"category" json:"category"`
	Keywords []string       `yaml:"keywords" json:"keywords"` // 分类关键词 (小写)
	Skills   []string       `yaml:"skills" json:"skills"`     // 技能短语 (保留原始大小写)
}

// Store 只读词表
type Store struct {
	entries  []Entry
	index    map[types.Category]int
	fallback types.Category
}

// Option Store 构建选项
type Option func(*Store)

// WithFallback 设置兜底分类
func WithFallback(c types.Category) Option {
	return func(s *Store) {
		if c != "" {
			s.fallback = c
		}
	}
}

// New 按给定顺序构建词表
// 关键词统一转为小写；类别名称为空、重复或与兜底分类同名时返回错误
func New(entries []Entry, opts ...Option) (*Store, error) {
	s := &Store{
		entries:  make([]Entry, 0, len(entries)),
		index:    make(map[types.Category]int, len(entries)),
		fallback: types.Category(constants.FallbackCategory),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i, e := range entries {
		name := types.Category(strings.TrimSpace(string(e.Category)))
		if name == "" {
			return nil, fmt.Errorf("第 %d 个类别名称为空", i+1)
		}
		if name == s.fallback {
			return nil, fmt.Errorf("类别 %q 与兜底分类同名", name)
		}
		if _, dup := s.index[name]; dup {
			return nil, fmt.Errorf("类别 %q 重复定义", name)
		}

		keywords := make([]string, 0, len(e.Keywords))
		for _, kw := range e.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		skills := make([]string, 0, len(e.Skills))
		for _, sk := range e.Skills {
			sk = strings.TrimSpace(sk)
			if sk != "" {
				skills = append(skills, sk)
			}
		}

		s.index[name] = len(s.entries)
		s.entries = append(s.entries, Entry{Category: name, Keywords: keywords, Skills: skills})
	}
	return s, nil
}

// Categories 按优先级顺序返回所有类别 (不含兜底分类)
func (s *Store) Categories() []types.Category {
	out := make([]types.Category, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Category
	}
	return out
}

// KeywordsFor 返回类别的分类关键词，未知类别返回空切片
func (s *Store) KeywordsFor(c types.Category) []string {
	i, ok := s.index[c]
	if !ok {
		return []string{}
	}
	return append([]string(nil), s.entries[i].Keywords...)
}

// SkillsFor 返回类别的技能词表，未知类别 (包括兜底分类) 返回空切片
func (s *Store) SkillsFor(c types.Category) []string {
	i, ok := s.index[c]
	if !ok {
		return []string{}
	}
	return append([]string(nil), s.entries[i].Skills...)
}

// Fallback 返回兜底分类
func (s *Store) Fallback() types.Category {
	return s.fallback
}

// Entries 返回全部词表配置的副本，顺序与优先级一致
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = Entry{
			Category: e.Category,
			Keywords: append([]string(nil), e.Keywords...),
			Skills:   append([]string(nil), e.Skills...),
		}
	}
	return out
}

// Len 类别数量
func (s *Store) Len() int {
	return len(s.entries)
}
