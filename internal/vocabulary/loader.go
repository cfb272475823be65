package vocabulary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"resume-analyzer/internal/types"
)

// fileFormat 词表文件格式
// categories 是 YAML 序列，顺序即分类优先级
type fileFormat struct {
	Fallback   string  `yaml:"fallback,omitempty"`
	Categories []Entry `yaml:"categories"`
}

// Parse 从 YAML 内容解析词表
func Parse(data []byte) (*Store, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("解析词表文件失败: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("词表文件未定义任何类别")
	}
	return New(f.Categories, WithFallback(types.Category(f.Fallback)))
}

// LoadFile 从文件加载词表
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取词表文件失败: %w", err)
	}
	return Parse(data)
}

// Load 路径为空时返回内置词表，否则从文件加载
func Load(path string) (*Store, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Marshal 将词表序列化为 YAML，可作为自定义词表的起点
func Marshal(s *Store) ([]byte, error) {
	f := fileFormat{
		Fallback:   string(s.Fallback()),
		Categories: s.Entries(),
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("序列化词表失败: %w", err)
	}
	return data, nil
}

// WriteSample 将内置词表写入文件，文件已存在时不覆盖
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", path)
	}
	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入词表文件 '%s' 失败: %w", path, err)
	}
	return nil
}
