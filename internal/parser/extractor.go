// Package parser 把上传的简历文件转换成纯文本
//
// 每种格式一个提取器，统一提供 ExtractTextFromReader / ExtractTextFromBytes，
// 返回提取的文本和解析元数据。文本是否为空由调用方判断。
package parser

import (
	"regexp"
	"strings"
	"time"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
	blankLines      = regexp.MustCompile(`\n{2,}`)
)

// newMetadata 基本元数据，extraMeta 中的字段会被复制进来
func newMetadata(uri string, extraMeta map[string]interface{}) map[string]interface{} {
	meta := map[string]interface{}{
		"source_file_path": uri,
		"extraction_time":  time.Now().Format(time.RFC3339),
	}
	for k, v := range extraMeta {
		meta[k] = v
	}
	return meta
}

// normalizeWhitespace 合并行内空白，保留换行但去掉多余空行
func normalizeWhitespace(s string) string {
	s = horizontalSpace.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n")
	return strings.TrimSpace(s)
}
