package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// PlainTextExtractor 纯文本 (.txt)
// 默认按 UTF-8 解码，识别 BOM (含 UTF-16)，非法字节替换为 U+FFFD
type PlainTextExtractor struct{}

// NewPlainTextExtractor 创建纯文本提取器
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// ExtractTextFromReader 解码文本
func (p *PlainTextExtractor) ExtractTextFromReader(_ context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(reader, decoder))
	if err != nil {
		return "", nil, fmt.Errorf("解码文本失败: %w", err)
	}

	text := string(data)
	metadata := newMetadata(uri, extraMeta)
	metadata["text_length"] = len(text)
	return text, metadata, nil
}

// ExtractTextFromBytes 解码字节数组
func (p *PlainTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	return p.ExtractTextFromReader(ctx, bytes.NewReader(data), uri, extraMeta)
}
