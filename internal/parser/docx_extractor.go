package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"resume-analyzer/internal/constants"
)

const docxBodyPart = "word/document.xml"

var (
	// ErrDocxBodyMissing 压缩包内没有 word/document.xml
	ErrDocxBodyMissing = errors.New("docx中缺少word/document.xml")
	// ErrDocxBodyTooLarge word/document.xml 解压后超过上限
	ErrDocxBodyTooLarge = errors.New("docx正文解压后超过大小上限")
)

// DocxTextExtractor Word 文档 (.docx)
// 读取 word/document.xml，段落 (w:p) 之间换行，w:tab 转为制表符
type DocxTextExtractor struct {
	maxBodySize int64
}

// DocxOption docx提取器的配置选项
type DocxOption func(*DocxTextExtractor)

// WithDocxMaxBodySize word/document.xml 解压后的字节数上限
func WithDocxMaxBodySize(size int64) DocxOption {
	return func(d *DocxTextExtractor) {
		if size > 0 {
			d.maxBodySize = size
		}
	}
}

// NewDocxTextExtractor 创建docx提取器
func NewDocxTextExtractor(options ...DocxOption) *DocxTextExtractor {
	d := &DocxTextExtractor{maxBodySize: constants.DefaultMaxFileSizeMB * 1024 * 1024}
	for _, option := range options {
		option(d)
	}
	return d
}

// ExtractTextFromReader docx 是 zip 包，需要随机访问，先整体读入内存
func (d *DocxTextExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, fmt.Errorf("读取docx内容失败: %w", err)
	}
	return d.ExtractTextFromBytes(ctx, data, uri, extraMeta)
}

// ExtractTextFromBytes 从字节数组提取
func (d *DocxTextExtractor) ExtractTextFromBytes(_ context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("打开docx压缩包失败: %w", err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			body = f
			break
		}
	}
	if body == nil {
		return "", nil, ErrDocxBodyMissing
	}
	// 解压出的数据超过声明大小时 archive/zip 返回 ErrFormat，检查声明大小即可
	if body.UncompressedSize64 > uint64(d.maxBodySize) {
		return "", nil, fmt.Errorf("%w: %d 字节，上限 %d 字节", ErrDocxBodyTooLarge, body.UncompressedSize64, d.maxBodySize)
	}

	rc, err := body.Open()
	if err != nil {
		return "", nil, fmt.Errorf("读取%s失败: %w", docxBodyPart, err)
	}
	defer rc.Close()

	text, paragraphs, err := docxText(rc)
	if err != nil {
		return "", nil, err
	}

	metadata := newMetadata(uri, extraMeta)
	metadata["paragraph_count"] = paragraphs
	metadata["text_length"] = len(text)
	return text, metadata, nil
}

// docxText 流式解析 WordprocessingML，只收集 w:t 中的文字
func docxText(r io.Reader) (string, int, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false
	paragraphs := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, fmt.Errorf("解析%s失败: %w", docxBodyPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
				paragraphs++
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return normalizeWhitespace(sb.String()), paragraphs, nil
}
