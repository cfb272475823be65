package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// 需要在前后换行的块级元素
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true, "tr": true, "td": true, "th": true,
	"table": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true, "pre": true, "blockquote": true,
	"dt": true, "dd": true, "hr": true,
}

// HTMLTextExtractor 网页简历 (.html/.htm)，只取 body 的可见文本
type HTMLTextExtractor struct{}

// NewHTMLTextExtractor 创建HTML提取器
func NewHTMLTextExtractor() *HTMLTextExtractor {
	return &HTMLTextExtractor{}
}

// ExtractTextFromReader 解析HTML并提取文本，块级元素之间保留换行
func (h *HTMLTextExtractor) ExtractTextFromReader(_ context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", nil, fmt.Errorf("解析HTML失败: %w", err)
	}

	metadata := newMetadata(uri, extraMeta)
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		metadata["title"] = title
	}

	doc.Find("script, style, noscript, template, head").Remove()

	var sb strings.Builder
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			writeNodeText(&sb, n)
		}
	})

	text := normalizeWhitespace(sb.String())
	metadata["text_length"] = len(text)
	return text, metadata, nil
}

// ExtractTextFromBytes 从字节数组提取
func (h *HTMLTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	return h.ExtractTextFromReader(ctx, bytes.NewReader(data), uri, extraMeta)
}

func writeNodeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		sb.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(sb, c)
	}
	if block {
		sb.WriteByte('\n')
	}
}
