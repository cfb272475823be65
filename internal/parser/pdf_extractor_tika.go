package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TikaPDFExtractor 是基于Apache Tika服务器的PDF解析器
type TikaPDFExtractor struct {
	// Tika服务器地址，例如 http://localhost:9998
	ServerURL string
	// HTTP客户端，可配置超时等参数
	Client *http.Client
	// 是否提取完整元数据
	extractFullMetadata bool
	// 是否提取精简元数据
	extractMinimalMetadata bool
	// 是否提取链接注释文本
	extractAnnotations bool
	logger             zerolog.Logger
}

// TikaOption 定义配置选项函数
type TikaOption func(*TikaPDFExtractor)

// WithFullMetadata 配置是否提取完整元数据
func WithFullMetadata(extract bool) TikaOption {
	return func(e *TikaPDFExtractor) {
		e.extractFullMetadata = extract
	}
}

// WithMinimalMetadata 配置是否提取精简的关键元数据
func WithMinimalMetadata(extract bool) TikaOption {
	return func(e *TikaPDFExtractor) {
		e.extractMinimalMetadata = extract
	}
}

// WithAnnotations 配置是否提取PDF链接注释文本
func WithAnnotations(extract bool) TikaOption {
	return func(e *TikaPDFExtractor) {
		e.extractAnnotations = extract
	}
}

// WithTikaLogger 配置自定义日志记录器
func WithTikaLogger(logger zerolog.Logger) TikaOption {
	return func(e *TikaPDFExtractor) {
		e.logger = logger
	}
}

// WithTimeout 配置HTTP客户端超时时间
func WithTimeout(timeout time.Duration) TikaOption {
	return func(e *TikaPDFExtractor) {
		e.Client.Timeout = timeout
	}
}

// MetadataModeOptions 把配置中的 metadata_mode 转换为选项
// full: 全部元数据；none: 不请求 /meta；其他: 精简元数据
func MetadataModeOptions(mode string) []TikaOption {
	switch strings.ToLower(mode) {
	case "full":
		return []TikaOption{WithFullMetadata(true)}
	case "none":
		return []TikaOption{WithMinimalMetadata(false), WithFullMetadata(false)}
	default:
		return []TikaOption{WithMinimalMetadata(true)}
	}
}

// NewTikaPDFExtractor 创建一个新的Tika PDF解析器
func NewTikaPDFExtractor(serverURL string, options ...TikaOption) *TikaPDFExtractor {
	extractor := &TikaPDFExtractor{
		ServerURL:              strings.TrimRight(serverURL, "/"),
		Client:                 &http.Client{Timeout: 60 * time.Second},
		extractMinimalMetadata: true,
		extractAnnotations:     true,
		logger:                 log.Logger.With().Str("component", "tika_pdf").Logger(),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// ExtractTextFromReader 从io.Reader提取文本内容
func (e *TikaPDFExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, fmt.Errorf("读取PDF内容失败: %w", err)
	}
	return e.ExtractTextFromBytes(ctx, data, uri, extraMeta)
}

// ExtractTextFromBytes 从字节数组提取文本内容
func (e *TikaPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	startTime := time.Now()
	metadata := newMetadata(uri, extraMeta)

	req, err := e.newRequest(ctx, "/tika", data, uri)
	if err != nil {
		return "", metadata, err
	}
	req.Header.Set("Accept", "text/plain; charset=utf-8")
	req.Header.Set("Accept-Charset", "utf-8")
	if !e.extractAnnotations {
		req.Header.Set("X-Tika-PDFExtractAnnotationText", "false")
	}

	textBytes, err := e.do(req)
	if err != nil {
		e.logger.Warn().Err(err).Str("uri", uri).Msg("Tika文本提取失败")
		return "", metadata, err
	}
	text := string(textBytes)

	metadata["text_length"] = len(text)
	metadata["processing_duration_ms"] = time.Since(startTime).Milliseconds()

	if !e.extractMinimalMetadata && !e.extractFullMetadata {
		return text, metadata, nil
	}

	rawMetadata, err := e.extractMetadata(ctx, data, uri)
	if err != nil {
		// 元数据只是附加信息，失败不影响文本
		e.logger.Warn().Err(err).Str("uri", uri).Msg("元数据提取失败, 继续使用基本元数据")
		return text, metadata, nil
	}
	for k, v := range rawMetadata {
		if e.extractFullMetadata || isImportantMetadata(k) {
			metadata[k] = v
		}
	}
	return text, metadata, nil
}

// 判断元数据字段是否重要
func isImportantMetadata(key string) bool {
	switch key {
	case "pdf:PDFVersion", "xmpTPg:NPages", "dcterms:created", "language", "pdf:charsPerPage",
		"dc:title", "Content-Type", "pdf:docinfo:title", "pdf:docinfo:created", "pdf:totalUnmappedUnicodeChars":
		return true
	}
	return false
}

// extractMetadata 提取文档元数据
func (e *TikaPDFExtractor) extractMetadata(ctx context.Context, data []byte, uri string) (map[string]interface{}, error) {
	req, err := e.newRequest(ctx, "/meta", data, uri)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	body, err := e.do(req)
	if err != nil {
		return nil, err
	}
	var metadata map[string]interface{}
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, fmt.Errorf("解析元数据JSON失败: %w", err)
	}
	return metadata, nil
}

func (e *TikaPDFExtractor) newRequest(ctx context.Context, path string, data []byte, uri string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, e.ServerURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/pdf")
	if uri != "" {
		req.Header.Set("X-Tika-Resource-Name", uri)
	}
	return req, nil
}

func (e *TikaPDFExtractor) do(req *http.Request) ([]byte, error) {
	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求到Tika服务器失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Tika服务器返回错误状态码: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取Tika响应失败: %w", err)
	}
	return body, nil
}
