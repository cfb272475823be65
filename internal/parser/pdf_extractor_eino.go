package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"resume-analyzer/internal/constants"
)

var (
	// ErrPDFTooLarge 输入超过解析上限
	ErrPDFTooLarge = errors.New("PDF超过解析大小上限")
	// ErrPDFParserPanic 底层解析器发生 panic
	ErrPDFParserPanic = errors.New("PDF解析器异常")
)

// EinoPDFTextExtractor 使用 Eino PDF Parser 提取文本
//
// 底层解析器不读取 ctx，解析放在独立的 goroutine 中执行，超时后直接返回，
// 未结束的解析继续占用一个并发槽位，直到它自己退出。
// 畸形文件可能让底层解析器无限分配内存，进程内无法限制，公网上传应使用 Tika。
type EinoPDFTextExtractor struct {
	parser  einoParser.Parser
	logger  zerolog.Logger
	timeout time.Duration
	maxSize int64
	slots   chan struct{}
}

// EinoPDFOption PDF提取器的配置选项
type EinoPDFOption func(*EinoPDFTextExtractor)

// WithEinoLogger 配置自定义日志记录器
func WithEinoLogger(logger zerolog.Logger) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		e.logger = logger
	}
}

// WithEinoTimeout 单个文件的解析超时
func WithEinoTimeout(timeout time.Duration) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// WithEinoMaxSize 输入字节数上限
func WithEinoMaxSize(size int64) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		if size > 0 {
			e.maxSize = size
		}
	}
}

// WithEinoMaxConcurrency 同时进行的解析数，包括已超时但尚未退出的解析
func WithEinoMaxConcurrency(n int) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		if n > 0 {
			e.slots = make(chan struct{}, n)
		}
	}
}

// NewEinoPDFTextExtractor 初始化 Eino PDF 文本提取器
// 按页解析，再按页序拼接，没有文本的页贡献空字符串
func NewEinoPDFTextExtractor(ctx context.Context, options ...EinoPDFOption) (*EinoPDFTextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}

	extractor := &EinoPDFTextExtractor{
		parser:  p,
		logger:  log.Logger.With().Str("component", "eino_pdf").Logger(),
		timeout: 30 * time.Second,
		maxSize: constants.DefaultMaxFileSizeMB * 1024 * 1024,
		slots:   make(chan struct{}, 2),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor, nil
}

type parseOutcome struct {
	docs []*schema.Document
	err  error
}

// ExtractTextFromReader 从 io.Reader 中提取文本
func (e *EinoPDFTextExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	data, err := io.ReadAll(io.LimitReader(reader, e.maxSize+1))
	if err != nil {
		return "", newMetadata(uri, extraMeta), fmt.Errorf("读取PDF内容失败: %w", err)
	}
	return e.ExtractTextFromBytes(ctx, data, uri, extraMeta)
}

// ExtractTextFromBytes 从字节数组提取文本内容
func (e *EinoPDFTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	startTime := time.Now()
	metadata := newMetadata(uri, extraMeta)

	if int64(len(data)) > e.maxSize {
		return "", metadata, fmt.Errorf("%w: %d 字节，上限 %d 字节", ErrPDFTooLarge, len(data), e.maxSize)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	docs, err := e.parse(ctx, data, uri, extraMeta)
	duration := time.Since(startTime)
	if err != nil {
		e.logger.Warn().Err(err).Str("uri", uri).Dur("duration", duration).Msg("PDF解析失败")
		return "", metadata, fmt.Errorf("eino PDF parser failed for URI %s: %w", uri, err)
	}

	text := joinPages(docs)

	// 第一页的解析器元数据
	if len(docs) > 0 && docs[0].MetaData != nil {
		for k, v := range docs[0].MetaData {
			if _, exists := metadata[k]; !exists {
				metadata[k] = v
			}
		}
	}
	metadata["page_count"] = len(docs)
	metadata["text_length"] = len(text)
	metadata["processing_duration_ms"] = duration.Milliseconds()

	e.logger.Debug().
		Str("uri", uri).
		Int("pages", len(docs)).
		Int("chars", len(text)).
		Dur("duration", duration).
		Msg("PDF提取完成")
	return text, metadata, nil
}

// parse 占用一个槽位后在独立 goroutine 中解析，槽位在解析真正结束时才释放
func (e *EinoPDFTextExtractor) parse(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) ([]*schema.Document, error) {
	select {
	case e.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("等待PDF解析槽位超时: %w", ctx.Err())
	}

	done := make(chan parseOutcome, 1)
	go func() {
		defer func() { <-e.slots }()
		defer func() {
			if r := recover(); r != nil {
				done <- parseOutcome{err: fmt.Errorf("%w: %v", ErrPDFParserPanic, r)}
			}
		}()
		docs, err := e.parser.Parse(ctx, bytes.NewReader(data),
			einoParser.WithURI(uri),
			einoParser.WithExtraMeta(extraMeta),
		)
		done <- parseOutcome{docs: docs, err: err}
	}()

	select {
	case out := <-done:
		return out.docs, out.err
	case <-ctx.Done():
		e.logger.Error().Str("uri", uri).Dur("timeout", e.timeout).Msg("PDF解析超时，放弃等待")
		return nil, fmt.Errorf("PDF解析超时: %w", ctx.Err())
	}
}

// joinPages 按页序拼接，页与页之间用换行分隔，避免前一页末尾的单词和下一页开头粘连
func joinPages(docs []*schema.Document) string {
	pages := make([]string, len(docs))
	for i, doc := range docs {
		if doc != nil {
			pages[i] = doc.Content
		}
	}
	return strings.Join(pages, "\n")
}
