package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/tracing"
	"resume-analyzer/internal/types"
)

const tracerName = "resume-analyzer/processor"

// ResumeService 上传文件 -> 校验 -> 提取文本 -> 分析
// 构建后只读，可并发使用
type ResumeService struct {
	extractors  map[string]TextExtractor
	analyzer    TextAnalyzer
	maxFileSize int64
	logger      *zerolog.Logger
	tracer      trace.Tracer
}

// NewResumeService 由组件和设置创建服务，opts 在 set 之上追加应用
func NewResumeService(comp *Components, set *Settings, opts ...SettingOpt) (*ResumeService, error) {
	for _, opt := range opts {
		opt(set)
	}

	if comp.Analyzer == nil {
		return nil, fmt.Errorf("必须提供分析器组件")
	}
	if len(comp.Extractors) == 0 {
		return nil, fmt.Errorf("至少需要一个文本提取器")
	}

	if set.Logger == nil {
		set.Logger = &logger.Logger
	}
	if set.Tracer == nil {
		set.Tracer = otel.Tracer(tracerName)
	}

	extractors := make(map[string]TextExtractor, len(comp.Extractors))
	for ext, e := range comp.Extractors {
		extractors[normalizeExt(ext)] = e
	}

	return &ResumeService{
		extractors:  extractors,
		analyzer:    comp.Analyzer,
		maxFileSize: set.MaxFileSize,
		logger:      set.Logger,
		tracer:      set.Tracer,
	}, nil
}

// CreateResumeService 便捷工厂函数，用选项构造组件和设置
func CreateResumeService(compOpts []ComponentOpt, setOpts []SettingOpt) (*ResumeService, error) {
	components := &Components{}
	settings := &Settings{}

	for _, opt := range compOpts {
		opt(components)
	}
	for _, opt := range setOpts {
		opt(settings)
	}

	return NewResumeService(components, settings)
}

// NewResumeServiceFromConfig 按配置构建全部提取器并创建服务
func NewResumeServiceFromConfig(ctx context.Context, cfg *config.Config, analyzer TextAnalyzer, log *zerolog.Logger) (*ResumeService, error) {
	if log == nil {
		log = &logger.Logger
	}
	extractors, err := BuildExtractors(ctx, cfg, *log)
	if err != nil {
		return nil, err
	}

	return CreateResumeService(
		[]ComponentOpt{WithcompExtractors(extractors), WithcompAnalyzer(analyzer)},
		[]SettingOpt{WithsetMaxFileSize(cfg.MaxFileSizeBytes()), WithsetLogger(log)},
	)
}

// SupportedExtensions 已注册的扩展名，按字母序
func (rs *ResumeService) SupportedExtensions() []string {
	exts := make([]string, 0, len(rs.extractors))
	for ext := range rs.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports 文件名的扩展名是否有对应的提取器
func (rs *ResumeService) Supports(filename string) bool {
	_, ok := rs.extractors[normalizeExt(filepath.Ext(filename))]
	return ok
}

// MaxFileSize 上传文件大小上限(字节)
func (rs *ResumeService) MaxFileSize() int64 {
	return rs.maxFileSize
}

// AnalyzeReader 读取上传内容后分析，读取量不超过上限+1字节
func (rs *ResumeService) AnalyzeReader(ctx context.Context, filename string, reader io.Reader) (*ProcessResult, error) {
	src := reader
	if rs.maxFileSize > 0 {
		src = io.LimitReader(reader, rs.maxFileSize+1)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(src); err != nil {
		id := newAnalysisID()
		rs.logger.Error().Err(err).Str("analysis_id", id).Str("filename", tracing.SafeFilename(filename)).Msg("读取上传文件失败")
		return nil, NewReadError(id, err.Error())
	}
	return rs.AnalyzeDocument(ctx, filename, buf.Bytes())
}

// AnalyzeDocument 按扩展名选择提取器，提取文本并分析
func (rs *ResumeService) AnalyzeDocument(ctx context.Context, filename string, data []byte) (*ProcessResult, error) {
	id := newAnalysisID()
	startTime := time.Now()

	ctx, span := rs.tracer.Start(ctx, "AnalyzeDocument",
		trace.WithAttributes(
			attribute.String("analysis.id", id),
			attribute.String("resume.filename", tracing.SafeFilename(filename)),
			attribute.Int("file.size_bytes", len(data)),
		))
	defer span.End()

	log := rs.logger.With().Str("analysis_id", id).Str("filename", tracing.SafeFilename(filename)).Logger()

	ext := normalizeExt(filepath.Ext(filename))
	extractor, ok := rs.extractors[ext]
	if !ok {
		err := NewUnsupportedFormatError(id, fmt.Sprintf("扩展名 '%s'，支持: %s", ext, strings.Join(rs.SupportedExtensions(), ", ")))
		tracing.RecordError(span, err, tracing.ErrorTypeValidation, attribute.String("file.ext", ext))
		log.Warn().Str("ext", ext).Msg("拒绝不支持的文件格式")
		return nil, err
	}

	if rs.maxFileSize > 0 && int64(len(data)) > rs.maxFileSize {
		err := NewFileTooLargeError(id, fmt.Sprintf("%d 字节，上限 %d 字节", len(data), rs.maxFileSize))
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		log.Warn().Int("size", len(data)).Int64("limit", rs.maxFileSize).Msg("拒绝过大的文件")
		return nil, err
	}

	text, metadata, err := extractor.ExtractTextFromBytes(ctx, data, filename, map[string]interface{}{
		"analysis_id": id,
	})
	if err != nil {
		perr := NewParseError(id, err.Error())
		errType := tracing.ErrorTypeParse
		if errors.Is(err, context.DeadlineExceeded) {
			errType = tracing.ErrorTypeTimeout
		}
		tracing.RecordError(span, perr, errType, attribute.String("file.ext", ext))
		log.Error().Err(err).Str("ext", ext).Msg("提取简历文本失败")
		return nil, perr
	}
	span.AddEvent("text_extraction_completed")
	span.SetAttributes(attribute.Int("text_length", len(text)))

	if strings.TrimSpace(text) == "" {
		err := NewEmptyDocumentError(id, "未能从文件中提取到任何文本")
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		log.Warn().Msg("提取的文本为空")
		return nil, err
	}

	result := rs.analyze(span, log, text)
	log.Debug().Dur("duration", time.Since(startTime)).Msg("文档处理完成")

	return &ProcessResult{
		AnalysisID: id,
		Filename:   filename,
		TextLength: len([]rune(text)),
		Metadata:   metadata,
		Result:     result,
	}, nil
}

// AnalyzeText 直接分析一段文本
func (rs *ResumeService) AnalyzeText(ctx context.Context, text string) (*ProcessResult, error) {
	id := newAnalysisID()

	_, span := rs.tracer.Start(ctx, "AnalyzeText",
		trace.WithAttributes(
			attribute.String("analysis.id", id),
			attribute.Int("text_length", len(text)),
		))
	defer span.End()

	log := rs.logger.With().Str("analysis_id", id).Logger()

	if strings.TrimSpace(text) == "" {
		err := NewEmptyDocumentError(id, "文本为空")
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	return &ProcessResult{
		AnalysisID: id,
		TextLength: len([]rune(text)),
		Metadata:   map[string]interface{}{"analysis_id": id},
		Result:     rs.analyze(span, log, text),
	}, nil
}

func (rs *ResumeService) analyze(span trace.Span, log zerolog.Logger, text string) *types.AnalysisResult {
	result := rs.analyzer.Analyze(text)

	span.SetAttributes(
		attribute.String("resume.category", result.Category.String()),
		attribute.Int("resume.score", result.Score),
		attribute.Int("resume.matched_skills", len(result.MatchedSkills)),
		attribute.String("resume.email", tracing.SafeAttributeValue("resume.email", result.Fields.Email, tracing.DefaultMaxLength)),
	)
	span.SetStatus(codes.Ok, "处理成功")

	log.Info().
		Str("category", result.Category.String()).
		Int("score", result.Score).
		Int("matched_skills", len(result.MatchedSkills)).
		Str("email", tracing.MaskPII(result.Fields.Email)).
		Msg("简历分析完成")
	return result
}

// newAnalysisID 生成按时间有序的 UUIDv7
func newAnalysisID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Must(uuid.NewV4()).String()
	}
	return id.String()
}
