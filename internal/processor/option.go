package processor

import (
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	// 按扩展名(小写，带点)索引的文本提取器
	Extractors map[string]TextExtractor

	// 文本分析器
	Analyzer TextAnalyzer
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	MaxFileSize int64           // 上传文件大小上限(字节)，<=0 表示不限制
	Logger      *zerolog.Logger // 日志记录器
	Tracer      trace.Tracer    // 为空时使用全局 TracerProvider
}

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// ----- 组件选项 -----

// WithcompExtractor 为一个扩展名注册文本提取器，扩展名不区分大小写
func WithcompExtractor(ext string, extractor TextExtractor) ComponentOpt {
	return func(c *Components) {
		if c.Extractors == nil {
			c.Extractors = make(map[string]TextExtractor)
		}
		c.Extractors[normalizeExt(ext)] = extractor
	}
}

// WithcompExtractors 批量注册文本提取器
func WithcompExtractors(extractors map[string]TextExtractor) ComponentOpt {
	return func(c *Components) {
		for ext, extractor := range extractors {
			WithcompExtractor(ext, extractor)(c)
		}
	}
}

// WithcompAnalyzer 设置文本分析器组件
func WithcompAnalyzer(analyzer TextAnalyzer) ComponentOpt {
	return func(c *Components) {
		c.Analyzer = analyzer
	}
}

// ----- 设置选项 -----

// WithsetMaxFileSize 设置上传文件大小上限(字节)
func WithsetMaxFileSize(size int64) SettingOpt {
	return func(s *Settings) {
		s.MaxFileSize = size
	}
}

// WithsetLogger 设置日志记录器
func WithsetLogger(logger *zerolog.Logger) SettingOpt {
	return func(s *Settings) {
		if logger != nil {
			s.Logger = logger
		} else {
			nop := zerolog.Nop()
			s.Logger = &nop
		}
	}
}

// WithsetTracer 设置 tracer，主要用于测试
func WithsetTracer(tracer trace.Tracer) SettingOpt {
	return func(s *Settings) {
		s.Tracer = tracer
	}
}

// normalizeExt ".PDF" / "pdf" -> ".pdf"
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
