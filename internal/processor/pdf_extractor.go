package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/parser"
)

// BuildPDFExtractor 统一构建PDF解析器的逻辑
// 根据配置返回合适的PDF解析器实现
func BuildPDFExtractor(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (TextExtractor, error) {
	if strings.EqualFold(cfg.PDF.Type, config.PDFTypeTika) && cfg.PDF.Tika.ServerURL != "" {
		logger.Info().Str("server_url", cfg.PDF.Tika.ServerURL).Msg("检测到Tika配置，正在初始化Tika PDF解析器...")
		tikaOptions := parser.MetadataModeOptions(cfg.PDF.Tika.MetadataMode)
		if cfg.PDF.Tika.Timeout > 0 {
			tikaOptions = append(tikaOptions, parser.WithTimeout(time.Duration(cfg.PDF.Tika.Timeout)*time.Second))
		}
		tikaOptions = append(tikaOptions, parser.WithTikaLogger(logger.With().Str("component", "tika_pdf").Logger()))
		return parser.NewTikaPDFExtractor(cfg.PDF.Tika.ServerURL, tikaOptions...), nil
	}

	logger.Info().Msg("使用Eino作为PDF解析器")
	return parser.NewEinoPDFTextExtractor(ctx,
		parser.WithEinoLogger(logger.With().Str("component", "eino_pdf").Logger()),
		parser.WithEinoTimeout(time.Duration(cfg.PDF.Eino.Timeout)*time.Second),
		parser.WithEinoMaxConcurrency(cfg.PDF.Eino.MaxConcurrency),
		parser.WithEinoMaxSize(cfg.MaxFileSizeBytes()),
	)
}

// BuildExtractors 为 upload.allowed_extensions 中的每个扩展名构建提取器
// 配置了没有对应实现的扩展名时返回错误
func BuildExtractors(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (map[string]TextExtractor, error) {
	extractors := make(map[string]TextExtractor, len(cfg.Upload.AllowedExtensions))
	for _, raw := range cfg.Upload.AllowedExtensions {
		ext := normalizeExt(raw)
		switch ext {
		case ".txt":
			extractors[ext] = parser.NewPlainTextExtractor()
		case ".html", ".htm":
			extractors[ext] = parser.NewHTMLTextExtractor()
		case ".docx":
			extractors[ext] = parser.NewDocxTextExtractor(parser.WithDocxMaxBodySize(cfg.MaxFileSizeBytes()))
		case ".pdf":
			pdfExtractor, err := BuildPDFExtractor(ctx, cfg, logger)
			if err != nil {
				return nil, fmt.Errorf("初始化PDF解析器失败: %w", err)
			}
			extractors[ext] = pdfExtractor
		default:
			return nil, fmt.Errorf("没有可处理 '%s' 文件的解析器", raw)
		}
	}
	return extractors, nil
}
