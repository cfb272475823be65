package processor

import (
	"context"
	"io"

	"resume-analyzer/internal/types"
)

//
// 文本提取相关接口
//

// TextExtractor 文档文本提取器接口，每种文件格式一个实现
type TextExtractor interface {
	// ExtractTextFromReader 从io.Reader提取文本和元数据
	// 参数：
	// - ctx: 上下文
	// - reader: 文件内容的读取器
	// - uri: 资源标识符（用于日志或元数据）
	// - extraMeta: 调用方附加的元数据，原样合并到返回的元数据中
	// 返回：
	// - 提取的文本
	// - 附加的元数据（如页数、文本长度等）
	// - 错误信息
	ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error)

	// ExtractTextFromBytes 从字节数组提取文本和元数据
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error)
}

//
// 分析相关接口
//

// TextAnalyzer 对纯文本进行分类、技能匹配、字段抽取和打分
type TextAnalyzer interface {
	Analyze(text string) *types.AnalysisResult
}

// ProcessResult 一次处理的结果
type ProcessResult struct {
	// 本次分析的唯一ID (UUIDv7)
	AnalysisID string

	// 上传的文件名，直接分析文本时为空
	Filename string

	// 提取出的文本长度(字符数)
	TextLength int

	// 提取器返回的元数据
	Metadata map[string]interface{}

	// 分析结果
	Result *types.AnalysisResult
}
