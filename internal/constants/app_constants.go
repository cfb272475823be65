package constants

const (
	// Application-level constants
	ServiceName    = "resume-analyzer"
	ServiceVersion = "1.0.0"

	// NotFound 字段未提取到时的占位值
	NotFound = "N/A"

	// FallbackCategory 没有任何分类关键词命中时使用的兜底分类
	FallbackCategory = "Other"

	// 上传相关默认值
	DefaultMaxFileSizeMB = 10
	DefaultServerAddress = ":8080"

	// UploadFormField 上传表单中简历文件字段名
	UploadFormField = "resume"
	// APIUploadFormField JSON 接口使用的文件字段名
	APIUploadFormField = "file"
)

// DefaultAllowedExtensions 默认允许上传的文件扩展名
var DefaultAllowedExtensions = []string{".txt", ".pdf", ".html", ".htm", ".docx"}
