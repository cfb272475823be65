package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrUnsupportedFormat = errors.New("不支持的文件格式")
	ErrEmptyDocument     = errors.New("简历文本为空")
	ErrReadFailed        = errors.New("读取上传文件失败")
	ErrParseTextFailed   = errors.New("提取简历文本失败")
	ErrFileTooLarge      = errors.New("文件超过大小限制")
)

// ResumeProcessError 包含详细错误信息的自定义错误
type ResumeProcessError struct {
	AnalysisID string
	Op         string
	BaseErr    error
	Detail     string
}

func (e *ResumeProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, ID:%s): %s", e.BaseErr, e.Op, e.AnalysisID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, ID:%s)", e.BaseErr, e.Op, e.AnalysisID)
}

func (e *ResumeProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ResumeProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewUnsupportedFormatError(id, detail string) error {
	return &ResumeProcessError{
		AnalysisID: id,
		Op:         "validate",
		BaseErr:    ErrUnsupportedFormat,
		Detail:     detail,
	}
}

func NewFileTooLargeError(id, detail string) error {
	return &ResumeProcessError{
		AnalysisID: id,
		Op:         "validate",
		BaseErr:    ErrFileTooLarge,
		Detail:     detail,
	}
}

func NewReadError(id, detail string) error {
	return &ResumeProcessError{
		AnalysisID: id,
		Op:         "read",
		BaseErr:    ErrReadFailed,
		Detail:     detail,
	}
}

func NewParseError(id, detail string) error {
	return &ResumeProcessError{
		AnalysisID: id,
		Op:         "parse",
		BaseErr:    ErrParseTextFailed,
		Detail:     detail,
	}
}

func NewEmptyDocumentError(id, detail string) error {
	return &ResumeProcessError{
		AnalysisID: id,
		Op:         "analyze",
		BaseErr:    ErrEmptyDocument,
		Detail:     detail,
	}
}
