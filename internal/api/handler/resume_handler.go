package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"

	"resume-analyzer/internal/constants"
	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/processor"
	"resume-analyzer/internal/tracing"
	"resume-analyzer/internal/vocabulary"
)

// ResumeHandler 简历分析的 HTTP 入口，页面和 JSON API 共用同一个服务
type ResumeHandler struct {
	service *processor.ResumeService
	vocab   *vocabulary.Store
}

// NewResumeHandler 创建一个新的简历处理器
func NewResumeHandler(service *processor.ResumeService, vocab *vocabulary.Store) *ResumeHandler {
	return &ResumeHandler{
		service: service,
		vocab:   vocab,
	}
}

// AnalyzeResponse 分析接口的响应
type AnalyzeResponse struct {
	AnalysisID     string   `json:"analysis_id"`
	Filename       string   `json:"filename,omitempty"`
	Category       string   `json:"category"`
	RecommendedJob string   `json:"recommended_job"`
	Evidence       string   `json:"evidence,omitempty"`
	MatchedSkills  []string `json:"matched_skills"`
	VocabularySize int      `json:"vocabulary_size"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Education      string   `json:"education"`
	Score          int      `json:"score"`
}

// AnalyzeTextRequest 文本分析请求
type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

// CategoryInfo 分类体系中的一个类别
type CategoryInfo struct {
	Name         string   `json:"name"`
	Priority     int      `json:"priority"`
	KeywordCount int      `json:"keyword_count"`
	SkillCount   int      `json:"skill_count"`
	Skills       []string `json:"skills"`
}

func newAnalyzeResponse(res *processor.ProcessResult) *AnalyzeResponse {
	r := res.Result
	skills := r.MatchedSkills
	if skills == nil {
		skills = []string{}
	}
	return &AnalyzeResponse{
		AnalysisID:     res.AnalysisID,
		Filename:       res.Filename,
		Category:       r.Category.String(),
		RecommendedJob: r.Category.String(),
		Evidence:       r.Evidence,
		MatchedSkills:  skills,
		VocabularySize: r.VocabularySize,
		Name:           r.Fields.Name,
		Email:          r.Fields.Email,
		Phone:          r.Fields.Phone,
		Education:      r.Fields.Education,
		Score:          r.Score,
	}
}

// UploadPage GET / 上传页面
func (h *ResumeHandler) UploadPage(c context.Context, ctx *app.RequestContext) {
	h.renderIndex(ctx, consts.StatusOK, "")
}

// AnalyzeForm POST / 表单上传，字段名 resume，返回结果页面
func (h *ResumeHandler) AnalyzeForm(c context.Context, ctx *app.RequestContext) {
	fileHeader, err := ctx.FormFile(constants.UploadFormField)
	if err != nil {
		h.renderIndex(ctx, consts.StatusBadRequest, "No file uploaded. Please choose a resume file.")
		return
	}

	res, err := h.analyzeFile(c, fileHeader)
	if err != nil {
		h.renderIndex(ctx, failureStatus(c, err), h.userMessage(err))
		return
	}

	ctx.HTML(consts.StatusOK, templateResult, newAnalyzeResponse(res))
}

// AnalyzeUpload POST /api/v1/resume/analyze 上传文件，字段名 file (兼容 resume)
func (h *ResumeHandler) AnalyzeUpload(c context.Context, ctx *app.RequestContext) {
	fileHeader, err := ctx.FormFile(constants.APIUploadFormField)
	if err != nil {
		fileHeader, err = ctx.FormFile(constants.UploadFormField)
	}
	if err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
		return
	}

	res, err := h.analyzeFile(c, fileHeader)
	if err != nil {
		ctx.JSON(failureStatus(c, err), utils.H{"error": h.userMessage(err)})
		return
	}

	ctx.JSON(consts.StatusOK, newAnalyzeResponse(res))
}

// AnalyzeText POST /api/v1/resume/analyze/text 直接分析 JSON 中的文本
func (h *ResumeHandler) AnalyzeText(c context.Context, ctx *app.RequestContext) {
	var req AnalyzeTextRequest
	if err := ctx.BindAndValidate(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误: " + err.Error()})
		return
	}
	if int64(len(req.Text)) > h.service.MaxFileSize() && h.service.MaxFileSize() > 0 {
		ctx.JSON(consts.StatusRequestEntityTooLarge, utils.H{"error": "文本超过大小限制"})
		return
	}

	res, err := h.service.AnalyzeText(c, req.Text)
	if err != nil {
		ctx.JSON(failureStatus(c, err), utils.H{"error": h.userMessage(err)})
		return
	}
	ctx.JSON(consts.StatusOK, newAnalyzeResponse(res))
}

// ListCategories GET /api/v1/categories 分类体系，按优先级排列
func (h *ResumeHandler) ListCategories(c context.Context, ctx *app.RequestContext) {
	entries := h.vocab.Entries()
	categories := make([]CategoryInfo, 0, len(entries))
	for i, e := range entries {
		categories = append(categories, CategoryInfo{
			Name:         e.Category.String(),
			Priority:     i + 1,
			KeywordCount: len(e.Keywords),
			SkillCount:   len(e.Skills),
			Skills:       e.Skills,
		})
	}

	ctx.JSON(consts.StatusOK, utils.H{
		"categories": categories,
		"fallback":   h.vocab.Fallback().String(),
	})
}

// Health GET /api/v1/health
func (h *ResumeHandler) Health(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, utils.H{
		"status":  "ok",
		"service": constants.ServiceName,
		"version": constants.ServiceVersion,
	})
}

func (h *ResumeHandler) analyzeFile(c context.Context, fileHeader *multipart.FileHeader) (*processor.ProcessResult, error) {
	// 先按声明的大小拒绝，避免读入过大的文件
	if limit := h.service.MaxFileSize(); limit > 0 && fileHeader.Size > limit {
		return nil, processor.NewFileTooLargeError("", fmt.Sprintf("%d 字节，上限 %d 字节", fileHeader.Size, limit))
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", tracing.SafeFilename(fileHeader.Filename)).Msg("打开上传文件失败")
		return nil, processor.NewReadError("", err.Error())
	}
	defer file.Close()

	return h.service.AnalyzeReader(c, fileHeader.Filename, file)
}

func (h *ResumeHandler) renderIndex(ctx *app.RequestContext, status int, message string) {
	ctx.HTML(status, templateIndex, utils.H{
		"Error":      message,
		"Extensions": h.service.SupportedExtensions(),
		"MaxSizeMB":  h.service.MaxFileSize() / (1024 * 1024),
	})
}

// statusFor 错误到 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, processor.ErrFileTooLarge):
		return consts.StatusRequestEntityTooLarge
	case errors.Is(err, processor.ErrUnsupportedFormat),
		errors.Is(err, processor.ErrEmptyDocument),
		errors.Is(err, processor.ErrReadFailed):
		return consts.StatusBadRequest
	default:
		return consts.StatusInternalServerError
	}
}

// failureStatus 在请求 span 上记录失败并返回状态码
func failureStatus(c context.Context, err error) int {
	status := statusFor(err)
	tracing.RecordHTTPError(trace.SpanFromContext(c), err, status)
	return status
}

// userMessage 面向用户的错误信息，不暴露内部细节
func (h *ResumeHandler) userMessage(err error) string {
	switch {
	case errors.Is(err, processor.ErrUnsupportedFormat):
		return "Unsupported file format. Please upload " + joinExtensions(h.service.SupportedExtensions())
	case errors.Is(err, processor.ErrFileTooLarge):
		return fmt.Sprintf("File too large. Maximum size is %d MB", h.service.MaxFileSize()/(1024*1024))
	case errors.Is(err, processor.ErrEmptyDocument):
		return "No text could be extracted from the resume"
	case errors.Is(err, processor.ErrReadFailed):
		return "Failed to read the uploaded file"
	case errors.Is(err, processor.ErrParseTextFailed):
		return "Failed to extract text from the resume"
	default:
		return "Internal server error"
	}
}

// joinExtensions [".pdf", ".txt"] -> ".pdf or .txt"
func joinExtensions(exts []string) string {
	switch len(exts) {
	case 0:
		return ""
	case 1:
		return exts[0]
	}
	return strings.Join(exts[:len(exts)-1], ", ") + " or " + exts[len(exts)-1]
}
