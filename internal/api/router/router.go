package router

import (
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"resume-analyzer/internal/api/handler"
)

// Middlewares 分析接口上的可选中间件，为空表示不启用
type Middlewares struct {
	Auth      app.HandlerFunc // 只作用于 /api/v1 下除健康检查外的接口
	RateLimit app.HandlerFunc // 作用于所有分析接口
}

// RegisterRoutes 注册页面和 API 路由
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler, mw Middlewares) error {
	tmpl, err := handler.ParseTemplates()
	if err != nil {
		return fmt.Errorf("解析页面模板失败: %w", err)
	}
	h.SetHTMLTemplate(tmpl)

	// 页面
	h.GET("/", resumeHandler.UploadPage)
	h.POST("/", chain(resumeHandler.AnalyzeForm, mw.RateLimit)...)

	api := h.Group("/api/v1")

	// 添加健康检查
	api.GET("/health", resumeHandler.Health)

	api.GET("/categories", chain(resumeHandler.ListCategories, mw.Auth)...)
	api.POST("/resume/analyze", chain(resumeHandler.AnalyzeUpload, mw.Auth, mw.RateLimit)...)
	api.POST("/resume/analyze/text", chain(resumeHandler.AnalyzeText, mw.Auth, mw.RateLimit)...)
	return nil
}

// chain 跳过为空的中间件，最后接上处理函数
func chain(final app.HandlerFunc, middlewares ...app.HandlerFunc) []app.HandlerFunc {
	handlers := make([]app.HandlerFunc, 0, len(middlewares)+1)
	for _, m := range middlewares {
		if m != nil {
			handlers = append(handlers, m)
		}
	}
	return append(handlers, final)
}
