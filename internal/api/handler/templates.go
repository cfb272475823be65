package handler

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// 模板名
const (
	templateIndex  = "index.html"
	templateResult = "result.html"
)

// ParseTemplates 解析内嵌的上传页和结果页模板
func ParseTemplates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.html")
}
