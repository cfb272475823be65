package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"resume-analyzer/internal/analyzer"
	"resume-analyzer/internal/config"
	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/nlp"
	"resume-analyzer/internal/processor"
	"resume-analyzer/internal/types"
	"resume-analyzer/internal/vocabulary"
)

// 命令行参数定义
var (
	filePath    = pflag.StringP("file", "f", "", "简历文件路径 (txt/pdf/html/docx)")
	text        = pflag.StringP("text", "t", "", "直接分析的简历文本")
	format      = pflag.String("format", "text", "输出格式，可选项：text, json")
	vocabPath   = pflag.String("vocab", "", "自定义词表文件(YAML)，为空时使用内置词表")
	nlpEngine   = pflag.String("nlp", "", "NLP引擎: prose 或 rule，为空时使用配置")
	configPath  = pflag.StringP("config", "c", "", "配置文件路径 (PDF解析器、上传限制等)")
	sampleVocab = pflag.String("sample-vocab", "", "将内置词表写入指定文件后退出")
	timeout     = pflag.Duration("timeout", 60*time.Second, "处理超时时间")
)

// output JSON 输出格式
type output struct {
	AnalysisID string `json:"analysis_id"`
	Filename   string `json:"filename,omitempty"`
	*types.AnalysisResult
}

func main() {
	pflag.Parse()

	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer) error {
	if *sampleVocab != "" {
		if err := vocabulary.WriteSample(*sampleVocab); err != nil {
			return err
		}
		fmt.Fprintf(w, "内置词表已写入: %s\n", *sampleVocab)
		return nil
	}

	if (*filePath == "") == (*text == "") {
		pflag.Usage()
		return fmt.Errorf("必须且只能提供 --file 或 --text 其中之一")
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *vocabPath != "" {
		cfg.Vocabulary.Path = *vocabPath
	}
	if *nlpEngine != "" {
		cfg.NLP.Engine = *nlpEngine
	}

	// 命令行下只输出警告以上的日志，避免干扰结果
	if _, err := logger.Init(logger.Config{Level: "warn", Format: "pretty", TimeFormat: "15:04:05"}); err != nil {
		return err
	}

	store, err := vocabulary.Load(cfg.Vocabulary.Path)
	if err != nil {
		return err
	}
	annotator, err := nlp.New(cfg.NLP.Engine)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	service, err := processor.NewResumeServiceFromConfig(ctx, cfg, analyzer.New(store, annotator), &logger.Logger)
	if err != nil {
		return err
	}

	var res *processor.ProcessResult
	if *filePath != "" {
		res, err = analyzeFile(ctx, service, *filePath)
	} else {
		res, err = service.AnalyzeText(ctx, *text)
	}
	if err != nil {
		return err
	}
	return render(w, res, *format)
}

func analyzeFile(ctx context.Context, service *processor.ResumeService, path string) (*processor.ProcessResult, error) {
	// 获取文件的绝对路径
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("无法获取文件的绝对路径: %w", err)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("无法访问文件 %s: %w", absPath, err)
	}
	defer f.Close()

	return service.AnalyzeReader(ctx, filepath.Base(absPath), f)
}

// render 按格式输出分析结果
func render(w io.Writer, res *processor.ProcessResult, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output{
			AnalysisID:     res.AnalysisID,
			Filename:       res.Filename,
			AnalysisResult: res.Result,
		})
	case "text", "":
		return renderText(w, res)
	default:
		return fmt.Errorf("未知的输出格式: %s", format)
	}
}

func renderText(w io.Writer, res *processor.ProcessResult) error {
	r := res.Result
	var sb strings.Builder

	if res.Filename != "" {
		fmt.Fprintf(&sb, "文件:     %s\n", res.Filename)
	}
	if r.Evidence != "" {
		fmt.Fprintf(&sb, "推荐岗位: %s (关键词: %s)\n", r.Category, r.Evidence)
	} else {
		fmt.Fprintf(&sb, "推荐岗位: %s\n", r.Category)
	}
	fmt.Fprintf(&sb, "姓名:     %s\n", r.Fields.Name)
	fmt.Fprintf(&sb, "邮箱:     %s\n", r.Fields.Email)
	fmt.Fprintf(&sb, "电话:     %s\n", r.Fields.Phone)
	fmt.Fprintf(&sb, "学历:     %s\n", r.Fields.Education)

	skills := "无"
	if len(r.MatchedSkills) > 0 {
		skills = strings.Join(r.MatchedSkills, ", ")
	}
	fmt.Fprintf(&sb, "匹配技能: %s (%d/%d)\n", skills, len(r.MatchedSkills), r.VocabularySize)
	fmt.Fprintf(&sb, "得分:     %d/100\n", r.Score)

	_, err := io.WriteString(w, sb.String())
	return err
}
