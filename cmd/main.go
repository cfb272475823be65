package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	hconfig "github.com/cloudwego/hertz/pkg/common/config"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"

	"resume-analyzer/internal/analyzer"
	"resume-analyzer/internal/api/handler"
	"resume-analyzer/internal/api/middleware"
	"resume-analyzer/internal/api/router"
	"resume-analyzer/internal/config"
	appCoreLogger "resume-analyzer/internal/logger"
	"resume-analyzer/internal/nlp"
	"resume-analyzer/internal/processor"
	"resume-analyzer/internal/ratelimit"
	"resume-analyzer/internal/storage"
	"resume-analyzer/internal/tracing"
	"resume-analyzer/internal/vocabulary"
)

func main() {
	var configPath string
	var sampleConfigPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径，为空时自动查找")
	pflag.StringVar(&sampleConfigPath, "sample-config", "", "生成示例配置文件到指定路径后退出")
	pflag.Parse()

	if sampleConfigPath != "" {
		if err := config.CreateSampleConfig(sampleConfigPath); err != nil {
			log.Fatalf("生成示例配置失败: %v", err)
		}
		fmt.Printf("示例配置已写入: %s\n", sampleConfigPath)
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logCloser := initLogger(cfg)
	defer logCloser.Close()

	ctx := context.Background()

	shutdownTracing, err := tracing.InitProvider(ctx, cfg.Tracing)
	if err != nil {
		glog.Fatalf("初始化链路追踪失败: %v", err)
	}

	store, err := vocabulary.Load(cfg.Vocabulary.Path)
	if err != nil {
		glog.Fatalf("加载分类词表失败: %v", err)
	}
	annotator, err := nlp.New(cfg.NLP.Engine)
	if err != nil {
		glog.Fatalf("初始化NLP引擎失败: %v", err)
	}
	appCoreLogger.Info().
		Int("categories", store.Len()).
		Str("vocabulary", cfg.Vocabulary.Path).
		Str("nlp_engine", cfg.NLP.Engine).
		Msg("分析器初始化完成")

	service, err := processor.NewResumeServiceFromConfig(ctx, cfg, analyzer.New(store, annotator), &appCoreLogger.Logger)
	if err != nil {
		glog.Fatalf("初始化简历处理服务失败: %v", err)
	}

	mw, redisClient := buildMiddlewares(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	opts := []hconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodyMB * 1024 * 1024),
		server.WithReadTimeout(config.GetDuration(cfg.Server.ReadTimeout, 30*time.Second)),
	}
	var tracerCfg *hertztracing.Config
	if cfg.Tracing.Enabled {
		tracer, tc := hertztracing.NewServerTracer()
		opts = append(opts, tracer)
		tracerCfg = tc
	}

	h := server.New(opts...)
	if tracerCfg != nil {
		h.Use(hertztracing.ServerMiddleware(tracerCfg))
	}
	h.Use(middleware.AccessLog())

	if err := router.RegisterRoutes(h, handler.NewResumeHandler(service, store), mw); err != nil {
		glog.Fatalf("注册路由失败: %v", err)
	}
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("服务器关闭失败: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		glog.Errorf("关闭链路追踪失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 初始化应用日志，并让 Hertz 通过适配器使用同一个 zerolog 实例
func initLogger(cfg *config.Config) io.Closer {
	closer, err := appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
		File:         cfg.Logger.File,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}

	glog.SetLogger(hertzadapter.From(appCoreLogger.Logger))
	glog.SetLevel(hertzLevel(cfg.Logger.Level))
	return closer
}

func hertzLevel(level string) glog.Level {
	switch level {
	case "debug":
		return glog.LevelDebug
	case "warn":
		return glog.LevelWarn
	case "error":
		return glog.LevelError
	default:
		return glog.LevelInfo
	}
}

// buildMiddlewares 按配置创建鉴权和限流中间件
// redis 后端连接失败时退回本地限流
func buildMiddlewares(cfg *config.Config) (router.Middlewares, *storage.Redis) {
	var mw router.Middlewares
	if cfg.Auth.Enabled {
		mw.Auth = middleware.APIKeyAuth(cfg.Auth.APIKeys)
		glog.Infof("已启用API Key鉴权，共 %d 个Key", len(cfg.Auth.APIKeys))
	}
	if !cfg.RateLimit.Enabled {
		return mw, nil
	}

	var redisClient *storage.Redis
	var counter ratelimit.WindowCounter
	rlCfg := cfg.RateLimit
	if rlCfg.Backend == config.RateLimitBackendRedis {
		r, err := storage.NewRedisAdapter(&cfg.Redis)
		if err != nil {
			glog.Warnf("警告: 初始化Redis失败，退回本地限流: %v", err)
			rlCfg.Backend = config.RateLimitBackendLocal
		} else {
			redisClient = r
			counter = r
		}
	}

	limiter, err := ratelimit.New(rlCfg, counter)
	if err != nil {
		glog.Fatalf("初始化限流器失败: %v", err)
	}
	mw.RateLimit = middleware.RateLimit(limiter)
	glog.Infof("已启用限流: 后端=%s, 每分钟=%d", rlCfg.Backend, rlCfg.QPM)
	return mw, redisClient
}
