// Package middleware hertz 中间件：访问日志、API Key 鉴权、限流
package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/ratelimit"
	"resume-analyzer/internal/tracing"
)

// APIKeyHeader 携带 API Key 的请求头
const APIKeyHeader = "X-API-Key"

// AccessLog 记录每个请求的方法、路径、状态码和耗时
func AccessLog() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)

		status := ctx.Response.StatusCode()
		var event *zerolog.Event
		switch {
		case status >= consts.StatusInternalServerError:
			event = logger.Error()
		case status >= consts.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		event.
			Str("method", string(ctx.Method())).
			Str("path", string(ctx.Path())).
			Int("status", status).
			Str("client_ip", ctx.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("HTTP请求")
	}
}

// APIKeyAuth 校验 X-API-Key 请求头
func APIKeyAuth(keys []string) app.HandlerFunc {
	allowed := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k != "" {
			allowed[k] = struct{}{}
		}
	}

	return keyauth.New(
		keyauth.WithKeyLookUp("header:"+APIKeyHeader, ""),
		keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
			_, ok := allowed[key]
			return ok, nil
		}),
		keyauth.WithErrorHandler(func(c context.Context, ctx *app.RequestContext, err error) {
			logger.Warn().Str("client_ip", ctx.ClientIP()).Str("path", string(ctx.Path())).Msg("API Key 校验失败")
			ctx.AbortWithStatusJSON(consts.StatusUnauthorized, utils.H{"error": "无效或缺失的API Key"})
		}),
	)
}

var errRateLimited = errors.New("请求被限流")

// RateLimit 按客户端 IP 限流，超限返回 429
// 限流后端出错时放行并记录警告
func RateLimit(limiter ratelimit.Limiter) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		clientIP := ctx.ClientIP()
		allowed, err := limiter.Allow(c, clientIP)
		if err != nil {
			logger.Warn().Err(err).Str("client_ip", clientIP).Msg("限流检查失败，放行请求")
			ctx.Next(c)
			return
		}
		if !allowed {
			tracing.RecordError(trace.SpanFromContext(c), errRateLimited, tracing.ErrorTypeRateLimit,
				attribute.Int("http.status_code", consts.StatusTooManyRequests))
			ctx.Header("Retry-After", "60")
			ctx.AbortWithStatusJSON(consts.StatusTooManyRequests, utils.H{"error": "请求过于频繁，请稍后再试"})
			return
		}
		ctx.Next(c)
	}
}
