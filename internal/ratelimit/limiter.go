// Package ratelimit 分析接口的按客户端限流
package ratelimit

import (
	"context"
	"fmt"

	"resume-analyzer/internal/config"
)

// Limiter 判断某个客户端(key)的一次请求是否放行
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// New 按配置创建限流器
// backend 为 redis 时 counter 不能为空，多个实例共享同一个计数窗口
func New(cfg config.RateLimitConfig, counter WindowCounter) (Limiter, error) {
	if cfg.QPM <= 0 {
		return nil, fmt.Errorf("qpm 必须大于0: %d", cfg.QPM)
	}

	switch cfg.Backend {
	case "", config.RateLimitBackendLocal:
		return NewLocalLimiter(cfg.QPM, cfg.Burst), nil
	case config.RateLimitBackendRedis:
		if counter == nil {
			return nil, fmt.Errorf("redis 限流后端需要可用的 Redis 连接")
		}
		return NewRedisLimiter(counter, cfg.QPM), nil
	default:
		return nil, fmt.Errorf("不支持的限流后端: %s", cfg.Backend)
	}
}
