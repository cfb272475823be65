package ratelimit

import (
	"context"
	"fmt"
	"time"

	"resume-analyzer/internal/constants"
)

// WindowCounter 对固定窗口计数器自增，*storage.Redis 实现了该接口
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RedisLimiter 基于 Redis 的一分钟固定窗口限流，多个实例共享计数
type RedisLimiter struct {
	counter WindowCounter
	qpm     int
	now     func() time.Time
}

// NewRedisLimiter 每个 key 每分钟最多 qpm 个请求
func NewRedisLimiter(counter WindowCounter, qpm int) *RedisLimiter {
	return &RedisLimiter{counter: counter, qpm: qpm, now: time.Now}
}

// Allow 实现 Limiter，Redis 不可用时返回错误，由调用方决定是否放行
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := r.now().Unix() / 60
	count, err := r.counter.IncrWindow(ctx, fmt.Sprintf(constants.KeyRateLimitWindow, key, window), 2*time.Minute)
	if err != nil {
		return false, err
	}
	return count <= int64(r.qpm), nil
}
