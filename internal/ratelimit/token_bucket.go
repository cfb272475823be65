package ratelimit

import (
	"context"
	"sync"
	"time"
)

// idleBucketTTL 超过该时间未使用且已回满的桶会被清理
const idleBucketTTL = 10 * time.Minute

// TokenBucket 实现令牌桶算法的限流器
type TokenBucket struct {
	rate           float64    // 每秒生成的令牌数
	capacity       float64    // 桶的容量
	tokens         float64    // 当前令牌数
	lastRefillTime time.Time  // 上次填充令牌的时间
	lastUsed       time.Time  // 上次请求令牌的时间
	mutex          sync.Mutex // 互斥锁，保证并发安全
	now            func() time.Time
}

// NewTokenBucket 创建一个新的令牌桶限流器
func NewTokenBucket(qpm int, capacity int) *TokenBucket {
	return newTokenBucket(qpm, capacity, time.Now)
}

func newTokenBucket(qpm int, capacity int, now func() time.Time) *TokenBucket {
	// 如果未指定容量，设置为QPM的一半
	if capacity <= 0 {
		capacity = qpm / 2
		if capacity <= 0 {
			capacity = 1
		}
	}

	return &TokenBucket{
		rate:           float64(qpm) / 60.0, // 转换为每秒速率
		capacity:       float64(capacity),
		tokens:         float64(capacity), // 初始填满
		lastRefillTime: now(),
		lastUsed:       now(),
		now:            now,
	}
}

// refill 根据经过的时间填充令牌，调用方持有锁
func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefillTime).Seconds()
	tb.lastRefillTime = now

	newTokens := elapsed * tb.rate
	if tb.tokens+newTokens > tb.capacity {
		tb.tokens = tb.capacity
	} else {
		tb.tokens += newTokens
	}
}

// Allow 判断是否允许通过一个请求，消耗一个令牌
func (tb *TokenBucket) Allow() bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.refill()
	tb.lastUsed = tb.lastRefillTime
	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// idle 桶已回满且长时间未使用
func (tb *TokenBucket) idle() bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.refill()
	return tb.tokens >= tb.capacity && tb.lastRefillTime.Sub(tb.lastUsed) > idleBucketTTL
}

// LocalLimiter 进程内按 key 分桶的令牌桶限流
type LocalLimiter struct {
	qpm       int
	burst     int
	mu        sync.Mutex
	buckets   map[string]*TokenBucket
	lastSweep time.Time
	now       func() time.Time
}

// NewLocalLimiter 每个 key 每分钟 qpm 个请求，允许 burst 个突发
func NewLocalLimiter(qpm, burst int) *LocalLimiter {
	return newLocalLimiter(qpm, burst, time.Now)
}

func newLocalLimiter(qpm, burst int, now func() time.Time) *LocalLimiter {
	return &LocalLimiter{
		qpm:       qpm,
		burst:     burst,
		buckets:   make(map[string]*TokenBucket),
		lastSweep: now(),
		now:       now,
	}
}

// Allow 实现 Limiter，本地限流不会返回错误
func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.bucket(key).Allow(), nil
}

func (l *LocalLimiter) bucket(key string) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.now().Sub(l.lastSweep) > idleBucketTTL {
		l.sweep()
	}

	b, ok := l.buckets[key]
	if !ok {
		b = newTokenBucket(l.qpm, l.burst, l.now)
		l.buckets[key] = b
	}
	return b
}

// sweep 清理空闲的桶，调用方持有 l.mu
func (l *LocalLimiter) sweep() {
	for key, b := range l.buckets {
		if b.idle() {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = l.now()
}

// Len 当前跟踪的 key 数量
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
