package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/config"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := config.DefaultConfig().Redis
	cfg.Address = mr.Addr()
	r, err := NewRedisAdapter(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestNewRedisAdapter_Errors(t *testing.T) {
	_, err := NewRedisAdapter(nil)
	assert.Error(t, err)

	_, err = NewRedisAdapter(&config.RedisConfig{})
	assert.Error(t, err, "缺少地址")

	cfg := config.RedisConfig{Address: "127.0.0.1:1", DialTimeoutSeconds: 1}
	_, err = NewRedisAdapter(&cfg)
	assert.Error(t, err, "连接失败应报错")
}

func TestRedis_IncrWindow(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := r.IncrWindow(ctx, "app:ratelimit:window:k:1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	assert.Equal(t, time.Minute, mr.TTL("app:ratelimit:window:k:1"))

	// 已有过期时间时不再刷新
	mr.FastForward(30 * time.Second)
	_, err := r.IncrWindow(ctx, "app:ratelimit:window:k:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL("app:ratelimit:window:k:1"))

	mr.FastForward(31 * time.Second)
	n, err := r.IncrWindow(ctx, "app:ratelimit:window:k:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "过期后重新计数")
}

func TestRedis_Ping(t *testing.T) {
	r, mr := newTestRedis(t)
	require.NoError(t, r.Ping(context.Background()))

	mr.Close()
	assert.Error(t, r.Ping(context.Background()), "服务端关闭后 Ping 应失败")
}
