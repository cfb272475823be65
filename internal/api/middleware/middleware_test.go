package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/logger"
)

func newEngine(mw ...app.HandlerFunc) *server.Hertz {
	h := server.New(server.WithHostPorts("127.0.0.1:0"))
	ok := func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(200, utils.H{"ok": true})
	}
	boom := func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(500, utils.H{"error": "boom"})
	}
	h.GET("/ping", append(append([]app.HandlerFunc{}, mw...), ok)...)
	h.GET("/boom", append(append([]app.HandlerFunc{}, mw...), boom)...)
	return h
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	_, err := logger.InitWithOutput(logger.Config{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	h := newEngine(AccessLog())
	ut.PerformRequest(h.Engine, "GET", "/ping", nil)
	ut.PerformRequest(h.Engine, "GET", "/boom", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "GET", first["method"])
	assert.Equal(t, "/ping", first["path"])
	assert.Equal(t, float64(200), first["status"])
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "error", second["level"], "5xx 记为错误")
}

func TestAPIKeyAuth(t *testing.T) {
	h := newEngine(APIKeyAuth([]string{"k1", "", "k2"}))

	tests := []struct {
		name   string
		header []ut.Header
		status int
	}{
		{"缺少", nil, 401},
		{"错误", []ut.Header{{Key: APIKeyHeader, Value: "nope"}}, 401},
		{"空值不被接受", []ut.Header{{Key: APIKeyHeader, Value: ""}}, 401},
		{"k1", []ut.Header{{Key: APIKeyHeader, Value: "k1"}}, 200},
		{"k2", []ut.Header{{Key: APIKeyHeader, Value: "k2"}}, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ut.PerformRequest(h.Engine, "GET", "/ping", nil, tt.header...)
			assert.Equal(t, tt.status, w.Result().StatusCode())
		})
	}
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func TestRateLimit(t *testing.T) {
	deny := &stubLimiter{allowed: false}
	w := ut.PerformRequest(newEngine(RateLimit(deny)).Engine, "GET", "/ping", nil)
	assert.Equal(t, 429, w.Result().StatusCode())
	assert.Len(t, deny.keys, 1, "每个请求检查一次")

	allow := &stubLimiter{allowed: true}
	w = ut.PerformRequest(newEngine(RateLimit(allow)).Engine, "GET", "/ping", nil)
	assert.Equal(t, 200, w.Result().StatusCode())

	broken := &stubLimiter{err: errors.New("redis down")}
	w = ut.PerformRequest(newEngine(RateLimit(broken)).Engine, "GET", "/ping", nil)
	assert.Equal(t, 200, w.Result().StatusCode(), "后端故障时放行")
}
